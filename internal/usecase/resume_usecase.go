package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/pkg/logger"
	"skill-sync-resume/internal/repository"
	"skill-sync-resume/internal/usecase/ats"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// client-supplied filenames are cut to this many runes in logs
const maxLoggedFilename = 120

type DocumentExtractor interface {
	ExtractText(contentType, filename string, data []byte) (string, error)
}

type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ResumeUsecase interface {
	Upload(ctx context.Context, ownerID uuid.UUID, in UploadInput) (resume.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (resume.Profile, error)
	GetProfileByOwner(ctx context.Context, ownerID uuid.UUID) (resume.Profile, error)
	AssessATS(ctx context.Context, id uuid.UUID) (resume.Assessment, error)
	Rate(ctx context.Context, id uuid.UUID, rating int) (resume.Profile, error)
}

type Resume struct {
	repo   repository.ResumeRepository
	docs   DocumentExtractor
	skills SkillUsecase
	scorer ats.Scorer
	cache  ProfileCache
	log    *zap.Logger

	// collapses concurrent cache misses for the same key
	loads singleflight.Group

	// cacheMu serializes cache fills against mutations. A fill whose load
	// started before the latest mutation (generation moved) is dropped.
	cacheMu    sync.Mutex
	generation uint64
}

// NewResumeUsecase wires the resume operations. cache may be nil.
func NewResumeUsecase(repo repository.ResumeRepository, docs DocumentExtractor, skills SkillUsecase, scorer ats.Scorer, cache ProfileCache, log *zap.Logger) *Resume {
	if scorer == nil {
		scorer = ats.NewRandomScorer(0)
	}
	return &Resume{repo: repo, docs: docs, skills: skills, scorer: scorer, cache: cache, log: logger.OrNop(log)}
}

func (u *Resume) Upload(ctx context.Context, ownerID uuid.UUID, in UploadInput) (resume.Profile, error) {
	if ownerID == uuid.Nil {
		return resume.Profile{}, ErrUnauthorized
	}
	filename := strings.TrimSpace(in.Filename)
	if filename == "" {
		return resume.Profile{}, ErrInvalidInput
	}

	text, err := u.docs.ExtractText(in.ContentType, filename, in.Data)
	if err != nil {
		u.log.Info("resume upload rejected",
			zap.String("owner_id", ownerID.String()),
			zap.String("filename", logger.Truncate(filename, maxLoggedFilename)),
			zap.Error(err),
		)
		if errors.Is(err, resume.ErrUnreadableDocument) {
			return resume.Profile{}, err
		}
		return resume.Profile{}, fmt.Errorf("%w: %v", resume.ErrUnreadableDocument, err)
	}

	skills := u.skills.ExtractSkills(text)

	p, err := u.repo.UpsertByOwner(ctx, ownerID, resume.Upload{
		Filename: filename,
		RawText:  text,
		Skills:   skills,
	})
	if err != nil {
		u.log.Error("resume upsert failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return resume.Profile{}, ErrInternal
	}
	u.refresh(ctx, p)

	u.log.Info("resume uploaded",
		zap.String("resume_id", p.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int("skills", skills.Len()),
	)
	return p, nil
}

func (u *Resume) GetProfile(ctx context.Context, id uuid.UUID) (resume.Profile, error) {
	if id == uuid.Nil {
		return resume.Profile{}, resume.ErrNotFound
	}
	return u.cached(ctx, ResumeByIDCacheKey(id), func(ctx context.Context) (resume.Profile, error) {
		return u.repo.FindByID(ctx, id)
	})
}

func (u *Resume) GetProfileByOwner(ctx context.Context, ownerID uuid.UUID) (resume.Profile, error) {
	if ownerID == uuid.Nil {
		return resume.Profile{}, ErrUnauthorized
	}
	return u.cached(ctx, ResumeByOwnerCacheKey(ownerID), func(ctx context.Context) (resume.Profile, error) {
		return u.repo.FindByOwner(ctx, ownerID)
	})
}

func (u *Resume) AssessATS(ctx context.Context, id uuid.UUID) (resume.Assessment, error) {
	p, err := u.GetProfile(ctx, id)
	if err != nil {
		return resume.Assessment{}, err
	}

	a, err := u.scorer.Score(ctx, p)
	if err != nil {
		u.log.Error("ats scoring failed", zap.String("resume_id", id.String()), zap.Error(err))
		return resume.Assessment{}, ErrInternal
	}

	saved, err := u.repo.SaveAssessment(ctx, id, a)
	if err != nil {
		return resume.Assessment{}, u.mapStoreError(err)
	}
	u.refresh(ctx, saved)

	u.log.Info("ats assessed", zap.String("resume_id", id.String()), zap.Float64("score", a.Score))
	return a, nil
}

func (u *Resume) Rate(ctx context.Context, id uuid.UUID, rating int) (resume.Profile, error) {
	if err := resume.ValidateRating(rating); err != nil {
		return resume.Profile{}, err
	}
	if id == uuid.Nil {
		return resume.Profile{}, resume.ErrNotFound
	}

	p, err := u.repo.SaveRating(ctx, id, rating)
	if err != nil {
		return resume.Profile{}, u.mapStoreError(err)
	}
	u.refresh(ctx, p)
	return p, nil
}

func (u *Resume) cached(ctx context.Context, key string, load func(context.Context) (resume.Profile, error)) (resume.Profile, error) {
	if u.cache != nil {
		var c cachedProfile
		hit, err := u.cache.GetJSON(ctx, key, &c)
		if err != nil {
			u.log.Debug("resume cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit {
			return c.profile(), nil
		}
	}

	gen := u.currentGeneration()
	// a load shared by several callers must not die with the first one.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := u.loads.Do(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		p, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		u.fill(loadCtx, key, gen, p)
		return p, nil
	})
	if err != nil {
		return resume.Profile{}, u.mapStoreError(err)
	}
	return v.(resume.Profile), nil
}

func (u *Resume) currentGeneration() uint64 {
	u.cacheMu.Lock()
	defer u.cacheMu.Unlock()
	return u.generation
}

func (u *Resume) fill(ctx context.Context, key string, gen uint64, p resume.Profile) {
	if u.cache == nil {
		return
	}
	u.cacheMu.Lock()
	defer u.cacheMu.Unlock()
	if u.generation != gen {
		u.log.Debug("resume cache fill skipped", zap.String("key", key))
		return
	}
	if err := u.cache.SetJSON(ctx, key, toCachedProfile(p), 0); err != nil {
		u.log.Debug("resume cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// refresh writes the just-persisted profile through to both cache keys.
func (u *Resume) refresh(ctx context.Context, p resume.Profile) {
	u.cacheMu.Lock()
	defer u.cacheMu.Unlock()
	u.generation++
	if u.cache == nil {
		return
	}
	cp := toCachedProfile(p)
	for _, key := range []string{ResumeByIDCacheKey(p.ID), ResumeByOwnerCacheKey(p.OwnerID)} {
		err := u.cache.SetJSON(ctx, key, cp, 0)
		if err == nil {
			continue
		}
		u.log.Warn("resume cache write-through failed", zap.String("key", key), zap.Error(err))
		if err := u.cache.Delete(ctx, key); err != nil {
			u.log.Warn("resume cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (u *Resume) mapStoreError(err error) error {
	if errors.Is(err, repository.ErrResumeNotFound) {
		return resume.ErrNotFound
	}
	u.log.Error("resume store error", zap.Error(err))
	return ErrInternal
}
