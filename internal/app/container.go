package app

import (
	"context"
	"fmt"
	"time"

	"skill-sync-resume/internal/config"
	"skill-sync-resume/internal/database"
	dbpostgres "skill-sync-resume/internal/database/postgres"
	"skill-sync-resume/internal/domain/skill"
	"skill-sync-resume/internal/infrastructure/cache"
	"skill-sync-resume/internal/infrastructure/document"
	"skill-sync-resume/internal/pkg/jwt"
	"skill-sync-resume/internal/pkg/logger"
	"skill-sync-resume/internal/repository"
	"skill-sync-resume/internal/usecase"
	"skill-sync-resume/internal/usecase/ats"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	Redis  *cache.Redis
	JWT    *jwt.HMACService

	Skills   *usecase.Skill
	Resumes  *usecase.Resume
	Matching *usecase.Matching
}

// NewContainer opens the database pool and the redis cache, then wires the
// usecases on top of them.
func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c, err := NewContainerWith(cfg, log, db, cache.NewRedis(cfg.Redis, log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerWith wires the usecases over already opened stores. redis may
// be nil, in which case profile reads are not cached.
func NewContainerWith(cfg config.Config, log *zap.Logger, db database.DB, redis *cache.Redis) (*Container, error) {
	log = logger.OrNop(log)

	extractor, err := NewSkillExtractor(cfg.Skills)
	if err != nil {
		return nil, err
	}
	scorer, err := NewScorer(cfg.ATS)
	if err != nil {
		return nil, err
	}

	var profileCache usecase.ProfileCache
	if redis != nil {
		profileCache = redis
	}

	skills := usecase.NewSkillUsecase(extractor)
	resumes := usecase.NewResumeUsecase(
		repository.NewPostgresResumeRepository(db),
		document.NewExtractor(),
		skills,
		scorer,
		profileCache,
		log,
	)
	matchingUC := usecase.NewMatchingUsecase(
		resumes,
		repository.NewPostgresJobRepository(db),
		repository.NewPostgresJobSkillRepository(db),
	)

	log.Info("container ready",
		zap.String("match_mode", string(extractor.Mode())),
		zap.Int("vocabulary_phrases", extractor.Vocabulary().Len()),
		zap.String("ats_scorer", cfg.ATS.Scorer),
	)

	return &Container{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Redis:    redis,
		JWT:      jwt.NewHMACService(cfg.JWT.AccessSecret),
		Skills:   skills,
		Resumes:  resumes,
		Matching: matchingUC,
	}, nil
}

// NewSkillExtractor loads the configured vocabulary file, or the built-in
// vocabulary when none is set.
func NewSkillExtractor(cfg config.SkillsConfig) (*skill.Extractor, error) {
	mode, err := skill.ParseMatchMode(cfg.MatchMode)
	if err != nil {
		return nil, err
	}

	vocab := skill.DefaultVocabulary()
	if cfg.VocabularyFile != "" {
		vocab, err = skill.LoadVocabulary(cfg.VocabularyFile)
		if err != nil {
			return nil, err
		}
	}

	return skill.NewExtractor(vocab, mode), nil
}

func NewScorer(cfg config.ATSConfig) (ats.Scorer, error) {
	switch cfg.Scorer {
	case "", config.ATSScorerRandom:
		return ats.NewRandomScorer(cfg.Seed), nil
	case config.ATSScorerFixed:
		return ats.FixedScorer{Value: cfg.FixedScore}, nil
	default:
		return nil, fmt.Errorf("unknown ats scorer %q", cfg.Scorer)
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
