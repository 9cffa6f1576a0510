package ats

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"skill-sync-resume/internal/domain/resume"
)

const (
	MinScore = 50.0
	// MaxScore is exclusive.
	MaxScore = 100.0

	DefaultFeedback = "Good resume, but consider adding more keywords."

	maxRoundedScore = 99.99
)

// Scorer produces a quality assessment for a stored profile. Implementations
// must return a score in [MinScore, MaxScore).
type Scorer interface {
	Score(ctx context.Context, p resume.Profile) (resume.Assessment, error)
}

type RandomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomScorer(seed int64) *RandomScorer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomScorer{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomScorer) Score(ctx context.Context, _ resume.Profile) (resume.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return resume.Assessment{}, err
	}

	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()

	return resume.Assessment{
		Score:    RoundScore(MinScore + f*(MaxScore-MinScore)),
		Feedback: DefaultFeedback,
	}, nil
}

type FixedScorer struct {
	Value    float64
	Feedback string
}

func (s FixedScorer) Score(ctx context.Context, _ resume.Profile) (resume.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return resume.Assessment{}, err
	}
	fb := s.Feedback
	if fb == "" {
		fb = DefaultFeedback
	}
	return resume.Assessment{Score: RoundScore(s.Value), Feedback: fb}, nil
}

// RoundScore rounds to two decimals and keeps the result inside the band;
// 99.999 would otherwise round up to the excluded upper bound.
func RoundScore(v float64) float64 {
	r := math.Round(v*100) / 100
	if r < MinScore {
		return MinScore
	}
	if r >= MaxScore {
		return maxRoundedScore
	}
	return r
}
