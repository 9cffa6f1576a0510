package usecase

import (
	"strings"

	"skill-sync-resume/internal/domain/matching"
	"skill-sync-resume/internal/domain/skill"
)

type SkillUsecase interface {
	ExtractSkills(text string) skill.Set
	MatchSkills(candidate, required skill.Set) matching.Result
	Vocabulary() []string
}

type Skill struct {
	extractor *skill.Extractor
}

func NewSkillUsecase(extractor *skill.Extractor) *Skill {
	if extractor == nil {
		extractor = skill.NewExtractor(skill.DefaultVocabulary(), skill.MatchSubstring)
	}
	return &Skill{extractor: extractor}
}

func (u *Skill) ExtractSkills(text string) skill.Set {
	return u.extractor.Extract(text)
}

func (u *Skill) MatchSkills(candidate, required skill.Set) matching.Result {
	return matching.Calculate(candidate, required)
}

func (u *Skill) Vocabulary() []string {
	return u.extractor.Vocabulary().Labels().Strings()
}

// SkillSetFromNames builds a set from client or job supplied labels, dropping
// blanks. Labels are compared verbatim.
func SkillSetFromNames(names []string) skill.Set {
	out := skill.NewSet()
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out.Add(skill.Label(n))
	}
	return out
}
