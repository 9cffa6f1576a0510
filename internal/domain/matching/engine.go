package matching

import "skill-sync-resume/internal/domain/skill"

type Result struct {
	MatchPercentage float64
	MatchedSkills   skill.Set
	MissingSkills   skill.Set
}

// Calculate compares a candidate's skills with a job's required skills.
// An empty requirement set yields a zero percentage.
func Calculate(candidate, required skill.Set) Result {
	matched := required.Intersect(candidate)
	missing := required.Difference(candidate)

	pct := 0.0
	if required.Len() > 0 {
		pct = 100 * float64(matched.Len()) / float64(required.Len())
	}

	return Result{
		MatchPercentage: clampPercentage(pct),
		MatchedSkills:   matched,
		MissingSkills:   missing,
	}
}

func clampPercentage(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
