package service

import (
	"role-profile/internal/domain"
	"role-profile/internal/weights"
)

type CompetencyCalculator struct {
	competencies []weights.Target
}

func NewCompetencyCalculator(tables *weights.Tables) CompetencyCalculator {
	return CompetencyCalculator{competencies: tables.Competencies}
}

// Calculate returns the full competency ranking, descending by percentage.
func (c CompetencyCalculator) Calculate(mps domain.Metaprograms) ([]domain.Competency, error) {
	ranked, err := rankTargets("competency", c.competencies, mps)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Competency, len(ranked))
	for i, r := range ranked {
		out[i] = domain.Competency{ID: r.id, Name: r.name, Percentage: r.percentage}
	}
	return out, nil
}

// TopCompetencies returns the first n entries of a descending ranking.
func TopCompetencies(ranked []domain.Competency, n int) []domain.Competency {
	if n > len(ranked) {
		n = len(ranked)
	}
	if n <= 0 {
		return []domain.Competency{}
	}
	out := make([]domain.Competency, n)
	copy(out, ranked[:n])
	return out
}

// BottomCompetencies returns the last n entries of a descending ranking,
// reversed so the lowest scoring competency comes first.
func BottomCompetencies(ranked []domain.Competency, n int) []domain.Competency {
	if n > len(ranked) {
		n = len(ranked)
	}
	if n <= 0 {
		return []domain.Competency{}
	}
	tail := ranked[len(ranked)-n:]
	out := make([]domain.Competency, n)
	for i := range tail {
		out[i] = tail[len(tail)-1-i]
	}
	return out
}
