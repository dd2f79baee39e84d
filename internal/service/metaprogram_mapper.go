package service

import (
	"fmt"

	"role-profile/internal/domain"
	"role-profile/internal/weights"
)

// MetaprogramMapper turns validated answers into metaprogram scores.
type MetaprogramMapper struct {
	tables *weights.Tables
}

func NewMetaprogramMapper(tables *weights.Tables) MetaprogramMapper {
	return MetaprogramMapper{tables: tables}
}

// Map computes every metaprogram as the weighted share of the maximum
// reachable for its items, on a 0-100 scale. Reverse-keyed answers are
// mirrored first, so a vector of midpoints maps every metaprogram to 50.
func (m MetaprogramMapper) Map(answers domain.AnswerVector) (domain.Metaprograms, error) {
	if len(answers) != m.tables.QuestionCount {
		return nil, fmt.Errorf("%w: got %d answers, tables expect %d", ErrScoringInternal, len(answers), m.tables.QuestionCount)
	}

	lo, hi := float64(m.tables.Scale.Min), float64(m.tables.Scale.Max)
	out := make(domain.Metaprograms, 0, len(m.tables.Metaprograms))
	for _, mp := range m.tables.Metaprograms {
		var num, den float64
		for _, it := range mp.Items {
			if it.Index < 0 || it.Index >= len(answers) {
				return nil, fmt.Errorf("%w: metaprogram %s references index %d", ErrScoringInternal, mp.ID, it.Index)
			}
			a := float64(answers[it.Index])
			if it.Reverse {
				a = lo + hi - a
			}
			num += it.Weight * (a - lo)
			den += it.Weight * (hi - lo)
		}
		if den <= 0 {
			return nil, fmt.Errorf("%w: metaprogram %s has no weight", ErrScoringInternal, mp.ID)
		}
		out = append(out, domain.MetaprogramScore{
			ID:    mp.ID,
			Name:  mp.Name,
			Score: num / den * 100,
		})
	}
	return out, nil
}
