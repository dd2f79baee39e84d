package service

import (
	"fmt"
	"math"
	"sort"

	"role-profile/internal/domain"
	"role-profile/internal/weights"
)

type rankedTarget struct {
	id         string
	name       string
	percentage int
}

// rankTargets blends metaprogram scores per target, normalises by the
// theoretical maximum (every metaprogram at 100) and sorts descending.
// Ties keep the table order.
func rankTargets(kind string, targets []weights.Target, mps domain.Metaprograms) ([]rankedTarget, error) {
	out := make([]rankedTarget, 0, len(targets))
	for _, tg := range targets {
		var raw, ceiling float64
		for _, c := range tg.Weights {
			score, ok := mps.Score(c.Metaprogram)
			if !ok {
				return nil, fmt.Errorf("%w: %s %s needs unknown metaprogram %s", ErrScoringInternal, kind, tg.ID, c.Metaprogram)
			}
			raw += c.Weight * score
			ceiling += c.Weight * 100
		}
		if ceiling <= 0 {
			return nil, fmt.Errorf("%w: %s %s has no weight", ErrScoringInternal, kind, tg.ID)
		}
		out = append(out, rankedTarget{
			id:         tg.ID,
			name:       tg.Name,
			percentage: toPercentage(raw / ceiling * 100),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].percentage > out[j].percentage
	})
	return out, nil
}

func toPercentage(v float64) int {
	p := int(math.Round(v))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
