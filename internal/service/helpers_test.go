package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"role-profile/internal/domain"
	"role-profile/internal/weights"
)

// smallTables: a reads answers 0-1, b reads 2 and reverse-keyed 3.
func smallTables() *weights.Tables {
	return &weights.Tables{
		Version:       "small",
		QuestionCount: 4,
		Scale:         weights.Scale{Min: 1, Max: 5},
		Metaprograms: []weights.Metaprogram{
			{ID: "a", Name: "A", Items: []weights.Item{{Index: 0, Weight: 1}, {Index: 1, Weight: 1}}},
			{ID: "b", Name: "B", Items: []weights.Item{{Index: 2, Weight: 1}, {Index: 3, Weight: 1, Reverse: true}}},
		},
		Roles: []weights.Target{
			{ID: "role_a", Name: "Role A", Weights: []weights.Contribution{{Metaprogram: "a", Weight: 1}}},
			{ID: "role_b", Name: "Role B", Weights: []weights.Contribution{{Metaprogram: "b", Weight: 1}}},
			{ID: "role_mix", Name: "Role Mix", Weights: []weights.Contribution{{Metaprogram: "a", Weight: 1}, {Metaprogram: "b", Weight: 1}}},
		},
		Competencies: []weights.Target{
			{ID: "comp_b", Name: "Comp B", Weights: []weights.Contribution{{Metaprogram: "b", Weight: 2}}},
			{ID: "comp_a", Name: "Comp A", Weights: []weights.Contribution{{Metaprogram: "a", Weight: 1}}},
			{ID: "comp_mix", Name: "Comp Mix", Weights: []weights.Contribution{{Metaprogram: "a", Weight: 3}, {Metaprogram: "b", Weight: 1}}},
		},
	}
}

func defaultTables(t *testing.T) *weights.Tables {
	t.Helper()
	tables, err := weights.Default()
	require.NoError(t, err)
	return tables
}

func uniformVector(n, v int) domain.AnswerVector {
	out := make(domain.AnswerVector, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// extremeVector returns the answers that push every metaprogram to its
// maximum (high) or minimum (!high), honouring reverse-keyed items.
func extremeVector(tables *weights.Tables, high bool) domain.AnswerVector {
	out := make(domain.AnswerVector, tables.QuestionCount)
	for _, mp := range tables.Metaprograms {
		for _, it := range mp.Items {
			top := high != it.Reverse
			if top {
				out[it.Index] = tables.Scale.Max
			} else {
				out[it.Index] = tables.Scale.Min
			}
		}
	}
	return out
}

func toRaw(v domain.AnswerVector) []any {
	out := make([]any, len(v))
	for i, a := range v {
		out[i] = float64(a)
	}
	return out
}
