package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"role-profile/internal/domain"
	"role-profile/internal/weights"
)

// ValidationResult is either valid or carries an ordered, non-empty list of
// human readable problems.
type ValidationResult struct {
	errors []string
}

func (r ValidationResult) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns a copy of the collected messages.
func (r ValidationResult) Errors() []string {
	if len(r.errors) == 0 {
		return nil
	}
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// ValidationError transporta la lista completa de errores de validacion.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid answers: " + strings.Join(e.Messages, "; ")
}

// AnswerValidator checks the shape and value domain of a raw answer vector.
type AnswerValidator struct {
	count int
	scale weights.Scale
}

func NewAnswerValidator(count int, scale weights.Scale) AnswerValidator {
	return AnswerValidator{count: count, scale: scale}
}

// Validate checks presence, array-ness, length and every element, collecting
// all violations. raw is what a JSON decoder produced for the answers field.
func (v AnswerValidator) Validate(raw any) ValidationResult {
	_, res := v.Parse(raw)
	return res
}

// Parse validates raw and, when valid, returns it as an AnswerVector.
func (v AnswerValidator) Parse(raw any) (domain.AnswerVector, ValidationResult) {
	if raw == nil {
		return nil, ValidationResult{errors: []string{"answers is required"}}
	}
	items, ok := asSlice(raw)
	if !ok {
		return nil, ValidationResult{errors: []string{fmt.Sprintf("answers must be an array of length %d", v.count)}}
	}

	var errs []string
	if len(items) != v.count {
		errs = append(errs, fmt.Sprintf("answers must be an array of length %d, got %d", v.count, len(items)))
	}

	answers := make(domain.AnswerVector, len(items))
	for i, item := range items {
		n, ok := toFloat(item)
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("answer at index %d must be a number", i))
		case math.IsNaN(n) || math.IsInf(n, 0):
			errs = append(errs, fmt.Sprintf("answer at index %d must be a finite number", i))
		case n != math.Trunc(n):
			errs = append(errs, fmt.Sprintf("answer at index %d must be an integer", i))
		case n < float64(v.scale.Min) || n > float64(v.scale.Max):
			errs = append(errs, fmt.Sprintf("answer at index %d out of range [%d, %d]", i, v.scale.Min, v.scale.Max))
		default:
			answers[i] = int(n)
		}
	}

	if len(errs) > 0 {
		return nil, ValidationResult{errors: errs}
	}
	return answers, ValidationResult{}
}

func asSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []float64:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = x
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = x
		}
		return out, true
	case domain.AnswerVector:
		return asSlice([]int(v))
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		// Overflow yields ±Inf with ErrRange; that is a number, just not a finite one.
		f, err := n.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
