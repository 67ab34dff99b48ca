package recommend

import (
	"cmp"
	"fmt"
	"slices"
)

// SortMode selects the display order of a result.
type SortMode string

const (
	SortFitDesc     SortMode = "fit_desc"
	SortTuitionAsc  SortMode = "tuition_asc"
	SortTuitionDesc SortMode = "tuition_desc"
)

// View refines an already computed result for display. It never changes
// eligibility or scores.
type View struct {
	DegreeLevel string   `mapstructure:"degree-level"`
	MaxTuition  *float64 `mapstructure:"max-tuition"`
	SortBy      SortMode `mapstructure:"sort-by" validate:"omitempty,oneof=fit_desc tuition_asc tuition_desc"`
	Limit       int      `mapstructure:"limit" validate:"gte=0"`
}

// Apply returns the recommendations visible through the view. The input is
// not modified.
func (v View) Apply(recommendations []Recommendation) ([]Recommendation, error) {
	visible := make([]Recommendation, 0, len(recommendations))
	for _, r := range recommendations {
		if v.DegreeLevel != "" && r.Level() != v.DegreeLevel {
			continue
		}
		if v.MaxTuition != nil && *v.MaxTuition > 0 {
			if tuition, ok := r.Tuition(); ok && tuition > *v.MaxTuition {
				continue
			}
		}
		visible = append(visible, r)
	}

	switch v.SortBy {
	case "", SortFitDesc:
		// engine order
	case SortTuitionAsc:
		slices.SortStableFunc(visible, func(a, b Recommendation) int {
			return compareTuition(a, b, false)
		})
	case SortTuitionDesc:
		slices.SortStableFunc(visible, func(a, b Recommendation) int {
			return compareTuition(a, b, true)
		})
	default:
		return nil, fmt.Errorf("unknown sort mode %q", v.SortBy)
	}

	if v.Limit > 0 && len(visible) > v.Limit {
		visible = visible[:v.Limit]
	}

	return visible, nil
}

// compareTuition orders known tuition first in the requested direction.
// Unknown tuition always sorts last.
func compareTuition(a, b Recommendation, desc bool) int {
	ta, okA := a.Tuition()
	tb, okB := b.Tuition()

	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}

	if desc {
		return cmp.Compare(tb, ta)
	}
	return cmp.Compare(ta, tb)
}

// Len reports the number of recommendations, zero for a nil result.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Recommendations)
}

// TopScore returns the highest fit score in the result.
func (r *Result) TopScore() int {
	if r.Len() == 0 {
		return 0
	}
	return r.Recommendations[0].FitScore
}
