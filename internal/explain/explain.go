// Package explain builds the human-readable reasons attached to every
// recommendation. The builders are total: every input has a defined text.
package explain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/profile"
	"github.com/spigell/course-finder/internal/utils"
)

const (
	comfortableDelta = 0.3
	reasonableDelta  = -0.2
)

// Rationale holds the three independent explanations for one program.
type Rationale struct {
	Interests string `json:"why_interests"`
	Academic  string `json:"why_academic"`
	Practical string `json:"why_practical"`
}

// Explain derives all three rationales for a program.
func Explain(p *profile.Profile, program *catalog.Program) Rationale {
	var ceiling *float64
	if v, ok := p.TuitionCeiling(); ok {
		ceiling = &v
	}

	return Rationale{
		Interests: Interests(p.InterestAreas, program.InterestAreas),
		Academic:  Academic(p.GPA, program.SelectivityBand),
		Practical: Practical(p.HomeState, program.State, ceiling, program.AnnualTuition),
	}
}

// Interests explains how the program relates to the requested interests.
func Interests(preferred, offered []string) string {
	overlap := intersect(preferred, offered)
	if len(overlap) > 0 {
		return "Matches your interest areas: " + strings.Join(overlap, ", ") + "."
	}
	if len(preferred) == 0 {
		return "Offers a broad curriculum suitable for exploring different interests."
	}
	// Not reached through the interest filter, which requires an overlap.
	return "Offers related fields where you may discover new interests."
}

// Academic compares the GPA with the target implied by the selectivity band.
func Academic(gpa float64, band catalog.SelectivityBand) string {
	if gpa <= 0 || band == "" {
		return "Academic context is based on general patterns; your GPA or the school's " +
			"selectivity band is not fully specified."
	}

	delta := gpa - band.TargetGPA()
	switch {
	case delta >= comfortableDelta:
		return "Your GPA is somewhat above the typical range for this school, which suggests " +
			"a comfortable academic match."
	case delta >= reasonableDelta:
		return "Your GPA is roughly in line with the typical range for this school, which " +
			"suggests a reasonable academic match."
	default:
		return "This school is more academically competitive than your current GPA range. " +
			"It may be more challenging, but could still be worth considering."
	}
}

// Practical covers location and budget. maxTuition is only considered when
// positive; a nil tuition is unknown.
func Practical(homeState, programState string, maxTuition, tuition *float64) string {
	var parts []string

	if homeState != "" && programState != "" {
		if programState == homeState {
			parts = append(parts,
				"Located in your home state, which may make it more convenient and potentially more affordable.")
		} else {
			parts = append(parts,
				fmt.Sprintf("Located in %s, outside your home state of %s.", programState, homeState))
		}
	}

	if maxTuition != nil && *maxTuition > 0 {
		switch {
		case tuition == nil:
			parts = append(parts,
				"Tuition information is not available for this program, so we cannot compare it to your budget.")
		case *tuition <= *maxTuition:
			parts = append(parts,
				fmt.Sprintf("Estimated tuition (~%s per year) fits within your comfortable range.", utils.Dollars(*tuition)))
		default:
			parts = append(parts,
				fmt.Sprintf("Estimated tuition (~%s per year) is above your stated comfort level.", utils.Dollars(*tuition)))
		}
	}

	if len(parts) == 0 {
		return "A practical option to explore based on your broad preferences."
	}
	return strings.Join(parts, " ")
}

func intersect(a, b []string) []string {
	var result []string
	for _, v := range a {
		if slices.Contains(b, v) && !slices.Contains(result, v) {
			result = append(result, v)
		}
	}
	slices.Sort(result)
	return result
}
