// Package ranking computes fit scores for eligible programs and puts them in
// a deterministic order. Fit scores only order results; they never decide
// eligibility.
package ranking

import (
	"cmp"
	"math"
	"slices"

	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/profile"
)

const (
	InterestWeight = 70.0
	DegreeWeight   = 20.0
	LocationWeight = 10.0

	// MaxRawTotal is the highest raw total a program can reach.
	MaxRawTotal = InterestWeight + DegreeWeight + LocationWeight

	// share of the location weight for an unset preference
	neutralLocationShare = 0.5
	// share of the location weight for a mismatched or unknown state
	fallbackLocationShare = 0.6
)

// Components are the three weighted parts of a raw total, reported rounded
// to one decimal.
type Components struct {
	Interest float64 `json:"interest_score_component"`
	Degree   float64 `json:"degree_score_component"`
	Location float64 `json:"location_score_component"`
}

// Ranked is a program annotated with its score.
type Ranked struct {
	catalog.Program
	Components
	RawTotal float64 `json:"raw_total"`
	FitScore int     `json:"fit_score"`
}

// Rank scores every eligible program and returns them sorted. The input is
// not modified and the result depends only on the arguments.
func Rank(p *profile.Profile, eligible []catalog.Program) []Ranked {
	if len(eligible) == 0 {
		return []Ranked{}
	}

	interests := p.InterestSet()
	ranked := make([]Ranked, 0, len(eligible))
	maxRaw := 0.0

	for _, program := range eligible {
		interest := interestScore(interests, &program)
		degree := degreeScore(p, &program)
		location := locationScore(p, &program)

		raw := interest + degree + location
		if raw > maxRaw {
			maxRaw = raw
		}

		ranked = append(ranked, Ranked{
			Program: program,
			Components: Components{
				Interest: round1(interest),
				Degree:   round1(degree),
				Location: round1(location),
			},
			RawTotal: raw,
		})
	}

	if maxRaw == 0 {
		maxRaw = 1.0
	}

	for i := range ranked {
		ranked[i].FitScore = int(math.RoundToEven(ranked[i].RawTotal / maxRaw * 100))
	}

	slices.SortStableFunc(ranked, Compare)
	return ranked
}

// Compare orders by fit score descending, then known tuition ascending with
// unknown tuition last, then program name ascending.
func Compare(a, b Ranked) int {
	if c := cmp.Compare(b.FitScore, a.FitScore); c != 0 {
		return c
	}
	if c := cmp.Compare(tuitionKey(&a.Program), tuitionKey(&b.Program)); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

func tuitionKey(p *catalog.Program) float64 {
	if v, ok := p.Tuition(); ok {
		return v
	}
	return math.Inf(1)
}

// interestScore is proportional to the share of requested interests the
// program covers; extra program interests do not dilute it.
func interestScore(interests map[string]struct{}, program *catalog.Program) float64 {
	if len(interests) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(program.InterestAreas))
	for _, area := range program.InterestAreas {
		if _, ok := interests[area]; ok {
			seen[area] = struct{}{}
		}
	}
	return InterestWeight * (float64(len(seen)) / float64(len(interests)))
}

func degreeScore(p *profile.Profile, program *catalog.Program) float64 {
	if p.WantsDegree(program.Level()) {
		return DegreeWeight
	}
	return 0
}

func locationScore(p *profile.Profile, program *catalog.Program) float64 {
	switch p.LocationPref {
	case profile.LocationUnset:
		return LocationWeight * neutralLocationShare
	case profile.LocationInState:
		return LocationWeight
	}

	if p.HomeState != "" && program.State != "" && p.HomeState == program.State {
		return LocationWeight
	}
	return LocationWeight * fallbackLocationShare
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
