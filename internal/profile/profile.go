// Package profile holds the canonical user profile and the normalizer that
// builds it from raw, loosely typed input.
package profile

import "math"

// LocationPref is the user's acceptable program location scope.
type LocationPref string

const (
	LocationUnset        LocationPref = ""
	LocationInState      LocationPref = "instate"
	LocationOutOfStateOK LocationPref = "out_of_state_ok"
	LocationAnywhere     LocationPref = "anywhere"
)

// Profile is a value object rebuilt for every request.
type Profile struct {
	Role          string       `json:"role,omitempty"`
	CurrentStatus string       `json:"current_status,omitempty"`
	HomeState     string       `json:"home_state,omitempty"`
	GPA           float64      `json:"gpa"`
	DegreeLevels  []string     `json:"degree_levels"`
	InterestAreas []string     `json:"interest_areas"`
	MaxTuition    *float64     `json:"max_tuition,omitempty"`
	SATScore      *int         `json:"sat_score,omitempty"`
	ACTScore      *int         `json:"act_score,omitempty"`
	LocationPref  LocationPref `json:"location_pref"`
}

// TuitionCeiling returns the budget ceiling when one is in effect.
// Zero, negative and absent ceilings mean "no constraint".
func (p *Profile) TuitionCeiling() (float64, bool) {
	if p.MaxTuition == nil || *p.MaxTuition <= 0 {
		return 0, false
	}
	return *p.MaxTuition, true
}

// WantsDegree reports whether the level is among the selected degree levels.
func (p *Profile) WantsDegree(level string) bool {
	for _, l := range p.DegreeLevels {
		if l == level {
			return true
		}
	}
	return false
}

// InterestSet returns the selected interests as a set.
func (p *Profile) InterestSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.InterestAreas))
	for _, area := range p.InterestAreas {
		set[area] = struct{}{}
	}
	return set
}

// InStateOnly reports whether the in-state eligibility constraint applies.
func (p *Profile) InStateOnly() bool {
	return p.LocationPref == LocationInState && p.HomeState != ""
}

const requiredParts = 6

// Completeness returns the percentage of required profile fields that are
// filled: role, current status, home state, gpa, degree levels and interests.
func Completeness(p Profile) int {
	filled := 0
	for _, ok := range []bool{
		p.Role != "",
		p.CurrentStatus != "",
		p.HomeState != "",
		p.GPA > 0,
		len(p.DegreeLevels) > 0,
		len(p.InterestAreas) > 0,
	} {
		if ok {
			filled++
		}
	}
	return int(math.Round(float64(filled) / requiredParts * 100))
}

// Complete reports whether every required field is filled.
func Complete(p Profile) bool {
	return Completeness(p) == 100
}
