package profile

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Raw input keys understood by Normalize.
const (
	KeyRole          = "role"
	KeyCurrentStatus = "current_status"
	KeyHomeState     = "home_state"
	KeyGPA           = "gpa"
	KeyDegreeLevels  = "degree_levels"
	KeyInterestAreas = "interest_areas"
	KeyMaxTuition    = "max_tuition"
	KeySATScore      = "sat_score"
	KeyACTScore      = "act_score"
	KeyLocationPref  = "location_pref"
)

// Form is any source of raw key/value input: CLI flags, a config section or
// form fields.
type Form interface {
	Get(key string) string
	GetList(key string) []string
}

// Values is a multi-valued Form.
type Values map[string][]string

func (v Values) Get(key string) string {
	if items := v[key]; len(items) > 0 {
		return items[0]
	}
	return ""
}

func (v Values) GetList(key string) []string {
	return v[key]
}

// Set replaces the values stored under key.
func (v Values) Set(key string, values ...string) {
	v[key] = values
}

// FromMap converts a loosely typed map (e.g. a decoded config section) into
// Values. Slices become multi-valued entries, everything else a single value.
func FromMap(m map[string]any) Values {
	values := make(Values, len(m))
	for key, raw := range m {
		if raw == nil {
			continue
		}
		switch raw.(type) {
		case []any, []string:
			values[key] = cast.ToStringSlice(raw)
		default:
			s, err := cast.ToStringE(raw)
			if err != nil {
				continue
			}
			values[key] = []string{s}
		}
	}
	return values
}

// Normalize builds a canonical profile. It never fails: malformed optional
// fields fall back to their "no constraint" defaults.
func Normalize(form Form) Profile {
	p := Profile{
		Role:          strings.TrimSpace(form.Get(KeyRole)),
		CurrentStatus: strings.TrimSpace(form.Get(KeyCurrentStatus)),
		HomeState:     strings.ToUpper(strings.TrimSpace(form.Get(KeyHomeState))),
		DegreeLevels:  cleanList(form.GetList(KeyDegreeLevels)),
		InterestAreas: cleanList(form.GetList(KeyInterestAreas)),
		LocationPref:  LocationPref(strings.ToLower(strings.TrimSpace(form.Get(KeyLocationPref)))),
	}

	if gpa, ok := ParseFloat(form.Get(KeyGPA)); ok {
		p.GPA = gpa
	}

	if tuition, ok := ParseFloat(form.Get(KeyMaxTuition)); ok {
		p.MaxTuition = &tuition
	}

	if sat, ok := ParseInt(form.Get(KeySATScore)); ok {
		p.SATScore = &sat
	}

	if act, ok := ParseInt(form.Get(KeyACTScore)); ok {
		p.ACTScore = &act
	}

	return p
}

// ParseFloat parses a finite number, reporting false for empty or malformed
// input.
func ParseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt parses a whole number, reporting false for empty, fractional or
// malformed input.
func ParseInt(raw string) (int, bool) {
	f, ok := ParseFloat(raw)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func cleanList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// Values renders the profile back into raw input form so it can be layered
// under other sources before normalizing again.
func (p Profile) Values() Values {
	values := Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set(KeyRole, p.Role)
	set(KeyCurrentStatus, p.CurrentStatus)
	set(KeyHomeState, p.HomeState)
	set(KeyLocationPref, string(p.LocationPref))

	if p.GPA > 0 {
		set(KeyGPA, cast.ToString(p.GPA))
	}
	if p.MaxTuition != nil {
		set(KeyMaxTuition, cast.ToString(*p.MaxTuition))
	}
	if p.SATScore != nil {
		set(KeySATScore, cast.ToString(*p.SATScore))
	}
	if p.ACTScore != nil {
		set(KeyACTScore, cast.ToString(*p.ACTScore))
	}
	if len(p.DegreeLevels) > 0 {
		values.Set(KeyDegreeLevels, p.DegreeLevels...)
	}
	if len(p.InterestAreas) > 0 {
		values.Set(KeyInterestAreas, p.InterestAreas...)
	}

	return values
}

// Merge returns a copy of v with every key present in overrides replaced.
func (v Values) Merge(overrides Values) Values {
	merged := make(Values, len(v)+len(overrides))
	for key, items := range v {
		merged[key] = items
	}
	for key, items := range overrides {
		merged[key] = items
	}
	return merged
}
