package filtering

import (
	"strconv"
	"strings"

	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/profile"
)

const notSpecifiedMsg = "not specified in profile"

type degreeFilter struct{}

// NewDegree creates a filter that keeps programs offering one of the selected degree levels.
func NewDegree() Filter {
	return degreeFilter{}
}

func (degreeFilter) Name() string { return "degree_level" }

func (degreeFilter) Active(p *profile.Profile) bool { return len(p.DegreeLevels) > 0 }

func (degreeFilter) Allow(p *profile.Profile, program *catalog.Program) bool {
	return p.WantsDegree(program.Level())
}

func (f degreeFilter) Status(p *profile.Profile) Status {
	if !f.Active(p) {
		return Status{Name: f.Name(), Reason: notSpecifiedMsg}
	}
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{
		"degree_levels": strings.Join(p.DegreeLevels, ","),
	}}
}

type interestsFilter struct{}

// NewInterests creates a filter that keeps programs sharing at least one interest area.
func NewInterests() Filter {
	return interestsFilter{}
}

func (interestsFilter) Name() string { return "interest_areas" }

func (interestsFilter) Active(p *profile.Profile) bool { return len(p.InterestAreas) > 0 }

func (interestsFilter) Allow(p *profile.Profile, program *catalog.Program) bool {
	for _, area := range p.InterestAreas {
		if program.HasInterest(area) {
			return true
		}
	}
	return false
}

func (f interestsFilter) Status(p *profile.Profile) Status {
	if !f.Active(p) {
		return Status{Name: f.Name(), Reason: notSpecifiedMsg}
	}
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{
		"interest_areas": strings.Join(p.InterestAreas, ","),
	}}
}

type tuitionFilter struct{}

// NewTuition creates a filter that keeps programs with a known tuition within the ceiling.
// Unknown tuition cannot be confirmed as affordable and is dropped.
func NewTuition() Filter {
	return tuitionFilter{}
}

func (tuitionFilter) Name() string { return "max_tuition" }

func (tuitionFilter) Active(p *profile.Profile) bool {
	_, ok := p.TuitionCeiling()
	return ok
}

func (tuitionFilter) Allow(p *profile.Profile, program *catalog.Program) bool {
	ceiling, ok := p.TuitionCeiling()
	if !ok {
		return true
	}
	tuition, known := program.Tuition()
	return known && tuition <= ceiling
}

func (f tuitionFilter) Status(p *profile.Profile) Status {
	ceiling, ok := p.TuitionCeiling()
	if !ok {
		return Status{Name: f.Name(), Reason: notSpecifiedMsg}
	}
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{
		"max_tuition":     strconv.FormatFloat(ceiling, 'f', -1, 64),
		"unknown_tuition": "excluded",
	}}
}

type locationFilter struct{}

// NewLocation creates a filter that keeps only in-state programs when the
// profile asks for them. Other location preferences affect scoring only.
func NewLocation() Filter {
	return locationFilter{}
}

func (locationFilter) Name() string { return "location" }

func (locationFilter) Active(p *profile.Profile) bool { return p.InStateOnly() }

func (locationFilter) Allow(p *profile.Profile, program *catalog.Program) bool {
	if !p.InStateOnly() {
		return true
	}
	return program.State != "" && program.State == p.HomeState
}

func (f locationFilter) Status(p *profile.Profile) Status {
	if !f.Active(p) {
		reason := "location preference does not restrict eligibility"
		if p.LocationPref == profile.LocationInState {
			reason = "home state is not set"
		}
		return Status{Name: f.Name(), Reason: reason}
	}
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{
		"home_state": p.HomeState,
	}}
}
