// Package filtering applies the hard eligibility constraints of a profile to
// the program catalog.
package filtering

import (
	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/profile"
	"go.uber.org/zap"
)

// Filter represents a single hard constraint applied to programs.
// Allow must be a pure function of its arguments.
type Filter interface {
	Name() string
	// Active reports whether the profile specifies this constraint at all.
	Active(p *profile.Profile) bool
	Allow(p *profile.Profile, program *catalog.Program) bool
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Initial int    `json:"initial"`
	Dropped int    `json:"dropped"`
	Left    int    `json:"left"`
}

// Status represents runtime information about a filter for a given profile.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status(p *profile.Profile) Status
}

// Default returns the eligibility filters in the order they are applied.
func Default() []Filter {
	return []Filter{
		NewDegree(),
		NewInterests(),
		NewTuition(),
		NewLocation(),
	}
}

// Eligible applies the default filters without logging. The result keeps the
// catalog order and the input slice is never modified.
func Eligible(p *profile.Profile, programs []catalog.Program) []catalog.Program {
	eligible, _ := Run(p, programs, Default(), nil)
	return eligible
}

// Run executes the supplied filters sequentially, returning a new slice with
// the surviving programs in their original order.
func Run(p *profile.Profile, programs []catalog.Program, steps []Filter, logger *zap.Logger) ([]catalog.Program, []Step) {
	current := make([]catalog.Program, len(programs))
	copy(current, programs)

	stats := make([]Step, 0, len(steps))
	for _, step := range steps {
		initial := len(current)
		if !step.Active(p) {
			if logger != nil {
				logger.Debug("filter inactive", zap.String("name", step.Name()))
			}
			stats = append(stats, Step{Name: step.Name(), Initial: initial, Left: initial})
			continue
		}

		kept := make([]catalog.Program, 0, len(current))
		for i := range current {
			if step.Allow(p, &current[i]) {
				kept = append(kept, current[i])
			}
		}
		current = kept

		info := Step{
			Name:    step.Name(),
			Active:  true,
			Initial: initial,
			Dropped: initial - len(current),
			Left:    len(current),
		}
		stats = append(stats, info)

		if logger != nil {
			logger.Info("filter step",
				zap.String("name", info.Name),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}
	}

	return current, stats
}

// Describe returns status entries for the provided filters.
func Describe(p *profile.Profile, steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status(p))
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.Active(p),
		})
	}
	return statuses
}
