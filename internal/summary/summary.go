// Package summary renders compact one-line descriptions of a profile and of
// the hard constraints it puts on the catalog.
package summary

import (
	"fmt"
	"strings"

	"github.com/spigell/course-finder/internal/profile"
	"github.com/spigell/course-finder/internal/utils"
)

// Separator joins summary parts.
const Separator = " · "

// Profile summarizes who the user is and what they asked for.
func Profile(p *profile.Profile) string {
	if p == nil {
		return ""
	}

	var parts []string

	switch strings.ToLower(p.Role) {
	case "student":
		parts = append(parts, "Student")
	case "parent":
		parts = append(parts, "Parent")
	}

	if p.HomeState != "" {
		if len(parts) > 0 {
			parts[len(parts)-1] = fmt.Sprintf("%s from %s", parts[len(parts)-1], p.HomeState)
		} else {
			parts = append(parts, "From "+p.HomeState)
		}
	}

	if p.GPA > 0 {
		parts = append(parts, fmt.Sprintf("GPA %.1f", p.GPA))
	}

	if len(p.DegreeLevels) > 0 {
		parts = append(parts, strings.Join(p.DegreeLevels, ", "))
	}

	if len(p.InterestAreas) > 0 {
		parts = append(parts, strings.Join(p.InterestAreas, ", "))
	}

	if ceiling, ok := p.TuitionCeiling(); ok {
		parts = append(parts, fmt.Sprintf("Max tuition ~%s/year", utils.Dollars(ceiling)))
	}

	return strings.Join(parts, Separator)
}

// Constraints lists the hard filters in effect, in the order they are
// applied, followed by the location scope.
func Constraints(p *profile.Profile) string {
	if p == nil {
		return ""
	}

	var parts []string

	if len(p.DegreeLevels) > 0 {
		parts = append(parts, "Degree: "+strings.Join(p.DegreeLevels, ", "))
	}

	if len(p.InterestAreas) > 0 {
		parts = append(parts, "Interests: "+strings.Join(p.InterestAreas, ", "))
	}

	if ceiling, ok := p.TuitionCeiling(); ok {
		parts = append(parts, fmt.Sprintf("Tuition ≤ %s/year", utils.Dollars(ceiling)))
	}

	switch {
	case p.InStateOnly():
		parts = append(parts, fmt.Sprintf("In-state only (%s)", p.HomeState))
	case p.LocationPref == profile.LocationOutOfStateOK:
		parts = append(parts, "In-state or out-of-state")
	case p.LocationPref == profile.LocationAnywhere:
		parts = append(parts, "Anywhere in the U.S.")
	}

	return strings.Join(parts, Separator)
}
