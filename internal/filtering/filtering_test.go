package filtering

import (
	"testing"

	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func tuition(v float64) *float64 { return &v }

func testPrograms() []catalog.Program {
	return []catalog.Program{
		{Name: "Mechanical Engineering", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering"}, State: "CA", AnnualTuition: tuition(15000)},
		{Name: "Studio Arts", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Arts"}, State: "CA", AnnualTuition: tuition(10000)},
		{Name: "Software Development", DegreeLevel: catalog.DegreeAssociate, InterestAreas: []string{"Computer Science", "Engineering"}, State: "OR", AnnualTuition: tuition(8000)},
		{Name: "Welding", DegreeLevel: catalog.DegreeCertificate, InterestAreas: []string{"Engineering"}, State: "", AnnualTuition: nil},
		{Name: "Nursing", DegreeLevel: catalog.DegreeAssociate, InterestAreas: []string{"Healthcare"}, State: "CA", AnnualTuition: tuition(25000)},
		{Name: "Robotics", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering", "Computer Science"}, State: "CA", AnnualTuition: nil},
	}
}

func names(programs []catalog.Program) []string {
	result := make([]string, 0, len(programs))
	for _, p := range programs {
		result = append(result, p.Name)
	}
	return result
}

func TestEligibleScenarioInStateEngineering(t *testing.T) {
	p := &profile.Profile{
		DegreeLevels:  []string{catalog.DegreeBachelors},
		InterestAreas: []string{"Engineering"},
		MaxTuition:    tuition(20000),
		HomeState:     "CA",
		LocationPref:  profile.LocationInState,
	}

	programs := []catalog.Program{
		{Name: "Engineering", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering"}, State: "CA", AnnualTuition: tuition(15000)},
		{Name: "Arts", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Arts"}, State: "CA", AnnualTuition: tuition(10000)},
	}

	assert.Equal(t, []string{"Engineering"}, names(Eligible(p, programs)))
}

func TestEligibleConstraints(t *testing.T) {
	tests := []struct {
		name    string
		profile profile.Profile
		expect  []string
	}{
		{
			name:    "empty profile keeps everything",
			profile: profile.Profile{},
			expect:  []string{"Mechanical Engineering", "Studio Arts", "Software Development", "Welding", "Nursing", "Robotics"},
		},
		{
			name:    "degree levels",
			profile: profile.Profile{DegreeLevels: []string{catalog.DegreeAssociate, catalog.DegreeCertificate}},
			expect:  []string{"Software Development", "Welding", "Nursing"},
		},
		{
			name:    "interests need one shared tag",
			profile: profile.Profile{InterestAreas: []string{"Computer Science", "Arts"}},
			expect:  []string{"Studio Arts", "Software Development", "Robotics"},
		},
		{
			name:    "tuition ceiling drops unknown tuition",
			profile: profile.Profile{MaxTuition: tuition(15000)},
			expect:  []string{"Mechanical Engineering", "Studio Arts", "Software Development"},
		},
		{
			name:    "non-positive ceiling is no constraint",
			profile: profile.Profile{MaxTuition: tuition(0)},
			expect:  []string{"Mechanical Engineering", "Studio Arts", "Software Development", "Welding", "Nursing", "Robotics"},
		},
		{
			name:    "in-state drops other and unknown states",
			profile: profile.Profile{HomeState: "CA", LocationPref: profile.LocationInState},
			expect:  []string{"Mechanical Engineering", "Studio Arts", "Nursing", "Robotics"},
		},
		{
			name:    "in-state without home state is no constraint",
			profile: profile.Profile{LocationPref: profile.LocationInState},
			expect:  []string{"Mechanical Engineering", "Studio Arts", "Software Development", "Welding", "Nursing", "Robotics"},
		},
		{
			name:    "out of state ok does not filter",
			profile: profile.Profile{HomeState: "CA", LocationPref: profile.LocationOutOfStateOK},
			expect:  []string{"Mechanical Engineering", "Studio Arts", "Software Development", "Welding", "Nursing", "Robotics"},
		},
		{
			name: "combined",
			profile: profile.Profile{
				DegreeLevels:  []string{catalog.DegreeBachelors, catalog.DegreeAssociate},
				InterestAreas: []string{"Engineering"},
				MaxTuition:    tuition(20000),
			},
			expect: []string{"Mechanical Engineering", "Software Development"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eligible(&tt.profile, testPrograms())
			assert.Equal(t, tt.expect, names(got))
		})
	}
}

func TestEligibleProperties(t *testing.T) {
	profiles := []profile.Profile{
		{},
		{InterestAreas: []string{"Engineering"}, MaxTuition: tuition(12000)},
		{DegreeLevels: []string{catalog.DegreeBachelors}, HomeState: "CA", LocationPref: profile.LocationInState},
		{MaxTuition: tuition(100)},
	}

	for _, p := range profiles {
		programs := testPrograms()
		eligible := Eligible(&p, programs)

		// subset of the catalog
		for _, e := range eligible {
			assert.Contains(t, names(programs), e.Name)
		}

		// idempotent
		assert.Equal(t, eligible, Eligible(&p, eligible))

		// input untouched
		assert.Equal(t, testPrograms(), programs)

		// independent of the filter order
		reversed := Default()
		for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
			reversed[i], reversed[j] = reversed[j], reversed[i]
		}
		other, _ := Run(&p, programs, reversed, nil)
		assert.Equal(t, eligible, other)

		if ceiling, ok := p.TuitionCeiling(); ok {
			for _, e := range eligible {
				v, known := e.Tuition()
				require.True(t, known)
				assert.LessOrEqual(t, v, ceiling)
			}
		}
	}
}

func TestRunStepsAndLogging(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	p := &profile.Profile{InterestAreas: []string{"Engineering"}, MaxTuition: tuition(20000)}
	eligible, steps := Run(p, testPrograms(), Default(), logger)

	assert.Equal(t, []string{"Mechanical Engineering", "Software Development"}, names(eligible))
	require.Len(t, steps, 4)

	assert.Equal(t, Step{Name: "degree_level", Initial: 6, Left: 6}, steps[0])
	assert.Equal(t, Step{Name: "interest_areas", Active: true, Initial: 6, Dropped: 2, Left: 4}, steps[1])
	assert.Equal(t, Step{Name: "max_tuition", Active: true, Initial: 4, Dropped: 2, Left: 2}, steps[2])
	assert.Equal(t, Step{Name: "location", Initial: 2, Left: 2}, steps[3])

	infos := observed.FilterMessage("filter step").All()
	require.Len(t, infos, 2)
	assert.Equal(t, "interest_areas", infos[0].ContextMap()["name"])
	assert.EqualValues(t, 2, infos[0].ContextMap()["dropped"])

	assert.Len(t, observed.FilterMessage("filter inactive").All(), 2)
}

func TestDescribe(t *testing.T) {
	p := &profile.Profile{
		DegreeLevels: []string{catalog.DegreeBachelors},
		MaxTuition:   tuition(18000),
		LocationPref: profile.LocationInState,
	}

	statuses := Describe(p, Default())
	require.Len(t, statuses, 4)

	assert.True(t, statuses[0].Enabled)
	assert.Equal(t, "Bachelor's", statuses[0].Details["degree_levels"])

	assert.False(t, statuses[1].Enabled)
	assert.Equal(t, notSpecifiedMsg, statuses[1].Reason)

	assert.True(t, statuses[2].Enabled)
	assert.Equal(t, "18000", statuses[2].Details["max_tuition"])

	assert.False(t, statuses[3].Enabled)
	assert.Equal(t, "home state is not set", statuses[3].Reason)
}
