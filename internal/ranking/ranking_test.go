package ranking

import (
	"math/rand"
	"testing"

	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tuition(v float64) *float64 { return &v }

func names(ranked []Ranked) []string {
	result := make([]string, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.Name)
	}
	return result
}

func TestRankEmpty(t *testing.T) {
	ranked := Rank(&profile.Profile{}, nil)
	require.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankSingleMatchScoresFull(t *testing.T) {
	p := &profile.Profile{
		DegreeLevels:  []string{catalog.DegreeBachelors},
		InterestAreas: []string{"Engineering"},
		MaxTuition:    tuition(20000),
		HomeState:     "CA",
		LocationPref:  profile.LocationInState,
	}

	ranked := Rank(p, []catalog.Program{
		{Name: "Engineering", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering"}, State: "CA", AnnualTuition: tuition(15000)},
	})

	require.Len(t, ranked, 1)
	assert.Equal(t, 100, ranked[0].FitScore)
	assert.Equal(t, Components{Interest: 70, Degree: 20, Location: 10}, ranked[0].Components)
	assert.InDelta(t, MaxRawTotal, ranked[0].RawTotal, 1e-9)
}

func TestRankComponents(t *testing.T) {
	program := catalog.Program{
		Name:          "Robotics",
		DegreeLevel:   catalog.DegreeBachelors,
		InterestAreas: []string{"Engineering", "Computer Science", "Arts", "Business"},
		State:         "OR",
	}

	tests := []struct {
		name   string
		prof   profile.Profile
		expect Components
	}{
		{
			name:   "empty profile",
			prof:   profile.Profile{},
			expect: Components{Interest: 0, Degree: 0, Location: 5},
		},
		{
			name:   "partial interest overlap uses profile denominator",
			prof:   profile.Profile{InterestAreas: []string{"Engineering", "Healthcare", "Arts"}},
			expect: Components{Interest: 46.7, Degree: 0, Location: 5},
		},
		{
			name:   "extra program interests do not dilute",
			prof:   profile.Profile{InterestAreas: []string{"Engineering"}},
			expect: Components{Interest: 70, Degree: 0, Location: 5},
		},
		{
			name:   "degree selected",
			prof:   profile.Profile{DegreeLevels: []string{catalog.DegreeAssociate, catalog.DegreeBachelors}},
			expect: Components{Interest: 0, Degree: 20, Location: 5},
		},
		{
			name:   "instate gets full location weight",
			prof:   profile.Profile{LocationPref: profile.LocationInState, HomeState: "OR"},
			expect: Components{Location: 10},
		},
		{
			name:   "out of state ok same state",
			prof:   profile.Profile{LocationPref: profile.LocationOutOfStateOK, HomeState: "OR"},
			expect: Components{Location: 10},
		},
		{
			name:   "anywhere different state",
			prof:   profile.Profile{LocationPref: profile.LocationAnywhere, HomeState: "CA"},
			expect: Components{Location: 6},
		},
		{
			name:   "anywhere unknown home state",
			prof:   profile.Profile{LocationPref: profile.LocationAnywhere},
			expect: Components{Location: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := Rank(&tt.prof, []catalog.Program{program})
			require.Len(t, ranked, 1)
			assert.Equal(t, tt.expect, ranked[0].Components)
			assert.Equal(t, 100, ranked[0].FitScore)
		})
	}
}

func TestRankInterestShareIsTakenBeforeWeighting(t *testing.T) {
	p := &profile.Profile{InterestAreas: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}}
	ranked := Rank(p, []catalog.Program{{Name: "Five", InterestAreas: []string{"a", "b", "c", "d", "e", "z"}}})

	require.Len(t, ranked, 1)
	assert.Equal(t, InterestWeight*(5.0/9.0)+LocationWeight*neutralLocationShare, ranked[0].RawTotal)
	assert.Equal(t, 38.9, ranked[0].Interest)
}

func TestRankUnknownProgramStateGetsFallback(t *testing.T) {
	p := &profile.Profile{LocationPref: profile.LocationOutOfStateOK, HomeState: "CA"}
	ranked := Rank(p, []catalog.Program{{Name: "Online"}})
	require.Len(t, ranked, 1)
	assert.InDelta(t, 6, ranked[0].Location, 1e-9)
}

func TestRankNormalization(t *testing.T) {
	p := &profile.Profile{
		InterestAreas: []string{"Engineering", "Computer Science"},
		DegreeLevels:  []string{catalog.DegreeBachelors, catalog.DegreeAssociate},
		HomeState:     "CA",
		LocationPref:  profile.LocationAnywhere,
	}

	ranked := Rank(p, []catalog.Program{
		// 35 + 20 + 6 = 61
		{Name: "Half", DegreeLevel: catalog.DegreeAssociate, InterestAreas: []string{"Engineering"}, State: "OR"},
		// 70 + 20 + 10 = 100
		{Name: "Full", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering", "Computer Science"}, State: "CA"},
		// 35 + 0 + 10 = 45
		{Name: "Cert", DegreeLevel: catalog.DegreeCertificate, InterestAreas: []string{"Computer Science"}, State: "CA"},
	})

	assert.Equal(t, []string{"Full", "Half", "Cert"}, names(ranked))
	assert.Equal(t, 100, ranked[0].FitScore)
	assert.Equal(t, 61, ranked[1].FitScore)
	assert.Equal(t, 45, ranked[2].FitScore)
}

func TestRankNormalizesAgainstObservedMaximum(t *testing.T) {
	// Empty profile: every program scores 5 raw, so everyone gets 100.
	ranked := Rank(&profile.Profile{}, []catalog.Program{
		{Name: "b", AnnualTuition: tuition(9000)},
		{Name: "a"},
		{Name: "c", AnnualTuition: tuition(3000)},
	})

	for _, r := range ranked {
		assert.Equal(t, 100, r.FitScore)
		assert.InDelta(t, 0, r.Degree, 1e-9)
		assert.InDelta(t, 5, r.Location, 1e-9)
	}
	assert.Equal(t, []string{"c", "b", "a"}, names(ranked))
}

func TestRankTieBreaks(t *testing.T) {
	p := &profile.Profile{}
	programs := []catalog.Program{
		{Name: "Zeta", AnnualTuition: tuition(5000)},
		{Name: "Unknown B"},
		{Name: "Alpha", AnnualTuition: tuition(5000)},
		{Name: "Unknown A"},
		{Name: "", AnnualTuition: tuition(5000)},
		{Name: "Cheap", AnnualTuition: tuition(1000)},
	}

	ranked := Rank(p, programs)
	assert.Equal(t, []string{"Cheap", "", "Alpha", "Zeta", "Unknown A", "Unknown B"}, names(ranked))
}

func TestRankDeterministic(t *testing.T) {
	p := &profile.Profile{
		InterestAreas: []string{"Engineering", "Arts"},
		DegreeLevels:  []string{catalog.DegreeBachelors},
		HomeState:     "CA",
		LocationPref:  profile.LocationOutOfStateOK,
	}

	programs := []catalog.Program{
		{Name: "A", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering"}, State: "CA", AnnualTuition: tuition(1)},
		{Name: "B", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Arts"}, State: "CA", AnnualTuition: tuition(1)},
		{Name: "C", DegreeLevel: catalog.DegreeAssociate, InterestAreas: []string{"Arts", "Engineering"}, State: "NV"},
		{Name: "D", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering"}, State: "NV", AnnualTuition: tuition(700)},
		{Name: "E", DegreeLevel: catalog.DegreeBachelors, InterestAreas: []string{"Engineering", "Arts"}},
	}

	expected := Rank(p, programs)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]catalog.Program, len(programs))
		copy(shuffled, programs)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assert.Equal(t, expected, Rank(p, shuffled))
	}

	for _, r := range expected {
		assert.GreaterOrEqual(t, r.FitScore, 0)
		assert.LessOrEqual(t, r.FitScore, 100)
	}
	assert.Equal(t, 100, expected[0].FitScore)
}
