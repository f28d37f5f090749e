package matching

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renter(locations, prefs []string, moveIn string) *model.RenterPreference {
	return &model.RenterPreference{ID: "r", Locations: locations, Preferences: prefs, MoveInDate: moveIn}
}

func landlord(location string, features, tenantPrefs []string, moveIn string) *model.LandlordPreference {
	return &model.LandlordPreference{ID: "l", Location: location, BuildingFeatures: features, TenantPreferences: tenantPrefs, PreferredMoveInDate: moveIn}
}

func TestExplainDowntownScenario(t *testing.T) {
	r := renter([]string{"Downtown"}, []string{"Pet-friendly"}, "ASAP")
	l := landlord("Downtown", []string{"Pet-friendly", "Gym"}, nil, "Flexible")

	b := Explain(r, l)
	assert.Equal(t, 35.0, b.Location)
	assert.Equal(t, 30.0, b.Features)
	assert.Equal(t, 15.0, b.MoveIn)
	assert.Equal(t, 10.0, b.Lifestyle)
	assert.Equal(t, 90.0, Score(r, l))
}

func TestExplainComponents(t *testing.T) {
	tests := []struct {
		name string
		r    *model.RenterPreference
		l    *model.LandlordPreference
		want Breakdown
	}{
		{
			name: "everything empty",
			r:    renter(nil, nil, "ASAP"),
			l:    landlord("Uptown", nil, nil, "Next month"),
			want: Breakdown{Location: 35, Features: 15, MoveIn: 7.5, Lifestyle: 10},
		},
		{
			name: "location miss",
			r:    renter([]string{"Downtown", "Midtown"}, nil, "ASAP"),
			l:    landlord("Uptown", nil, nil, "ASAP"),
			want: Breakdown{Location: 0, Features: 15, MoveIn: 15, Lifestyle: 10},
		},
		{
			name: "partial feature overlap",
			r:    renter([]string{"Uptown"}, []string{"Gym", "Parking", "Pool", "Quiet"}, "Flexible"),
			l:    landlord("Uptown", []string{"Gym", "Pool"}, []string{"Quiet", "Non-smoker"}, "2-3 months"),
			want: Breakdown{Location: 35, Features: 15, MoveIn: 15, Lifestyle: 10},
		},
		{
			name: "lifestyle divides by smaller set",
			r:    renter(nil, []string{"Quiet"}, "ASAP"),
			l:    landlord("Uptown", []string{"Gym"}, []string{"Quiet", "Non-smoker", "Student-friendly"}, "ASAP"),
			want: Breakdown{Location: 35, Features: 0, MoveIn: 15, Lifestyle: 20},
		},
		{
			name: "duplicate tags count once",
			r:    renter(nil, []string{"Gym", "Gym"}, "ASAP"),
			l:    landlord("Uptown", []string{"Gym"}, []string{"Gym", "Gym"}, "ASAP"),
			want: Breakdown{Location: 35, Features: 30, MoveIn: 15, Lifestyle: 20},
		},
		{
			name: "renter tags empty landlord features set",
			r:    renter(nil, nil, "ASAP"),
			l:    landlord("Uptown", []string{"Gym"}, []string{"Quiet"}, "ASAP"),
			want: Breakdown{Location: 35, Features: 15, MoveIn: 15, Lifestyle: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want.Location, Explain(tt.r, tt.l).Location, 1e-9)
			assert.InDelta(t, tt.want.Features, Explain(tt.r, tt.l).Features, 1e-9)
			assert.InDelta(t, tt.want.MoveIn, Explain(tt.r, tt.l).MoveIn, 1e-9)
			assert.InDelta(t, tt.want.Lifestyle, Explain(tt.r, tt.l).Lifestyle, 1e-9)
		})
	}
}

func TestEmptyLocationsAlwaysMatch(t *testing.T) {
	r := renter(nil, []string{"Gym"}, "ASAP")
	for _, loc := range []string{"", "Downtown", "Somewhere else"} {
		assert.Equal(t, LocationWeight, Explain(r, landlord(loc, nil, nil, "ASAP")).Location, loc)
	}
}

func TestScoreBounds(t *testing.T) {
	vocab := []string{"Gym", "Pool", "Quiet", "Pet-friendly", "Parking", "Non-smoker"}
	places := []string{"Downtown", "Uptown", "Midtown"}
	dates := []string{"ASAP", "Next month", "2-3 months", "Flexible"}
	pick := func(rng *rand.Rand) []string {
		var out []string
		for i := rng.Intn(5); i > 0; i-- {
			out = append(out, vocab[rng.Intn(len(vocab))])
		}
		return out
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		var locs []string
		for j := rng.Intn(3); j > 0; j-- {
			locs = append(locs, places[rng.Intn(len(places))])
		}
		r := renter(locs, pick(rng), dates[rng.Intn(len(dates))])
		l := landlord(places[rng.Intn(len(places))], pick(rng), pick(rng), dates[rng.Intn(len(dates))])
		s := Score(r, l)
		require.GreaterOrEqual(t, s, 0.0, fmt.Sprintf("renter=%+v landlord=%+v", r, l))
		require.LessOrEqual(t, s, 100.0, fmt.Sprintf("renter=%+v landlord=%+v", r, l))
	}
}

func TestScoreAll(t *testing.T) {
	renters := []model.RenterPreference{
		{ID: "r1", Locations: []string{"Uptown"}, MoveInDate: "ASAP"},
		{ID: "r2", Locations: []string{"Downtown"}, Preferences: []string{"Gym"}, MoveInDate: "Flexible"},
	}
	landlords := []model.LandlordPreference{
		{ID: "l1", Location: "Downtown", BuildingFeatures: []string{"Gym"}, PreferredMoveInDate: "ASAP"},
		{ID: "l2", Location: "Uptown", PreferredMoveInDate: "Next month"},
		{ID: "l3", Location: "Midtown", PreferredMoveInDate: "ASAP"},
	}

	pairs := ScoreAll(renters, landlords)
	require.Len(t, pairs, 6)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i-1].Score, pairs[i].Score)
	}
	assert.Equal(t, Pair{RenterID: "r2", LandlordID: "l1", Score: 90}, pairs[0])

	for _, p := range pairs {
		var r *model.RenterPreference
		var l *model.LandlordPreference
		for i := range renters {
			if renters[i].ID == p.RenterID {
				r = &renters[i]
			}
		}
		for i := range landlords {
			if landlords[i].ID == p.LandlordID {
				l = &landlords[i]
			}
		}
		assert.Equal(t, Score(r, l), p.Score)
	}
}

func TestScoreAllEmpty(t *testing.T) {
	assert.Empty(t, ScoreAll(nil, []model.LandlordPreference{{ID: "l1"}}))
	assert.Empty(t, ScoreAll([]model.RenterPreference{{ID: "r1"}}, nil))
}
