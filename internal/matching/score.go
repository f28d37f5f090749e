// Package matching scores renter/landlord compatibility.
//
// A score is the sum of four weighted components and always lies in [0, 100]:
// location (35), building features (30), move-in timeframe (15) and lifestyle (20).
package matching

import (
	"cmp"
	"slices"

	"github.com/shinyyama/crib-match-backend/internal/model"
)

const (
	LocationWeight  = 35.0
	FeaturesWeight  = 30.0
	MoveInWeight    = 15.0
	LifestyleWeight = 20.0

	// Flexible matches any move-in timeframe.
	Flexible = "Flexible"
)

type Breakdown struct {
	Location  float64 `json:"location"`
	Features  float64 `json:"features"`
	MoveIn    float64 `json:"move_in"`
	Lifestyle float64 `json:"lifestyle"`
}

func (b Breakdown) Total() float64 {
	return b.Location + b.Features + b.MoveIn + b.Lifestyle
}

// Score returns the compatibility of r and l. It is deterministic and unrounded.
func Score(r *model.RenterPreference, l *model.LandlordPreference) float64 {
	return Explain(r, l).Total()
}

func Explain(r *model.RenterPreference, l *model.LandlordPreference) Breakdown {
	renterTags := toSet(r.Preferences)
	return Breakdown{
		Location:  locationScore(r.Locations, l.Location),
		Features:  featuresScore(renterTags, toSet(l.BuildingFeatures)),
		MoveIn:    moveInScore(r.MoveInDate, l.PreferredMoveInDate),
		Lifestyle: lifestyleScore(toSet(l.TenantPreferences), renterTags),
	}
}

// An empty location list means the renter will live anywhere.
func locationScore(wanted []string, location string) float64 {
	if len(wanted) == 0 || slices.Contains(wanted, location) {
		return LocationWeight
	}
	return 0
}

func featuresScore(renterTags, features map[string]struct{}) float64 {
	if len(renterTags) == 0 || len(features) == 0 {
		return FeaturesWeight / 2
	}
	return float64(overlap(renterTags, features)) / float64(len(renterTags)) * FeaturesWeight
}

func moveInScore(renter, landlord string) float64 {
	if renter == landlord || renter == Flexible || landlord == Flexible {
		return MoveInWeight
	}
	return MoveInWeight / 2
}

func lifestyleScore(tenantTags, renterTags map[string]struct{}) float64 {
	if len(tenantTags) == 0 || len(renterTags) == 0 {
		return LifestyleWeight / 2
	}
	return float64(overlap(tenantTags, renterTags)) / float64(min(len(tenantTags), len(renterTags))) * LifestyleWeight
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// Pair is one scored renter/landlord combination.
type Pair struct {
	RenterID   string
	LandlordID string
	Score      float64
}

// ScoreAll scores every renter against every landlord and returns the pairs
// ordered by score, highest first. Ties keep renter-major input order.
func ScoreAll(renters []model.RenterPreference, landlords []model.LandlordPreference) []Pair {
	pairs := make([]Pair, 0, len(renters)*len(landlords))
	for i := range renters {
		for j := range landlords {
			pairs = append(pairs, Pair{
				RenterID:   renters[i].ID,
				LandlordID: landlords[j].ID,
				Score:      Score(&renters[i], &landlords[j]),
			})
		}
	}
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return pairs
}
