package main

import (
	"context"
	"fmt"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func seedCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample renter and landlord preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.open()
			if err != nil {
				return err
			}
			n, err := seedPreferences(cmd.Context(), repository.NewPreferenceRepository(conn), force)
			if err != nil {
				return err
			}
			if n == 0 {
				a.log.Info("preferences already exist; skipping seed (use --force to override)")
				return nil
			}
			a.log.Info("seeded preferences", zap.Int("records", n))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even when preferences already exist")
	return cmd
}

// seedPreferences upserts the sample users and returns how many records it wrote.
func seedPreferences(ctx context.Context, repo repository.PreferenceRepository, force bool) (int, error) {
	if !force {
		renters, err := repo.ListRenters(ctx)
		if err != nil {
			return 0, err
		}
		landlords, err := repo.ListLandlords(ctx)
		if err != nil {
			return 0, err
		}
		if len(renters) > 0 || len(landlords) > 0 {
			return 0, nil
		}
	}
	n := 0
	for _, r := range sampleRenters() {
		if err := repo.SaveRenter(ctx, &r); err != nil {
			return n, fmt.Errorf("seed renter %s: %w", r.UserID, err)
		}
		n++
	}
	for _, l := range sampleLandlords() {
		if err := repo.SaveLandlord(ctx, &l); err != nil {
			return n, fmt.Errorf("seed landlord %s: %w", l.UserID, err)
		}
		n++
	}
	return n, nil
}

func sampleRenters() []model.RenterPreference {
	return []model.RenterPreference{
		{UserID: "seed-renter-alex", Bedrooms: 2, Bathrooms: 1, Budget: 2500, Locations: []string{"Downtown", "Midtown"}, MoveInDate: "ASAP", Preferences: []string{"Pet-friendly", "Close to public transit", "Gym access"}},
		{UserID: "seed-renter-sam", Bedrooms: 1, Bathrooms: 1, Budget: 1800, Locations: []string{"Uptown"}, MoveInDate: "Next month", Preferences: []string{"Furnished", "Utilities included", "Quiet neighborhood"}},
		{UserID: "seed-renter-jordan", Bedrooms: 3, Bathrooms: 2, Budget: 3200, Locations: []string{"Suburbs"}, MoveInDate: "2-3 months", Preferences: []string{"Parking available", "Garden/outdoor space", "Family-friendly"}},
		{UserID: "seed-renter-riley", Bedrooms: 1, Bathrooms: 1, Budget: 1500, MoveInDate: "Flexible", Preferences: []string{"Student-friendly", "High-speed internet"}},
	}
}

func sampleLandlords() []model.LandlordPreference {
	return []model.LandlordPreference{
		{UserID: "seed-landlord-maple", PropertyName: "Maple Lofts", PropertyType: "Apartment", Location: "Downtown", NeighborhoodType: "Urban", BuildingFeatures: []string{"Gym access", "Elevator in building", "Close to public transit"}, PetsAllowed: true, MinIncome: 60000, PreferredMoveInDate: "ASAP", LeaseLength: "1 year", TenantPreferences: []string{"Pet-friendly", "No smoking"}},
		{UserID: "seed-landlord-oak", PropertyName: "Oak Street House", PropertyType: "House", Location: "Suburbs", NeighborhoodType: "Family-friendly", BuildingFeatures: []string{"Parking available", "Garden/outdoor space"}, MinIncome: 80000, PreferredMoveInDate: "Flexible", LeaseLength: "2 years", TenantPreferences: []string{"Family-friendly", "Long-term preferred"}},
		{UserID: "seed-landlord-harbor", PropertyName: "Harbor View Studio", PropertyType: "Studio", Location: "Uptown", NeighborhoodType: "Beach/Waterfront", BuildingFeatures: []string{"Furnished", "Utilities included"}, MinIncome: 45000, PreferredMoveInDate: "Next month", LeaseLength: "6 months", TenantPreferences: []string{"Quiet neighborhood", "Professionals preferred"}},
	}
}
