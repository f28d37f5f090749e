package model

import (
	"time"

	"gorm.io/datatypes"
)

// LandlordPreference describes a listed property and the tenant the landlord wants.
type LandlordPreference struct {
	ID                      string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID                  string                      `gorm:"column:user_id;size:128;uniqueIndex" json:"user_id"`
	PropertyName            string                      `gorm:"column:property_name;size:255;not null" json:"property_name"`
	PropertyType            string                      `gorm:"column:property_type;size:64" json:"property_type"`
	Location                string                      `gorm:"column:location;size:255;not null" json:"location"`
	NeighborhoodType        string                      `gorm:"column:neighborhood_type;size:64" json:"neighborhood_type"`
	NeighborhoodDescription *string                     `gorm:"column:neighborhood_description;type:text" json:"neighborhood_description"`
	BuildingFeatures        datatypes.JSONSlice[string] `gorm:"column:building_features" json:"building_features"`
	PetsAllowed             bool                        `gorm:"column:pets_allowed;not null;default:false" json:"pets_allowed"`
	MinIncome               int64                       `gorm:"column:min_income;not null;default:0" json:"min_income"`
	PreferredMoveInDate     string                      `gorm:"column:preferred_move_in_date;size:64;not null" json:"preferred_move_in_date"`
	LeaseLength             string                      `gorm:"column:lease_length;size:64" json:"lease_length"`
	TenantPreferences       datatypes.JSONSlice[string] `gorm:"column:tenant_preferences" json:"tenant_preferences"`
	CreatedAt               time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LandlordPreference) TableName() string {
	return "landlord_preferences"
}
