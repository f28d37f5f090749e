package model

import (
	"time"

	"gorm.io/datatypes"
)

// RenterPreference is what a renter submits during onboarding.
type RenterPreference struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                      `gorm:"column:user_id;size:128;uniqueIndex" json:"user_id"`
	Bedrooms    int                         `gorm:"column:bedrooms;not null;default:0" json:"bedrooms"`
	Bathrooms   float64                     `gorm:"column:bathrooms;not null;default:0" json:"bathrooms"`
	Budget      int64                       `gorm:"column:budget;not null;default:0" json:"budget"`
	Locations   datatypes.JSONSlice[string] `gorm:"column:locations" json:"locations"`
	MoveInDate  string                      `gorm:"column:move_in_date;size:64;not null" json:"move_in_date"`
	Preferences datatypes.JSONSlice[string] `gorm:"column:preferences" json:"preferences"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RenterPreference) TableName() string {
	return "renter_preferences"
}
