package model

import "time"

// Match is derived data: the whole table is regenerated on every matching run.
type Match struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	RenterID           string    `gorm:"column:renter_id;size:36;index;not null" json:"renter_id"`
	LandlordID         string    `gorm:"column:landlord_id;size:36;index;not null" json:"landlord_id"`
	CompatibilityScore float64   `gorm:"column:compatibility_score;not null" json:"compatibility_score"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Match) TableName() string {
	return "matches"
}
