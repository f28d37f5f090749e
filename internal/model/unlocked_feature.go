package model

import "time"

const (
	FeatureScheduleVisit = "Schedule Visit"
	FeaturePriorityMatch = "Priority Match"

	ScheduleVisitCost int64 = 10
	PriorityMatchCost int64 = 20
)

// UnlockedFeature is an append-only record of a token debit.
type UnlockedFeature struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"column:user_id;size:128;index;not null" json:"user_id"`
	PropertyID *string   `gorm:"column:property_id;size:36" json:"property_id"`
	ProfileID  *string   `gorm:"column:profile_id;size:36" json:"profile_id"`
	Feature    string    `gorm:"column:feature;size:128;not null" json:"feature"`
	FeatureKey string    `gorm:"column:feature_key;size:128;index" json:"feature_key"`
	TokensUsed int64     `gorm:"column:tokens_used;not null" json:"tokens_used"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UnlockedFeature) TableName() string {
	return "unlocked_features"
}
