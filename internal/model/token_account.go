package model

import "time"

// TokenAccount stores the spendable balance and the lifetime earned counter.
type TokenAccount struct {
	UserID      string    `gorm:"column:user_id;primaryKey;size:128" json:"user_id"`
	Tokens      int64     `gorm:"column:tokens;not null;default:0" json:"tokens"`
	TotalEarned int64     `gorm:"column:total_earned;not null;default:0" json:"total_earned"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TokenAccount) TableName() string {
	return "user_tokens"
}
