package model

import "time"

// Chat connects one renter and one landlord. It is opened once both have completed preferences.
type Chat struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	RenterUID   string    `gorm:"column:renter_uid;size:128;index:idx_chat_pair,unique" json:"renter_uid"`
	LandlordUID string    `gorm:"column:landlord_uid;size:128;index:idx_chat_pair,unique" json:"landlord_uid"`
	PropertyID  *string   `gorm:"column:property_id;size:36" json:"property_id"`
	ProfileID   *string   `gorm:"column:profile_id;size:36" json:"profile_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Chat) TableName() string {
	return "chats"
}

func (c *Chat) HasParticipant(uid string) bool {
	return uid != "" && (c.RenterUID == uid || c.LandlordUID == uid)
}
