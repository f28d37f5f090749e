package model

import "time"

type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ChatID    string    `gorm:"column:chat_id;size:36;index" json:"chat_id"`
	SenderUID string    `gorm:"column:sender_uid;size:128;index" json:"sender_uid"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
