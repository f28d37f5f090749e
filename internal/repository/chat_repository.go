package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shinyyama/crib-match-backend/internal/model"
	"gorm.io/gorm"
)

type ChatRepository interface {
	FindOrCreate(ctx context.Context, chat *model.Chat) (*model.Chat, error)
	FindByID(ctx context.Context, id string) (*model.Chat, error)
	FindByUser(ctx context.Context, uid string) ([]model.Chat, error)
	CreateMessage(ctx context.Context, msg *model.ChatMessage) error
	ListMessages(ctx context.Context, chatID string) ([]model.ChatMessage, error)
	CountMessagesNotFrom(ctx context.Context, chatID, uid string) (int64, error)
	SetDB(db *gorm.DB)
}

type chatRepository struct {
	dbHolder
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	r := &chatRepository{}
	r.SetDB(db)
	return r
}

// FindOrCreate returns the chat for the renter/landlord pair, creating it on first use.
func (r *chatRepository) FindOrCreate(ctx context.Context, chat *model.Chat) (*model.Chat, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	cv, err := findPair(db.WithContext(ctx), chat.RenterUID, chat.LandlordUID)
	if err == nil {
		return cv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := *chat
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Create(&created).Error; err != nil {
		// lost a race on idx_chat_pair
		if cv, ferr := findPair(db.WithContext(ctx), chat.RenterUID, chat.LandlordUID); ferr == nil {
			return cv, nil
		}
		return nil, err
	}
	return &created, nil
}

func findPair(tx *gorm.DB, renterUID, landlordUID string) (*model.Chat, error) {
	var cv model.Chat
	if err := tx.Where("renter_uid = ? AND landlord_uid = ?", renterUID, landlordUID).First(&cv).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *chatRepository) FindByID(ctx context.Context, id string) (*model.Chat, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var cv model.Chat
	if err := db.WithContext(ctx).Where("id = ?", id).First(&cv).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *chatRepository) FindByUser(ctx context.Context, uid string) ([]model.Chat, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Chat
	if err := db.WithContext(ctx).
		Where("renter_uid = ? OR landlord_uid = ?", uid, uid).
		Order("updated_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *model.ChatMessage) error {
	db := r.conn()
	if db == nil {
		return ErrDBNotReady
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string) ([]model.ChatMessage, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.ChatMessage
	if err := db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// CountMessagesNotFrom counts messages in chatID sent by anyone other than uid.
func (r *chatRepository) CountMessagesNotFrom(ctx context.Context, chatID, uid string) (int64, error) {
	db := r.conn()
	if db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	if err := db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("chat_id = ? AND sender_uid <> ?", chatID, uid).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
