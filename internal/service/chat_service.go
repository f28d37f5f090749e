package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"gorm.io/gorm"
)

type OpenChatInput struct {
	CallerUID      string
	CounterpartUID string
	PropertyID     *string
	ProfileID      *string
}

type ChatService interface {
	Open(ctx context.Context, in OpenChatInput) (*model.Chat, error)
	ListByUser(ctx context.Context, uid string) ([]model.Chat, error)
	ListMessages(ctx context.Context, chatID, uid string) ([]model.ChatMessage, error)
	PostMessage(ctx context.Context, chatID, uid, body string) (*model.ChatMessage, error)
}

type chatService struct {
	chatRepo repository.ChatRepository
	prefRepo repository.PreferenceRepository
}

func NewChatService(chatRepo repository.ChatRepository, prefRepo repository.PreferenceRepository) ChatService {
	return &chatService{chatRepo: chatRepo, prefRepo: prefRepo}
}

// Open finds or creates the chat between the caller and the counterpart. One side must
// have renter preferences and the other landlord preferences.
func (s *chatService) Open(ctx context.Context, in OpenChatInput) (*model.Chat, error) {
	if in.CallerUID == "" || in.CounterpartUID == "" || in.CallerUID == in.CounterpartUID {
		return nil, ErrInvalidInput
	}
	renterUID, landlordUID, err := s.roles(ctx, in.CallerUID, in.CounterpartUID)
	if err != nil {
		return nil, err
	}
	return s.chatRepo.FindOrCreate(ctx, &model.Chat{
		RenterUID:   renterUID,
		LandlordUID: landlordUID,
		PropertyID:  in.PropertyID,
		ProfileID:   in.ProfileID,
	})
}

func (s *chatService) roles(ctx context.Context, a, b string) (string, string, error) {
	aRenter, err := s.hasRenter(ctx, a)
	if err != nil {
		return "", "", err
	}
	bLandlord, err := s.hasLandlord(ctx, b)
	if err != nil {
		return "", "", err
	}
	if aRenter && bLandlord {
		return a, b, nil
	}
	bRenter, err := s.hasRenter(ctx, b)
	if err != nil {
		return "", "", err
	}
	aLandlord, err := s.hasLandlord(ctx, a)
	if err != nil {
		return "", "", err
	}
	if bRenter && aLandlord {
		return b, a, nil
	}
	return "", "", ErrForbidden
}

func (s *chatService) hasRenter(ctx context.Context, uid string) (bool, error) {
	_, err := s.prefRepo.FindRenterByUser(ctx, uid)
	return found(err)
}

func (s *chatService) hasLandlord(ctx context.Context, uid string) (bool, error) {
	_, err := s.prefRepo.FindLandlordByUser(ctx, uid)
	return found(err)
}

func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *chatService) ListByUser(ctx context.Context, uid string) ([]model.Chat, error) {
	list, err := s.chatRepo.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Chat{}
	}
	return list, nil
}

func (s *chatService) ListMessages(ctx context.Context, chatID, uid string) ([]model.ChatMessage, error) {
	if _, err := s.participantChat(ctx, chatID, uid); err != nil {
		return nil, err
	}
	msgs, err := s.chatRepo.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return msgs, nil
}

func (s *chatService) PostMessage(ctx context.Context, chatID, uid, body string) (*model.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.participantChat(ctx, chatID, uid); err != nil {
		return nil, err
	}
	msg := &model.ChatMessage{ChatID: chatID, SenderUID: uid, Body: body}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) participantChat(ctx context.Context, chatID, uid string) (*model.Chat, error) {
	cv, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !cv.HasParticipant(uid) {
		return nil, ErrForbidden
	}
	return cv, nil
}
