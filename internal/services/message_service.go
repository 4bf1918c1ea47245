package services

import (
	"context"
	"errors"

	"webresume_backend/internal/logger"
	"webresume_backend/internal/models"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/services/dto"
	"webresume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MessageService - заявки контактной формы
type MessageService interface {
	// Create сохраняет заявку и затем уведомляет владельца. Исход уведомления на ответ не влияет.
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
	List(ctx context.Context, db *gorm.DB) ([]*dto.MessageResponse, error)
	UnreadCount(ctx context.Context, db *gorm.DB) (int64, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.MessageResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	MarkAsRead(ctx context.Context, db *gorm.DB, id string) error
}

type messageService struct {
	messageRepo repositories.MessageRepository
	notifier    Notifier
}

func NewMessageService(messageRepo repositories.MessageRepository, notifier Notifier) MessageService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &messageService{
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

func (s *messageService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	msg := &models.Message{
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Message:     req.Message,
	}

	if err := s.messageRepo.Create(db, msg); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "contact message saved", "message_id", msg.ID)

	s.notifier.Notify(ctx, msg)

	return dto.NewMessageResponse(msg), nil
}

func (s *messageService) List(ctx context.Context, db *gorm.DB) ([]*dto.MessageResponse, error) {
	messages, err := s.messageRepo.List(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	resp := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, dto.NewMessageResponse(&messages[i]))
	}
	return resp, nil
}

func (s *messageService) UnreadCount(ctx context.Context, db *gorm.DB) (int64, error) {
	count, err := s.messageRepo.CountUnread(db)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

func (s *messageService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.MessageResponse, error) {
	msg, err := s.messageRepo.FindByID(db, id)
	if err != nil {
		return nil, mapMessageError(err)
	}
	return dto.NewMessageResponse(msg), nil
}

func (s *messageService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.messageRepo.Delete(db, id); err != nil {
		return mapMessageError(err)
	}
	logger.CtxInfo(ctx, "contact message deleted", "message_id", id)
	return nil
}

func (s *messageService) MarkAsRead(ctx context.Context, db *gorm.DB, id string) error {
	msg, err := s.messageRepo.FindByID(db, id)
	if err != nil {
		return mapMessageError(err)
	}
	if msg.IsRead {
		return nil
	}

	if err := s.messageRepo.MarkAsRead(db, id); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func mapMessageError(err error) error {
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return apperrors.ErrMessageNotFound
	}
	return apperrors.DatabaseError(err)
}
