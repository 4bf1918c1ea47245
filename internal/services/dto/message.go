package dto

import (
	"time"

	"webresume_backend/internal/models"
)

type CreateMessageRequest struct {
	SenderName  string `json:"sender_name" validate:"notblank,max=100"`
	SenderEmail string `json:"sender_email" validate:"required,email,max=254"`
	Message     string `json:"message" validate:"notblank"`
}

// ContactRequest - тело /send-message/: без валидатора, только проверка пустых полей
type ContactRequest struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Message     string `json:"message"`
}

// MissingFields возвращает имена пустых полей в порядке формы
func (r *ContactRequest) MissingFields() []string {
	var missing []string
	if isBlank(r.SenderName) {
		missing = append(missing, "sender_name")
	}
	if isBlank(r.SenderEmail) {
		missing = append(missing, "sender_email")
	}
	if isBlank(r.Message) {
		missing = append(missing, "message")
	}
	return missing
}

func (r *ContactRequest) ToCreate() *CreateMessageRequest {
	return &CreateMessageRequest{
		SenderName:  r.SenderName,
		SenderEmail: r.SenderEmail,
		Message:     r.Message,
	}
}

type MessageResponse struct {
	ID          string    `json:"id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	IsRead      bool      `json:"is_read"`
}

func NewMessageResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:          m.ID,
		SenderName:  m.SenderName,
		SenderEmail: m.SenderEmail,
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
		IsRead:      m.IsRead,
	}
}
