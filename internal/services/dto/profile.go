package dto

import (
	"time"

	"webresume_backend/internal/models"
)

// ProfileRequest - создание и обновление профиля.
// TelegramToken принимается в открытом виде и сохраняется зашифрованным.
// Пустая строка в telegram_token удаляет токен.
type ProfileRequest struct {
	TelegramToken    *string `json:"telegram_token" validate:"omitempty,max=255"`
	TelegramUsername *string `json:"telegram_username" validate:"omitempty,max=100"`
	TelegramChatID   *int64  `json:"telegram_chat_id"`
}

// ProfileResponse никогда не содержит сам токен
type ProfileResponse struct {
	ID               string        `json:"id"`
	User             *UserResponse `json:"user"`
	TelegramUsername string        `json:"telegram_username"`
	TelegramChatID   *int64        `json:"telegram_chat_id"`
	HasTelegramToken bool          `json:"has_telegram_token"`
	ResumePDF        string        `json:"resume_pdf"`
	ResumePDFURL     string        `json:"resume_pdf_url,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func NewProfileResponse(p *models.Profile) *ProfileResponse {
	resp := &ProfileResponse{
		ID:               p.ID,
		TelegramUsername: p.TelegramUsername,
		TelegramChatID:   p.TelegramChatID,
		HasTelegramToken: p.TelegramToken != "",
		ResumePDF:        p.ResumePDF,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.User != nil {
		resp.User = NewUserResponse(p.User)
	}
	return resp
}
