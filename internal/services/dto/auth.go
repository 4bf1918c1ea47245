package dto

import (
	"strings"
	"time"

	"webresume_backend/internal/models"
)

// LoginRequest - запрос входа
type LoginRequest struct {
	Username string `json:"username" validate:"notblank,max=150"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - ответ с токеном
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        *UserResponse `json:"user"`
}

// AuthStatusResponse - состояние текущей сессии
type AuthStatusResponse struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	Username        string `json:"username,omitempty"`
	IsStaff         bool   `json:"is_staff"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
