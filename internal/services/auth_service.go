package services

import (
	"context"
	"errors"
	"time"

	"webresume_backend/internal/auth"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/models"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/services/dto"
	"webresume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Status(requester Requester) *dto.AuthStatusResponse
	// EnsureAdmin создает администратора, если пользователя с таким именем еще нет
	EnsureAdmin(ctx context.Context, db *gorm.DB, username, email, password string) (bool, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWarn(ctx, "login failed: unknown user", "username", req.Username)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed: wrong password", "username", req.Username)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		ExpiresAt:   time.Now().Add(s.tokens.TTL()),
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Status(requester Requester) *dto.AuthStatusResponse {
	if !requester.Authenticated() {
		return &dto.AuthStatusResponse{}
	}
	return &dto.AuthStatusResponse{
		IsAuthenticated: true,
		Username:        requester.Username,
		IsStaff:         requester.IsStaff,
	}
}

func (s *authService) EnsureAdmin(ctx context.Context, db *gorm.DB, username, email, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := s.userRepo.FindByUsername(tx, username)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return err
		}

		if err := auth.ValidatePassword(password); err != nil {
			return err
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		if err := s.userRepo.Create(tx, &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
		}); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		logger.CtxInfo(ctx, "first admin created", "username", username)
	}
	return created, nil
}
