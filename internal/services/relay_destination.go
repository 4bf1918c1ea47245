package services

import (
	"context"
	"errors"

	"webresume_backend/internal/cryptox"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/relay"
	"webresume_backend/internal/repositories"

	"gorm.io/gorm"
)

var ErrNoBotCredentials = errors.New("no telegram bot token configured")

// ProfileDestinationSource берет реквизиты бота из конфигурации,
// а при отсутствии токена - из первого профиля администратора с расшифровываемым токеном.
type ProfileDestinationSource struct {
	db          *gorm.DB
	profileRepo repositories.ProfileRepository
	cipher      *cryptox.Cipher
	static      relay.Destination
}

func NewProfileDestinationSource(db *gorm.DB, profileRepo repositories.ProfileRepository, cipher *cryptox.Cipher, static relay.Destination) *ProfileDestinationSource {
	return &ProfileDestinationSource{
		db:          db,
		profileRepo: profileRepo,
		cipher:      cipher,
		static:      static,
	}
}

func (s *ProfileDestinationSource) Destination(ctx context.Context) (relay.Destination, error) {
	if s.static.BotToken != "" {
		return s.static, nil
	}
	if s.cipher == nil || s.db == nil {
		return relay.Destination{}, ErrNoBotCredentials
	}

	profiles, err := s.profileRepo.FindStaffWithToken(s.db.WithContext(ctx))
	if err != nil {
		return relay.Destination{}, err
	}

	for _, p := range profiles {
		result := s.cipher.Decrypt(p.TelegramToken)
		token, ok := result.Value()
		if !ok {
			logger.CtxWarn(ctx, "profile telegram token unavailable", "profile_id", p.ID, "reason", result.Err().Error())
			continue
		}

		dest := s.static
		dest.BotToken = token
		if p.TelegramChatID != nil && *p.TelegramChatID != 0 {
			dest.ChatID = *p.TelegramChatID
		}
		if p.TelegramUsername != "" {
			dest.Username = p.TelegramUsername
		}
		return dest, nil
	}

	return relay.Destination{}, ErrNoBotCredentials
}
