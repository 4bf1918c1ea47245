package relay

import (
	"context"
	"errors"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrNoBotToken = errors.New("telegram bot token is not configured")

// TelegramSender - Sender поверх go-telegram-bot-api
type TelegramSender struct {
	client      *http.Client
	apiEndpoint string
}

// NewTelegramSender: apiEndpoint в формате tgbotapi ("https://api.telegram.org/bot%s/%s"),
// пустая строка - боевой API.
func NewTelegramSender(apiEndpoint string, timeout time.Duration) *TelegramSender {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	return &TelegramSender{
		client:      &http.Client{Timeout: timeout},
		apiEndpoint: apiEndpoint,
	}
}

// bot собирает клиента без обращения к getMe (NewBotAPI делает сетевой вызов)
func (s *TelegramSender) bot(token string) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: s.client,
		Buffer: 100,
	}
	bot.SetAPIEndpoint(s.apiEndpoint)
	return bot
}

func (s *TelegramSender) Send(ctx context.Context, out Outgoing) error {
	if out.BotToken == "" {
		return ErrNoBotToken
	}

	var msg tgbotapi.MessageConfig
	if out.ChatID != 0 {
		msg = tgbotapi.NewMessage(out.ChatID, out.Text)
	} else {
		msg = tgbotapi.NewMessageToChannel(out.Username, out.Text)
	}
	msg.ParseMode = out.ParseMode

	bot := s.bot(out.BotToken)
	done := make(chan error, 1)
	go func() {
		_, err := bot.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SelfCheck - getMe; возвращает имя бота
func (s *TelegramSender) SelfCheck(token string) (string, error) {
	if token == "" {
		return "", ErrNoBotToken
	}
	me, err := s.bot(token).GetMe()
	if err != nil {
		return "", err
	}
	return me.UserName, nil
}
