// Package relay доставляет заявки контактной формы в Telegram.
//
// Доставка - упорядоченный список попыток (формат, способ адресации),
// первая успешная попытка завершает цепочку.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"webresume_backend/internal/logger"
)

// Notification - то, что отправляем (уже сохраненное сообщение)
type Notification struct {
	SenderName  string
	SenderEmail string
	Body        string
	CreatedAt   time.Time
}

// Destination - куда и чем отправлять
type Destination struct {
	BotToken string
	ChatID   int64
	Username string
}

// Outgoing - один запрос к API бота
type Outgoing struct {
	BotToken  string
	ChatID    int64
	Username  string
	Text      string
	ParseMode string
}

// Sender - транспорт (Telegram API или фейк в тестах)
type Sender interface {
	Send(ctx context.Context, out Outgoing) error
}

// DestinationSource - откуда брать реквизиты получателя
type DestinationSource interface {
	Destination(ctx context.Context) (Destination, error)
}

// StaticDestination - реквизиты из конфигурации
type StaticDestination Destination

func (s StaticDestination) Destination(context.Context) (Destination, error) {
	return Destination(s), nil
}

// Formatter строит текст и parse_mode
type Formatter func(n Notification) (text string, parseMode string)

// Resolver адресует сообщение; ok=false - у получателя нет нужного идентификатора
type Resolver func(d Destination, text, parseMode string) (out Outgoing, ok bool)

type Attempt struct {
	Name    string
	Format  Formatter
	Resolve Resolver
}

// DefaultAttempts: markdown -> plain -> plain на @username
func DefaultAttempts() []Attempt {
	return []Attempt{
		{Name: "markdown", Format: RenderMarkdown, Resolve: ByChatID},
		{Name: "plain", Format: RenderPlain, Resolve: ByChatID},
		{Name: "plain_username", Format: RenderPlain, Resolve: ByUsername},
	}
}

var ErrNoTarget = errors.New("destination has no identifier for this attempt")

// AttemptResult - итог одной попытки
type AttemptResult struct {
	Name string
	Err  error
}

// Report - итог доставки
type Report struct {
	Delivered bool
	Via       string
	Attempts  []AttemptResult
}

// DeliveryError - исчерпаны все попытки
type DeliveryError struct {
	Attempts []AttemptResult
}

func (e *DeliveryError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Name, a.Err))
	}
	return "telegram delivery failed: " + strings.Join(parts, "; ")
}

type Relay struct {
	sender   Sender
	source   DestinationSource
	attempts []Attempt
	timeout  time.Duration
}

type Option func(*Relay)

func WithAttempts(attempts []Attempt) Option {
	return func(r *Relay) { r.attempts = attempts }
}

func WithTimeout(d time.Duration) Option {
	return func(r *Relay) { r.timeout = d }
}

func New(sender Sender, source DestinationSource, opts ...Option) *Relay {
	r := &Relay{
		sender:   sender,
		source:   source,
		attempts: DefaultAttempts(),
		timeout:  15 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Deliver проходит попытки по порядку. Ошибка - *DeliveryError (или ошибка источника реквизитов).
func (r *Relay) Deliver(ctx context.Context, n Notification) (Report, error) {
	log := logger.FromContext(ctx)

	dest, err := r.source.Destination(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("resolve destination: %w", err)
	}

	var report Report
	for _, attempt := range r.attempts {
		if err := ctx.Err(); err != nil {
			report.Attempts = append(report.Attempts, AttemptResult{Name: attempt.Name, Err: err})
			continue
		}

		text, mode := attempt.Format(n)
		out, ok := attempt.Resolve(dest, text, mode)
		if !ok {
			report.Attempts = append(report.Attempts, AttemptResult{Name: attempt.Name, Err: ErrNoTarget})
			log.Debug("relay attempt skipped", "attempt", attempt.Name)
			continue
		}

		err := r.send(ctx, out)
		report.Attempts = append(report.Attempts, AttemptResult{Name: attempt.Name, Err: err})
		if err == nil {
			report.Delivered = true
			report.Via = attempt.Name
			log.Info("relay delivered", "attempt", attempt.Name)
			return report, nil
		}
		log.Warn("relay attempt failed", "attempt", attempt.Name, "error", err.Error())
	}

	return report, &DeliveryError{Attempts: report.Attempts}
}

func (r *Relay) send(ctx context.Context, out Outgoing) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.sender.Send(ctx, out)
}

// ByChatID - адресация по числовому chat_id
func ByChatID(d Destination, text, parseMode string) (Outgoing, bool) {
	if d.ChatID == 0 {
		return Outgoing{}, false
	}
	return Outgoing{BotToken: d.BotToken, ChatID: d.ChatID, Text: text, ParseMode: parseMode}, true
}

// ByUsername - адресация по текстовому @username
func ByUsername(d Destination, text, parseMode string) (Outgoing, bool) {
	name := strings.TrimPrefix(strings.TrimSpace(d.Username), "@")
	if name == "" {
		return Outgoing{}, false
	}
	return Outgoing{BotToken: d.BotToken, Username: "@" + name, Text: text, ParseMode: parseMode}, true
}
