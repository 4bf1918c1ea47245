package services

import (
	"context"
	"strings"
	"sync"

	"webresume_backend/internal/email"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/models"
	"webresume_backend/internal/relay"
)

const (
	DeliveryModeSync  = "sync"
	DeliveryModeAsync = "async"
)

// Notifier - побочное уведомление о новой заявке. Ошибок не возвращает.
type Notifier interface {
	Notify(ctx context.Context, msg *models.Message)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, *models.Message) {}

// ContactNotifier пересылает заявку в Telegram и (опционально) копию на почту
type ContactNotifier struct {
	relay    *relay.Relay
	mailer   email.Provider
	notifyTo []string
	async    bool

	wg sync.WaitGroup
}

func NewContactNotifier(r *relay.Relay, mailer email.Provider, notifyTo []string, mode string) *ContactNotifier {
	return &ContactNotifier{
		relay:    r,
		mailer:   mailer,
		notifyTo: notifyTo,
		async:    mode == DeliveryModeAsync,
	}
}

// Notify в режиме sync блокирует до завершения всех попыток.
// Отмена запроса клиентом доставку не прерывает.
func (n *ContactNotifier) Notify(ctx context.Context, msg *models.Message) {
	detached := context.WithoutCancel(ctx)

	if !n.async {
		n.deliver(detached, msg)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(detached, msg)
	}()
}

// Wait дожидается фоновых доставок (graceful shutdown)
func (n *ContactNotifier) Wait() {
	n.wg.Wait()
}

func (n *ContactNotifier) deliver(ctx context.Context, msg *models.Message) {
	notification := relay.Notification{
		SenderName:  msg.SenderName,
		SenderEmail: msg.SenderEmail,
		Body:        msg.Message,
		CreatedAt:   msg.CreatedAt,
	}

	if n.relay != nil {
		report, err := n.relay.Deliver(ctx, notification)
		if err != nil {
			logger.CtxWithError(ctx, "telegram relay failed", err, "message_id", msg.ID, "attempts", len(report.Attempts))
		} else {
			logger.CtxInfo(ctx, "telegram relay delivered", "message_id", msg.ID, "via", report.Via)
		}
	}

	n.mailCopy(ctx, msg)
}

func (n *ContactNotifier) mailCopy(ctx context.Context, msg *models.Message) {
	if n.mailer == nil || len(n.notifyTo) == 0 {
		return
	}

	err := n.mailer.SendTemplate(n.notifyTo, "Новое сообщение с сайта: "+strings.TrimSpace(msg.SenderName), email.TemplateNewMessage, email.TemplateData{
		"SenderName":  msg.SenderName,
		"SenderEmail": msg.SenderEmail,
		"Message":     msg.Message,
		"Date":        msg.CreatedAt.Format(relay.DateLayout),
	})
	if err != nil {
		logger.CtxWithError(ctx, "contact email copy failed", err, "message_id", msg.ID)
	}
}
