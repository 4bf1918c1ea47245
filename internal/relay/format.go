package relay

import (
	"fmt"
	"strings"
)

const (
	ParseModeMarkdown = "Markdown"
	DateLayout        = "2006-01-02 15:04:05"
)

// спецсимволы legacy Markdown у Telegram
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"`", "\\`",
)

func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// RenderMarkdown - текст с разметкой
func RenderMarkdown(n Notification) (string, string) {
	text := fmt.Sprintf("*Новое сообщение с сайта:*\n\n"+
		"*От:* %s\n"+
		"*Email:* %s\n"+
		"*Сообщение:* %s\n\n"+
		"*Дата:* %s",
		EscapeMarkdown(n.SenderName),
		EscapeMarkdown(n.SenderEmail),
		EscapeMarkdown(n.Body),
		n.CreatedAt.Format(DateLayout),
	)
	return text, ParseModeMarkdown
}

// RenderPlain - те же поля без разметки
func RenderPlain(n Notification) (string, string) {
	text := fmt.Sprintf("Новое сообщение с сайта:\n\n"+
		"От: %s\n"+
		"Email: %s\n"+
		"Сообщение: %s\n\n"+
		"Дата: %s",
		n.SenderName,
		n.SenderEmail,
		n.Body,
		n.CreatedAt.Format(DateLayout),
	)
	return text, ""
}
