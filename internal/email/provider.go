package email

// Provider - отправка писем
type Provider interface {
	// Send отправляет письмо
	Send(email *Email) error

	// SendTemplate рендерит шаблон в HTML-тело и отправляет
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// NoopProvider используется, когда почта выключена
type NoopProvider struct{}

func (NoopProvider) Send(*Email) error { return nil }

func (NoopProvider) SendTemplate([]string, string, string, TemplateData) error { return nil }

func (NoopProvider) Validate() error { return nil }
