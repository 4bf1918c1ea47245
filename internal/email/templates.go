package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateNewMessage - копия заявки с сайта
const TemplateNewMessage = "new_message"

const newMessageTemplate = `<h3>Новое сообщение с сайта</h3>
<p><b>От:</b> {{.SenderName}}</p>
<p><b>Email:</b> {{.SenderEmail}}</p>
<p><b>Сообщение:</b></p>
<p>{{.Message}}</p>
<p><small>{{.Date}}</small></p>`

// TemplateManager хранит разобранные html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	template.Must(tm.add(TemplateNewMessage, newMessageTemplate))
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	_, err := tm.add(name, templateStr)
	return err
}

func (tm *TemplateManager) add(name, templateStr string) (*template.Template, error) {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return tpl, nil
}
