package email

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func newTestProvider(d Dialer) *SMTPProvider {
	return NewSMTPProviderWithDialer(&SMTPConfig{
		Host:      "smtp.test",
		Port:      25,
		FromEmail: "site@test.dev",
	}, d, nil)
}

func TestSMTPProvider_SendTemplate(t *testing.T) {
	d := &fakeDialer{}
	p := newTestProvider(d)

	err := p.SendTemplate([]string{"owner@test.dev"}, "New message", TemplateNewMessage, TemplateData{
		"SenderName":  "<b>Ann</b>",
		"SenderEmail": "ann@test.dev",
		"Message":     "hello",
		"Date":        "2024-01-02 03:04:05",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"owner@test.dev"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"New message"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;b&gt;Ann&lt;/b&gt;")
}

func TestSMTPProvider_Errors(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	p := newTestProvider(d)

	err := p.Send(&Email{To: []string{"a@test.dev"}, Subject: "x", Body: "y"})
	assert.ErrorContains(t, err, "connection refused")

	assert.Error(t, p.Send(&Email{Subject: "no recipients"}))

	bad := NewSMTPProviderWithDialer(&SMTPConfig{}, d, nil)
	assert.Error(t, bad.Validate())

	_, err = NewTemplateManager().Render("missing", nil)
	assert.Error(t, err)
}
