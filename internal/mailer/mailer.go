package mailer

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"text/template"
	"time"

	"gopkg.in/mail.v2"
)

//go:embed "templates"
var templateFS embed.FS

const (
	ActivationTemplate    = "user_activation.tmpl"
	PasswordResetTemplate = "password_reset.tmpl"
)

// Message is a rendered email ready to be handed to a dialer.
type Message struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

// The Mailer struct contains a mail.Dialer instance (used to connect to a
// SMTP server) and the sender information for emails.
type Mailer struct {
	dialer   *mail.Dialer
	sender   string
	attempts int
	backoff  time.Duration
}

// New initializes a new mail.Dialer instance with the given SMTP server settings
// and a 5-second timeout.
func New(host string, port int, username, password, sender string) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second
	return &Mailer{
		dialer:   dialer,
		sender:   sender,
		attempts: 3,
		backoff:  time.Second,
	}
}

// Render executes the subject, plainBody and htmlBody blocks of templateFile.
// The plain parts are rendered without HTML escaping so JSON payloads survive intact.
func Render(templateFile string, data any) (*Message, error) {
	plain, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}
	html, err := htmltemplate.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}
	subject := new(bytes.Buffer)
	if err := plain.ExecuteTemplate(subject, "subject", data); err != nil {
		return nil, err
	}
	plainBody := new(bytes.Buffer)
	if err := plain.ExecuteTemplate(plainBody, "plainBody", data); err != nil {
		return nil, err
	}
	htmlBody := new(bytes.Buffer)
	if err := html.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
		return nil, err
	}
	return &Message{
		Subject:   subject.String(),
		PlainBody: plainBody.String(),
		HTMLBody:  htmlBody.String(),
	}, nil
}

// Send renders templateFile with data and delivers it to recipient, retrying
// failed deliveries.
func (m *Mailer) Send(recipient, templateFile string, data any) error {
	rendered, err := Render(templateFile, data)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", rendered.Subject)
	msg.SetBody("text/plain", rendered.PlainBody)
	msg.AddAlternative("text/html", rendered.HTMLBody)
	for i := 1; i <= m.attempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		if i < m.attempts {
			time.Sleep(m.backoff)
		}
	}
	return err
}
