package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/fluent-crm/internal/infra/queue"
)

//go:embed templates/welcome.html
var templates embed.FS

const welcomeSubject = "¡Bienvenido/a, %s! · Welcome aboard"

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender sends the bilingual welcome email to landing leads.
type EmailSender struct {
	from   string
	dialer dialer
	tmpl   *template.Template
}

func NewEmailSender(cfg Config) (*EmailSender, error) {
	tmpl, err := template.ParseFS(templates, "templates/welcome.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse welcome template: %w", err)
	}
	return &EmailSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		tmpl:   tmpl,
	}, nil
}

func (s *EmailSender) SendWelcome(ctx context.Context, lead queue.LeadCapturedPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.compose(lead)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *EmailSender) compose(lead queue.LeadCapturedPayload) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, lead); err != nil {
		return nil, fmt.Errorf("failed to render welcome template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", lead.Email)
	m.SetHeader("Subject", fmt.Sprintf(welcomeSubject, lead.FirstName))
	m.SetBody("text/html", body.String())
	return m, nil
}
