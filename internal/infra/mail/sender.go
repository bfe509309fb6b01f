package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/agency-admin/internal/config"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

//go:embed templates/*.html
var templatesFS embed.FS

var summaryTemplate = template.Must(template.ParseFS(templatesFS, "templates/provisioning_summary.html"))

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(cfg config.MailConfig) *EmailSender {
	return &EmailSender{
		From:     cfg.From,
		NotifyTo: cfg.NotifyTo,
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// NotifyClientProvisioned emails the provisioning summary to the team
// address.
func (s *EmailSender) NotifyClientProvisioned(ctx context.Context, event usecase.ClientProvisionedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := RenderSummary(event)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.NotifyTo)
	m.SetHeader("Subject", Subject(event))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

func Subject(event usecase.ClientProvisionedEvent) string {
	if event.Operation == usecase.OperationEdit {
		return fmt.Sprintf("Client updated: %s (%s)", event.ClientName, event.Company)
	}
	return fmt.Sprintf("New client: %s (%s)", event.ClientName, event.Company)
}

func RenderSummary(event usecase.ClientProvisionedEvent) (string, error) {
	data := SummaryEmailData{
		Event:  event,
		Action: "provisioned",
		Total:  event.Total.StringFixed(2),
	}
	if event.Operation == usecase.OperationEdit {
		data.Action = "updated"
	}
	for _, l := range event.Lines {
		data.LineAmounts = append(data.LineAmounts, l.Amount.StringFixed(2))
	}

	var body bytes.Buffer
	if err := summaryTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return body.String(), nil
}
