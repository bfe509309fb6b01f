package mail

import "github.com/xavierca1/agency-admin/internal/usecase"

type SummaryEmailData struct {
	Event       usecase.ClientProvisionedEvent
	Action      string
	Total       string
	LineAmounts []string
}

type EmailSender struct {
	From     string
	NotifyTo string
	dialer   Dialer
}
