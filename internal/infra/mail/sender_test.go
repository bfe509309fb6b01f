package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/agency-admin/internal/usecase"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func summaryEvent() usecase.ClientProvisionedEvent {
	return usecase.ClientProvisionedEvent{
		Operation:   usecase.OperationCreate,
		ClientID:    "c-1",
		ClientName:  "Ana <Lima>",
		ClientEmail: "ana@example.com",
		Company:     "Lima Co",
		StartDate:   "2024-03-01",
		Lines: []usecase.ProvisionedLineEvent{
			{Description: "Initial payment - Paid traffic - Meta Ads", Amount: decimal.NewFromInt(1080)},
			{Description: "Initial payment - Paid traffic - Google Ads", Amount: decimal.NewFromInt(1350)},
		},
		Total: decimal.NewFromInt(2430),
	}
}

func TestRenderSummary(t *testing.T) {
	body, err := RenderSummary(summaryEvent())
	require.NoError(t, err)

	assert.Contains(t, body, "Ana &lt;Lima&gt; was provisioned")
	assert.Contains(t, body, "Initial payment - Paid traffic - Meta Ads")
	assert.Contains(t, body, "1080.00")
	assert.Contains(t, body, "1350.00")
	assert.Contains(t, body, "2430.00")
}

func TestSubject(t *testing.T) {
	ev := summaryEvent()
	assert.Equal(t, "New client: Ana <Lima> (Lima Co)", Subject(ev))

	ev.Operation = usecase.OperationEdit
	assert.Equal(t, "Client updated: Ana <Lima> (Lima Co)", Subject(ev))
}

func TestNotifyClientProvisioned(t *testing.T) {
	dialer := &fakeDialer{}
	s := &EmailSender{From: "noreply@agency.local", NotifyTo: "ops@agency.local", dialer: dialer}

	require.NoError(t, s.NotifyClientProvisioned(context.Background(), summaryEvent()))
	require.Len(t, dialer.sent, 1)

	m := dialer.sent[0]
	assert.Equal(t, []string{"ops@agency.local"}, m.GetHeader("To"))
	assert.Equal(t, []string{"noreply@agency.local"}, m.GetHeader("From"))

	var raw bytes.Buffer
	_, err := m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "text/html")
}

func TestNotifyClientProvisionedSMTPFailure(t *testing.T) {
	smtpErr := errors.New("connection refused")
	s := &EmailSender{From: "a@b.c", NotifyTo: "d@e.f", dialer: &fakeDialer{err: smtpErr}}

	err := s.NotifyClientProvisioned(context.Background(), summaryEvent())
	assert.ErrorIs(t, err, smtpErr)
}

func TestNotifyClientProvisionedCancelled(t *testing.T) {
	dialer := &fakeDialer{}
	s := &EmailSender{dialer: dialer}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.NotifyClientProvisioned(ctx, summaryEvent()), context.Canceled)
	assert.Empty(t, dialer.sent)
}
