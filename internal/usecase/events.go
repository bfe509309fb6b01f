package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OperationCreate = "create"
	OperationEdit   = "edit"
)

// ClientProvisionedEvent is published once a provisioning transaction has
// committed.
type ClientProvisionedEvent struct {
	Operation   string                 `json:"operation"`
	ClientID    string                 `json:"client_id"`
	ClientName  string                 `json:"client_name"`
	ClientEmail string                 `json:"client_email"`
	Company     string                 `json:"company"`
	StartDate   string                 `json:"start_date"`
	Lines       []ProvisionedLineEvent `json:"lines"`
	Total       decimal.Decimal        `json:"total"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

type ProvisionedLineEvent struct {
	ContractID  string          `json:"contract_id"`
	PaymentID   string          `json:"payment_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func newProvisionedEvent(op string, out *ProvisionClientOutput) ClientProvisionedEvent {
	ev := ClientProvisionedEvent{
		Operation:   op,
		ClientID:    out.Client.ID,
		ClientName:  out.Client.Name,
		ClientEmail: out.Client.Email,
		Company:     out.Client.Company,
		StartDate:   out.Client.ServiceStartDate.Format(time.DateOnly),
		Total:       decimal.Zero,
		OccurredAt:  time.Now().UTC(),
	}
	for _, p := range out.Payments {
		ev.Lines = append(ev.Lines, ProvisionedLineEvent{
			ContractID:  p.ContractID,
			PaymentID:   p.ID,
			Description: p.Description,
			Amount:      p.Amount,
		})
		ev.Total = ev.Total.Add(p.Amount)
	}
	return ev
}
