package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentOverdue   PaymentStatus = "OVERDUE"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

type PaymentMethod string

const (
	MethodPix          PaymentMethod = "PIX"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodDebitCard    PaymentMethod = "DEBIT_CARD"
	MethodCash         PaymentMethod = "CASH"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentCancelled:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodPix, MethodBankTransfer, MethodCreditCard, MethodDebitCard, MethodCash:
		return true
	}
	return false
}

type Payment struct {
	ID            string          `json:"id"`
	ContractID    string          `json:"contractId"`
	ClientID      string          `json:"clientId"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	PaymentDate   *time.Time      `json:"paymentDate"`
	Status        PaymentStatus   `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewInitialPayment builds the PENDING PIX payment that seeds every
// provisioned contract.
func NewInitialPayment(contract *Contract, amount decimal.Decimal, description string) *Payment {
	now := time.Now()
	return &Payment{
		ID:            uuid.New().String(),
		ContractID:    contract.ID,
		ClientID:      contract.ClientID,
		Amount:        amount,
		DueDate:       contract.StartDate,
		Status:        PaymentPending,
		PaymentMethod: MethodPix,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PaymentView is the flattened row used by payment listings.
type PaymentView struct {
	ID            string          `json:"id"`
	ContractID    string          `json:"contractId"`
	ClientID      string          `json:"clientId"`
	ClientName    string          `json:"clientName"`
	ServiceName   string          `json:"serviceName"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"dueDate"`
	PaymentDate   *string         `json:"paymentDate"`
	Status        PaymentStatus   `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Description   string          `json:"description"`
}
