package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrContractNotFound = errors.New("contract not found")

type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractInactive  ContractStatus = "INACTIVE"
	ContractCancelled ContractStatus = "CANCELLED"
	ContractCompleted ContractStatus = "COMPLETED"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractInactive, ContractCancelled, ContractCompleted:
		return true
	}
	return false
}

// Contract binds a client to one service, optionally narrowed to a
// sub-service or a plan.
type Contract struct {
	ID           string         `json:"id"`
	ClientID     string         `json:"clientId"`
	ServiceID    string         `json:"serviceId"`
	SubServiceID *string        `json:"subServiceId"`
	PlanID       *string        `json:"planId"`
	Status       ContractStatus `json:"status"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      *time.Time     `json:"endDate"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	// Populated by listing queries only.
	Client     *Client     `json:"client,omitempty"`
	Service    *Service    `json:"service,omitempty"`
	SubService *SubService `json:"subService,omitempty"`
	Plan       *Plan       `json:"plan,omitempty"`
}

func NewContract(clientID, serviceID string, subServiceID, planID *string, startDate time.Time) *Contract {
	now := time.Now()
	return &Contract{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		ServiceID:    serviceID,
		SubServiceID: subServiceID,
		PlanID:       planID,
		Status:       ContractActive,
		StartDate:    startDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
