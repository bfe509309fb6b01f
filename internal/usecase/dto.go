package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type ProvisionClientInput struct {
	ID               string             `json:"id,omitempty"`
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Company          string             `json:"company"`
	ServiceStartDate string             `json:"serviceStartDate"`
	Services         []ServiceSelection `json:"services"`
	CustomDiscount   *CustomDiscount    `json:"customDiscount,omitempty"`
}

type ProvisionClientOutput struct {
	Client    *entity.Client    `json:"client"`
	Contracts []entity.Contract `json:"contracts"`
	Payments  []entity.Payment  `json:"payments"`
}

type SubServiceInput struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type PlanInput struct {
	ID            string          `json:"id,omitempty"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	PostsPerMonth int             `json:"postsPerMonth" validate:"gte=0"`
	Price         decimal.Decimal `json:"price"`
}

type ServiceInput struct {
	Name            string                  `json:"name" validate:"required"`
	Description     string                  `json:"description" validate:"required"`
	Type            entity.ServiceType      `json:"type" validate:"required,oneof=WEB_DEVELOPMENT PAID_TRAFFIC HOSTING SOCIAL_MEDIA"`
	BasePrice       *decimal.Decimal        `json:"basePrice"`
	TrafficDiscount *entity.TrafficDiscount `json:"trafficDiscount"`
	SubServices     []SubServiceInput       `json:"subServices" validate:"dive"`
	Plans           []PlanInput             `json:"plans" validate:"dive"`
}

type ContractInput struct {
	ClientID     string                `json:"clientId" validate:"required"`
	ServiceID    string                `json:"serviceId" validate:"required"`
	SubServiceID *string               `json:"subServiceId"`
	PlanID       *string               `json:"planId"`
	Status       entity.ContractStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE CANCELLED COMPLETED"`
	StartDate    string                `json:"startDate" validate:"required"`
	EndDate      *string               `json:"endDate"`
}

type PaymentInput struct {
	ContractID    string               `json:"contractId" validate:"required"`
	ClientID      string               `json:"clientId" validate:"required"`
	Amount        *decimal.Decimal     `json:"amount" validate:"required"`
	DueDate       string               `json:"dueDate" validate:"required"`
	PaymentDate   *string              `json:"paymentDate"`
	Status        entity.PaymentStatus `json:"status" validate:"required,oneof=PENDING PAID OVERDUE CANCELLED"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod" validate:"required,oneof=PIX BANK_TRANSFER CREDIT_CARD DEBIT_CARD CASH"`
	Description   string               `json:"description"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DeletedPayment echoes what a payment delete removed.
type DeletedPayment struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}
