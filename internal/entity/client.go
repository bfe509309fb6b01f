package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrEmailAlreadyExists = errors.New("client with this email already exists")
)

// Client is the agency's customer. Contracts and payments hang off it.
type Client struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Company          string     `json:"company"`
	ServiceStartDate time.Time  `json:"serviceStartDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	Contracts        []Contract `json:"contracts,omitempty"`
}

func NewClient(name, email, phone, company string, serviceStartDate time.Time) (*Client, error) {
	now := time.Now()
	client := &Client{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(name),
		Email:            strings.TrimSpace(email),
		Phone:            strings.TrimSpace(phone),
		Company:          strings.TrimSpace(company),
		ServiceStartDate: serviceStartDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(c.Email, "@") {
		return errors.New("email is invalid")
	}
	if c.Phone == "" {
		return errors.New("phone is required")
	}
	if c.Company == "" {
		return errors.New("company is required")
	}
	if c.ServiceStartDate.IsZero() {
		return errors.New("serviceStartDate is required")
	}
	return nil
}
