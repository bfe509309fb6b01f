package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrServiceNotFound           = errors.New("service not found")
	ErrSubServiceNotFound        = errors.New("sub-service not found")
	ErrServiceHasActiveContracts = errors.New("cannot delete a service with active contracts")
)

type ServiceType string

const (
	ServiceTypeWebDevelopment ServiceType = "WEB_DEVELOPMENT"
	ServiceTypePaidTraffic    ServiceType = "PAID_TRAFFIC"
	ServiceTypeHosting        ServiceType = "HOSTING"
	ServiceTypeSocialMedia    ServiceType = "SOCIAL_MEDIA"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeWebDevelopment, ServiceTypePaidTraffic, ServiceTypeHosting, ServiceTypeSocialMedia:
		return true
	}
	return false
}

// TrafficDiscount is the bundle discount of a PAID_TRAFFIC service. It is
// stored as JSONB.
type TrafficDiscount struct {
	Enabled     bool            `json:"enabled"`
	Percentage  decimal.Decimal `json:"percentage"`
	Description string          `json:"description,omitempty"`
}

func (d TrafficDiscount) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *TrafficDiscount) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*d = TrafficDiscount{}
		return nil
	default:
		return fmt.Errorf("traffic discount: unsupported type %T", src)
	}
	return json.Unmarshal(raw, d)
}

// Applies reports whether the discount takes effect for a given number of
// selected sub-services. Only a pair of sub-services gets the bundle price.
func (d *TrafficDiscount) Applies(selected int) bool {
	return d != nil && d.Enabled && d.Percentage.IsPositive() && selected == 2
}

type Service struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Type                ServiceType      `json:"type"`
	BasePrice           decimal.Decimal  `json:"basePrice"`
	TrafficDiscount     *TrafficDiscount `json:"trafficDiscount,omitempty"`
	SubServices         []SubService     `json:"subServices"`
	Plans               []Plan           `json:"plans,omitempty"`
	ActiveContractCount int              `json:"activeContracts"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

func (s *Service) SubService(id string) (*SubService, bool) {
	for i := range s.SubServices {
		if s.SubServices[i].ID == id {
			return &s.SubServices[i], true
		}
	}
	return nil, false
}

func (s *Service) Plan(id string) (*Plan, bool) {
	for i := range s.Plans {
		if s.Plans[i].ID == id {
			return &s.Plans[i], true
		}
	}
	return nil, false
}

type SubService struct {
	ID          string          `json:"id"`
	ServiceID   string          `json:"serviceId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
