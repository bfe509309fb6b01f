package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrPlanNotFound = errors.New("plan not found")

// Plan is a social media tier. Plans carry a ServiceID but are listed
// globally for every SOCIAL_MEDIA service.
type Plan struct {
	ID            string          `json:"id"`
	ServiceID     string          `json:"serviceId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PostsPerMonth int             `json:"postsPerMonth"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
