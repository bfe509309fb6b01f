package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// CustomDiscount is a client-level discount applied to every contract line
// on its own.
type CustomDiscount struct {
	Enabled bool            `json:"enabled"`
	Type    DiscountType    `json:"type"`
	Value   decimal.Decimal `json:"value"`
}

func (d *CustomDiscount) active() bool {
	return d != nil && d.Enabled
}

func (d *CustomDiscount) multiplier() decimal.Decimal {
	if d.active() && d.Type == DiscountPercentage {
		return one.Sub(d.Value.Div(hundred))
	}
	return one
}

func (d *CustomDiscount) fixed() decimal.Decimal {
	if d.active() && d.Type == DiscountFixed && d.Value.IsPositive() {
		return d.Value
	}
	return decimal.Zero
}

// Apply returns amount after the custom discount, clamped at zero.
func (d *CustomDiscount) Apply(amount decimal.Decimal) decimal.Decimal {
	return clampZero(amount.Mul(d.multiplier()).Sub(d.fixed()))
}

// ServiceSelection is one entry of the services list submitted with a client.
type ServiceSelection struct {
	ServiceID     string   `json:"serviceId"`
	SubServiceID  string   `json:"subServiceId,omitempty"`
	SubServiceIDs []string `json:"subServiceIds,omitempty"`
	PlanID        string   `json:"planId,omitempty"`
}

// SelectedSubServiceIDs prefers the list form and falls back to the single
// id. Duplicates are dropped, order is kept.
func (s ServiceSelection) SelectedSubServiceIDs() []string {
	ids := s.SubServiceIDs
	if len(ids) == 0 && s.SubServiceID != "" {
		ids = []string{s.SubServiceID}
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// PricedLine is one future contract with the amount of its initial payment.
type PricedLine struct {
	Service    *entity.Service
	SubService *entity.SubService
	Plan       *entity.Plan
	Base       decimal.Decimal
	Amount     decimal.Decimal
	Discounted bool
}

func (l PricedLine) Description() string {
	var b strings.Builder
	b.WriteString("Initial payment - ")
	b.WriteString(l.Service.Name)
	switch {
	case l.Plan != nil:
		b.WriteString(" - ")
		b.WriteString(l.Plan.Name)
	case l.SubService != nil:
		b.WriteString(" - ")
		b.WriteString(l.SubService.Name)
	}
	if l.Discounted {
		b.WriteString(" (with discount)")
	}
	return b.String()
}

// PriceSelection prices a selection against a loaded service. PAID_TRAFFIC
// with sub-services yields one line per sub-service, everything else a single
// line. The service must have its sub-services loaded, and its plans when it
// is SOCIAL_MEDIA.
func PriceSelection(svc *entity.Service, sel ServiceSelection, discount *CustomDiscount) ([]PricedLine, error) {
	subIDs := sel.SelectedSubServiceIDs()

	if svc.Type == entity.ServiceTypePaidTraffic && len(subIDs) > 0 {
		bundle := one
		if svc.TrafficDiscount.Applies(len(subIDs)) {
			bundle = one.Sub(svc.TrafficDiscount.Percentage.Div(hundred))
		}

		lines := make([]PricedLine, 0, len(subIDs))
		for _, id := range subIDs {
			sub, ok := svc.SubService(id)
			if !ok {
				return nil, fmt.Errorf("%w: %s", entity.ErrSubServiceNotFound, id)
			}
			base := sub.Price.Mul(bundle)
			lines = append(lines, PricedLine{
				Service:    svc,
				SubService: sub,
				Base:       base,
				Amount:     discount.Apply(base),
				Discounted: bundle.LessThan(one) || discount.multiplier().LessThan(one) || discount.fixed().IsPositive(),
			})
		}
		return lines, nil
	}

	line := PricedLine{Service: svc, Base: svc.BasePrice}

	// Both references are kept on the contract; the plan sets the price.
	if sel.SubServiceID != "" {
		sub, ok := svc.SubService(sel.SubServiceID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrSubServiceNotFound, sel.SubServiceID)
		}
		line.SubService = sub
		line.Base = sub.Price
	}
	if sel.PlanID != "" {
		plan, ok := svc.Plan(sel.PlanID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrPlanNotFound, sel.PlanID)
		}
		line.Plan = plan
		line.Base = plan.Price
	}

	line.Amount = discount.Apply(line.Base)
	line.Discounted = discount.multiplier().LessThan(one) || discount.fixed().IsPositive()
	return []PricedLine{line}, nil
}

// BaseAmount is the selection total before the custom discount.
func BaseAmount(svc *entity.Service, sel ServiceSelection) (decimal.Decimal, error) {
	lines, err := PriceSelection(svc, sel, nil)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Base)
	}
	return total, nil
}

func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
