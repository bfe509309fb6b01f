package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
)

// ServiceUseCase manages the catalog read by provisioning.
type ServiceUseCase struct {
	Tx       TxManager
	Services ServiceRepository
	Plans    PlanRepository
}

func NewServiceUseCase(tx TxManager, services ServiceRepository, plans PlanRepository) *ServiceUseCase {
	return &ServiceUseCase{Tx: tx, Services: services, Plans: plans}
}

// List returns all services. Every SOCIAL_MEDIA service gets the full plan
// list, whatever service the plans were created under.
func (uc *ServiceUseCase) List(ctx context.Context) ([]entity.Service, error) {
	services, err := uc.Services.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list services", err)
	}

	var plans []entity.Plan
	for i := range services {
		if services[i].Type != entity.ServiceTypeSocialMedia {
			continue
		}
		if plans == nil {
			if plans, err = uc.Plans.List(ctx); err != nil {
				return nil, wrapRepoErr("list plans", err)
			}
		}
		services[i].Plans = plans
	}
	return services, nil
}

func (uc *ServiceUseCase) Get(ctx context.Context, id string) (*entity.Service, error) {
	svc, err := uc.Services.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, wrapRepoErr("find service", err)
	}
	if svc.Type == entity.ServiceTypeSocialMedia {
		if svc.Plans, err = uc.Plans.List(ctx); err != nil {
			return nil, wrapRepoErr("list plans", err)
		}
	}
	return svc, nil
}

func (uc *ServiceUseCase) Create(ctx context.Context, input ServiceInput) (*entity.Service, error) {
	if errs := validateServiceInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	now := time.Now()
	svc := &entity.Service{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyServiceInput(svc, input, now)

	err := uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.Services.Create(ctx, svc); err != nil {
			return wrapRepoErr("create service", err)
		}
		return uc.replaceChildren(ctx, svc, input)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "service created", "service_id", svc.ID, "type", svc.Type)
	return svc, nil
}

// Update rewrites the service and replaces its sub-services (PAID_TRAFFIC)
// or its plans (SOCIAL_MEDIA).
func (uc *ServiceUseCase) Update(ctx context.Context, id string, input ServiceInput) (*entity.Service, error) {
	if errs := validateServiceInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	svc, err := uc.Services.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, wrapRepoErr("find service", err)
	}
	applyServiceInput(svc, input, time.Now())

	err = uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.Services.Update(ctx, svc); err != nil {
			return wrapRepoErr("update service", err)
		}
		return uc.replaceChildren(ctx, svc, input)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "service updated", "service_id", svc.ID)
	return svc, nil
}

// Delete refuses while any ACTIVE contract points at the service. Other
// contracts and their payments are removed with it; sub-services go by
// cascade.
func (uc *ServiceUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := uc.Services.FindByID(ctx, id); err != nil {
		return wrapRepoErr("find service", err)
	}

	err := uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		active, err := uc.Services.CountActiveContracts(ctx, id)
		if err != nil {
			return wrapRepoErr("count active contracts", err)
		}
		if active > 0 {
			return entity.ErrServiceHasActiveContracts
		}

		if err := uc.Services.DeleteInactiveContracts(ctx, id); err != nil {
			return wrapRepoErr("delete inactive contracts", err)
		}
		if err := uc.Services.Delete(ctx, id); err != nil {
			return wrapRepoErr("delete service", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "service deleted", "service_id", id)
	return nil
}

func (uc *ServiceUseCase) replaceChildren(ctx context.Context, svc *entity.Service, input ServiceInput) error {
	now := time.Now()

	switch svc.Type {
	case entity.ServiceTypePaidTraffic:
		subs := make([]entity.SubService, 0, len(input.SubServices))
		for _, in := range input.SubServices {
			subs = append(subs, entity.SubService{
				ID:          idOrNew(in.ID),
				ServiceID:   svc.ID,
				Name:        strings.TrimSpace(in.Name),
				Description: in.Description,
				Price:       in.Price,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		if err := uc.Services.ReplaceSubServices(ctx, svc.ID, subs); err != nil {
			return wrapRepoErr("replace sub-services", err)
		}
		svc.SubServices = subs

	case entity.ServiceTypeSocialMedia:
		plans := make([]entity.Plan, 0, len(input.Plans))
		for _, in := range input.Plans {
			plans = append(plans, entity.Plan{
				ID:            idOrNew(in.ID),
				ServiceID:     svc.ID,
				Name:          strings.TrimSpace(in.Name),
				Description:   in.Description,
				PostsPerMonth: in.PostsPerMonth,
				Price:         in.Price,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
		if err := uc.Plans.ReplaceForService(ctx, svc.ID, plans); err != nil {
			return wrapRepoErr("replace plans", err)
		}
		svc.Plans = plans
	}
	return nil
}

func applyServiceInput(svc *entity.Service, input ServiceInput, now time.Time) {
	svc.Name = strings.TrimSpace(input.Name)
	svc.Description = strings.TrimSpace(input.Description)
	svc.Type = input.Type
	svc.BasePrice = decimal.Zero
	if input.BasePrice != nil {
		svc.BasePrice = *input.BasePrice
	}
	svc.TrafficDiscount = nil
	if input.Type == entity.ServiceTypePaidTraffic {
		svc.TrafficDiscount = input.TrafficDiscount
	}
	svc.UpdatedAt = now
}

func validateServiceInput(input ServiceInput) []ValidationError {
	errs := validateStruct(input)

	if input.BasePrice != nil && input.BasePrice.IsNegative() {
		errs = append(errs, ValidationError{"basePrice", "must not be negative"})
	}
	if d := input.TrafficDiscount; d != nil && d.Enabled {
		if d.Percentage.IsNegative() || d.Percentage.GreaterThan(hundred) {
			errs = append(errs, ValidationError{"trafficDiscount.percentage", "must be between 0 and 100"})
		}
	}
	for i, sub := range input.SubServices {
		if sub.Price.IsNegative() {
			errs = append(errs, ValidationError{fmt.Sprintf("subServices[%d].price", i), "must not be negative"})
		}
	}
	for i, plan := range input.Plans {
		if plan.Price.IsNegative() {
			errs = append(errs, ValidationError{fmt.Sprintf("plans[%d].price", i), "must not be negative"})
		}
	}
	return errs
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.New().String()
}
