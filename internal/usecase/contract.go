package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type ContractUseCase struct {
	Contracts ContractRepository
	Clients   ClientRepository
	Services  ServiceRepository
	Plans     PlanRepository
}

func NewContractUseCase(contracts ContractRepository, clients ClientRepository, services ServiceRepository, plans PlanRepository) *ContractUseCase {
	return &ContractUseCase{Contracts: contracts, Clients: clients, Services: services, Plans: plans}
}

func (uc *ContractUseCase) List(ctx context.Context) ([]entity.Contract, error) {
	contracts, err := uc.Contracts.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list contracts", err)
	}
	return contracts, nil
}

func (uc *ContractUseCase) Create(ctx context.Context, input ContractInput) (*entity.Contract, error) {
	start, end, err := uc.check(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	contract := &entity.Contract{
		ID:           uuid.New().String(),
		ClientID:     input.ClientID,
		ServiceID:    input.ServiceID,
		SubServiceID: blankToNil(input.SubServiceID),
		PlanID:       blankToNil(input.PlanID),
		Status:       statusOrActive(input.Status),
		StartDate:    start,
		EndDate:      end,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Contracts.Create(ctx, contract); err != nil {
		return nil, wrapRepoErr("create contract", err)
	}

	slog.InfoContext(ctx, "contract created", "contract_id", contract.ID, "client_id", contract.ClientID)
	return contract, nil
}

func (uc *ContractUseCase) Update(ctx context.Context, id string, input ContractInput) (*entity.Contract, error) {
	contract, err := uc.Contracts.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, wrapRepoErr("find contract", err)
	}

	start, end, err := uc.check(ctx, input)
	if err != nil {
		return nil, err
	}

	contract.ClientID = input.ClientID
	contract.ServiceID = input.ServiceID
	contract.SubServiceID = blankToNil(input.SubServiceID)
	contract.PlanID = blankToNil(input.PlanID)
	contract.Status = statusOrActive(input.Status)
	contract.StartDate = start
	contract.EndDate = end
	contract.UpdatedAt = time.Now()

	if err := uc.Contracts.Update(ctx, contract); err != nil {
		return nil, wrapRepoErr("update contract", err)
	}

	slog.InfoContext(ctx, "contract updated", "contract_id", contract.ID, "status", contract.Status)
	return contract, nil
}

// check validates input and confirms every referenced row exists.
func (uc *ContractUseCase) check(ctx context.Context, input ContractInput) (time.Time, *time.Time, error) {
	errs := validateStruct(input)
	start, err := parseDate(input.StartDate)
	if input.StartDate != "" && err != nil {
		errs = append(errs, ValidationError{"startDate", "must be a valid date (YYYY-MM-DD)"})
	}
	end, err := parseOptionalDate(input.EndDate)
	if err != nil {
		errs = append(errs, ValidationError{"endDate", "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) > 0 {
		return time.Time{}, nil, newValidationError(errs)
	}

	if _, err := uc.Clients.FindByID(ctx, input.ClientID); err != nil {
		return time.Time{}, nil, wrapRepoErr("find client", err)
	}
	svc, err := uc.Services.FindByID(ctx, input.ServiceID)
	if err != nil {
		return time.Time{}, nil, wrapRepoErr("find service", err)
	}
	if sub := blankToNil(input.SubServiceID); sub != nil {
		if _, ok := svc.SubService(*sub); !ok {
			return time.Time{}, nil, fmt.Errorf("%w: %s", entity.ErrSubServiceNotFound, *sub)
		}
	}
	if planID := blankToNil(input.PlanID); planID != nil {
		plans, err := uc.Plans.List(ctx)
		if err != nil {
			return time.Time{}, nil, wrapRepoErr("list plans", err)
		}
		svc.Plans = plans
		if _, ok := svc.Plan(*planID); !ok {
			return time.Time{}, nil, fmt.Errorf("%w: %s", entity.ErrPlanNotFound, *planID)
		}
	}
	return start, end, nil
}

func statusOrActive(s entity.ContractStatus) entity.ContractStatus {
	if s == "" {
		return entity.ContractActive
	}
	return s
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
