package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xavierca1/agency-admin/internal/entity"
)

// ProvisionClientUseCase creates or replaces a client together with its
// contracts and initial payments, all in one transaction.
type ProvisionClientUseCase struct {
	Tx        TxManager
	Clients   ClientRepository
	Services  ServiceRepository
	Plans     PlanRepository
	Contracts ContractRepository
	Payments  PaymentRepository
	Events    EventPublisher
}

func NewProvisionClientUseCase(
	tx TxManager,
	clients ClientRepository,
	services ServiceRepository,
	plans PlanRepository,
	contracts ContractRepository,
	payments PaymentRepository,
	events EventPublisher,
) *ProvisionClientUseCase {
	return &ProvisionClientUseCase{
		Tx:        tx,
		Clients:   clients,
		Services:  services,
		Plans:     plans,
		Contracts: contracts,
		Payments:  payments,
		Events:    events,
	}
}

func (uc *ProvisionClientUseCase) Create(ctx context.Context, input ProvisionClientInput) (*ProvisionClientOutput, error) {
	if errs := ValidateProvisionClientInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	startDate, _ := parseDate(input.ServiceStartDate)

	existing, err := uc.Clients.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil && !errors.Is(err, entity.ErrClientNotFound) {
		return nil, wrapRepoErr("find client by email", err)
	}
	if existing != nil {
		return nil, entity.ErrEmailAlreadyExists
	}

	client, err := entity.NewClient(input.Name, input.Email, input.Phone, input.Company, startDate)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	lines, err := uc.price(ctx, input.Services, input.CustomDiscount)
	if err != nil {
		return nil, err
	}

	var out *ProvisionClientOutput
	err = uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.Clients.Create(ctx, client); err != nil {
			return wrapRepoErr("create client", err)
		}

		contracts, payments, err := uc.provision(ctx, client, lines)
		if err != nil {
			return err
		}

		out = &ProvisionClientOutput{Client: client, Contracts: contracts, Payments: payments}
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "client provisioning rolled back", "email", client.Email, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "client provisioned",
		"client_id", client.ID, "contracts", len(out.Contracts), "payments", len(out.Payments))
	uc.publish(ctx, OperationCreate, out)
	return out, nil
}

// Edit updates the client and replaces all of its contracts and payments
// with the ones derived from input. Payments changed by hand since the last
// edit are lost.
func (uc *ProvisionClientUseCase) Edit(ctx context.Context, id string, input ProvisionClientInput) (*ProvisionClientOutput, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, newValidationError([]ValidationError{{Field: "id", Message: "is required"}})
	}
	if errs := ValidateProvisionClientInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	startDate, _ := parseDate(input.ServiceStartDate)

	client, err := uc.Clients.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("find client", err)
	}

	email := strings.TrimSpace(input.Email)
	other, err := uc.Clients.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrClientNotFound) {
		return nil, wrapRepoErr("find client by email", err)
	}
	if other != nil && other.ID != client.ID {
		return nil, entity.ErrEmailAlreadyExists
	}

	client.Name = strings.TrimSpace(input.Name)
	client.Email = email
	client.Phone = strings.TrimSpace(input.Phone)
	client.Company = strings.TrimSpace(input.Company)
	client.ServiceStartDate = startDate
	client.UpdatedAt = time.Now()

	lines, err := uc.price(ctx, input.Services, input.CustomDiscount)
	if err != nil {
		return nil, err
	}

	var out *ProvisionClientOutput
	err = uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.Clients.Update(ctx, client); err != nil {
			return wrapRepoErr("update client", err)
		}
		// payments reference contracts, so they go first
		if err := uc.Payments.DeleteByClientID(ctx, client.ID); err != nil {
			return wrapRepoErr("delete client payments", err)
		}
		if err := uc.Contracts.DeleteByClientID(ctx, client.ID); err != nil {
			return wrapRepoErr("delete client contracts", err)
		}

		contracts, payments, err := uc.provision(ctx, client, lines)
		if err != nil {
			return err
		}

		out = &ProvisionClientOutput{Client: client, Contracts: contracts, Payments: payments}
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "client edit rolled back", "client_id", client.ID, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "client services replaced",
		"client_id", client.ID, "contracts", len(out.Contracts), "payments", len(out.Payments))
	uc.publish(ctx, OperationEdit, out)
	return out, nil
}

// price resolves every selection against the catalog before anything is
// written. Selection rule violations are reported together.
func (uc *ProvisionClientUseCase) price(ctx context.Context, selections []ServiceSelection, discount *CustomDiscount) ([]PricedLine, error) {
	services := make([]*entity.Service, len(selections))
	var errs []ValidationError
	for i, sel := range selections {
		svc, err := uc.loadService(ctx, sel.ServiceID)
		if err != nil {
			return nil, err
		}
		services[i] = svc
		errs = append(errs, validateSelection(i, svc, sel)...)
	}
	if len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	var lines []PricedLine
	for i, sel := range selections {
		priced, err := PriceSelection(services[i], sel, discount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, priced...)
	}
	return lines, nil
}

// provision must run inside the transaction opened by the caller.
func (uc *ProvisionClientUseCase) provision(ctx context.Context, client *entity.Client, lines []PricedLine) ([]entity.Contract, []entity.Payment, error) {
	contracts := make([]entity.Contract, 0, len(lines))
	payments := make([]entity.Payment, 0, len(lines))

	for _, line := range lines {
		var subID, planID *string
		if line.SubService != nil {
			subID = &line.SubService.ID
		}
		if line.Plan != nil {
			planID = &line.Plan.ID
		}

		contract := entity.NewContract(client.ID, line.Service.ID, subID, planID, client.ServiceStartDate)
		if err := uc.Contracts.Create(ctx, contract); err != nil {
			return nil, nil, wrapRepoErr("create contract", err)
		}

		payment := entity.NewInitialPayment(contract, line.Amount.Round(2), line.Description())
		if err := uc.Payments.Create(ctx, payment); err != nil {
			return nil, nil, wrapRepoErr("create payment", err)
		}

		contracts = append(contracts, *contract)
		payments = append(payments, *payment)
	}

	return contracts, payments, nil
}

// loadService fetches a service with sub-services, and with the global
// plan list when it is SOCIAL_MEDIA.
func (uc *ProvisionClientUseCase) loadService(ctx context.Context, id string) (*entity.Service, error) {
	svc, err := uc.Services.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: %s", entity.ErrServiceNotFound, id)
		}
		return nil, wrapRepoErr("find service", err)
	}

	if svc.Type == entity.ServiceTypeSocialMedia {
		plans, err := uc.Plans.List(ctx)
		if err != nil {
			return nil, wrapRepoErr("list plans", err)
		}
		svc.Plans = plans
	}
	return svc, nil
}

func validateSelection(i int, svc *entity.Service, sel ServiceSelection) []ValidationError {
	var errs []ValidationError
	switch svc.Type {
	case entity.ServiceTypePaidTraffic:
		if len(sel.SelectedSubServiceIDs()) == 0 {
			errs = append(errs, ValidationError{fmt.Sprintf("services[%d].subServiceIds", i), "select at least one sub-service for " + svc.Name})
		}
	case entity.ServiceTypeSocialMedia:
		if strings.TrimSpace(sel.PlanID) == "" {
			errs = append(errs, ValidationError{fmt.Sprintf("services[%d].planId", i), "select a plan for " + svc.Name})
		}
	}
	return errs
}

func (uc *ProvisionClientUseCase) publish(ctx context.Context, op string, out *ProvisionClientOutput) {
	if uc.Events == nil {
		return
	}
	if err := uc.Events.PublishClientProvisioned(ctx, newProvisionedEvent(op, out)); err != nil {
		slog.ErrorContext(ctx, "failed to publish provisioning event", "client_id", out.Client.ID, "error", err)
	}
}
