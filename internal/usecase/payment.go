package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type PaymentUseCase struct {
	Payments  PaymentRepository
	Contracts ContractRepository
}

func NewPaymentUseCase(payments PaymentRepository, contracts ContractRepository) *PaymentUseCase {
	return &PaymentUseCase{Payments: payments, Contracts: contracts}
}

func (uc *PaymentUseCase) List(ctx context.Context) ([]entity.PaymentView, error) {
	payments, err := uc.Payments.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list payments", err)
	}
	return payments, nil
}

func (uc *PaymentUseCase) Get(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := uc.Payments.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, wrapRepoErr("find payment", err)
	}
	return p, nil
}

func (uc *PaymentUseCase) Create(ctx context.Context, input PaymentInput) (*entity.Payment, error) {
	due, paid, err := uc.check(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Payment{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyPaymentInput(p, input, due, paid, now)

	if err := uc.Payments.Create(ctx, p); err != nil {
		return nil, wrapRepoErr("create payment", err)
	}

	slog.InfoContext(ctx, "payment created", "payment_id", p.ID, "status", p.Status, "amount", p.Amount.StringFixed(2))
	return p, nil
}

func (uc *PaymentUseCase) Update(ctx context.Context, id string, input PaymentInput) (*entity.Payment, error) {
	p, err := uc.Payments.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, wrapRepoErr("find payment", err)
	}

	due, paid, err := uc.check(ctx, input)
	if err != nil {
		return nil, err
	}
	applyPaymentInput(p, input, due, paid, time.Now())

	if err := uc.Payments.Update(ctx, p); err != nil {
		return nil, wrapRepoErr("update payment", err)
	}

	slog.InfoContext(ctx, "payment updated", "payment_id", p.ID, "status", p.Status)
	return p, nil
}

func (uc *PaymentUseCase) Delete(ctx context.Context, id string) (*DeletedPayment, error) {
	p, err := uc.Payments.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, wrapRepoErr("find payment", err)
	}
	if err := uc.Payments.Delete(ctx, p.ID); err != nil {
		return nil, wrapRepoErr("delete payment", err)
	}

	slog.InfoContext(ctx, "payment deleted", "payment_id", p.ID)
	return &DeletedPayment{
		ID:          p.ID,
		Amount:      p.Amount,
		Description: p.Description,
		Status:      string(p.Status),
	}, nil
}

func (uc *PaymentUseCase) check(ctx context.Context, input PaymentInput) (time.Time, *time.Time, error) {
	errs := validateStruct(input)
	if input.Amount != nil && input.Amount.IsNegative() {
		errs = append(errs, ValidationError{"amount", "must not be negative"})
	}
	due, err := parseDate(input.DueDate)
	if input.DueDate != "" && err != nil {
		errs = append(errs, ValidationError{"dueDate", "must be a valid date (YYYY-MM-DD)"})
	}
	paid, err := parseOptionalDate(input.PaymentDate)
	if err != nil {
		errs = append(errs, ValidationError{"paymentDate", "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) > 0 {
		return time.Time{}, nil, newValidationError(errs)
	}

	contract, err := uc.Contracts.FindByID(ctx, input.ContractID)
	if err != nil {
		return time.Time{}, nil, wrapRepoErr("find contract", err)
	}
	if contract.ClientID != input.ClientID {
		return time.Time{}, nil, newValidationError([]ValidationError{{Field: "clientId", Message: "does not match the contract's client"}})
	}
	return due, paid, nil
}

func applyPaymentInput(p *entity.Payment, input PaymentInput, due time.Time, paid *time.Time, now time.Time) {
	p.ContractID = input.ContractID
	p.ClientID = input.ClientID
	p.Amount = input.Amount.Round(2)
	p.DueDate = due
	p.PaymentDate = paid
	p.Status = input.Status
	p.PaymentMethod = input.PaymentMethod
	p.Description = strings.TrimSpace(input.Description)
	p.UpdatedAt = now
}
