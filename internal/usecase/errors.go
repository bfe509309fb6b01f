package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/agency-admin/internal/entity"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeDatabaseError = "DATABASE_ERROR"
)

// DomainError is a business rule violation the caller can fix.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func newValidationError(fields []ValidationError) *DomainError {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Error())
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
		Fields:  fields,
	}
}

// TechnicalError wraps an infrastructure failure. Its message is never
// shown to API callers.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

var domainSentinels = []error{
	entity.ErrClientNotFound,
	entity.ErrEmailAlreadyExists,
	entity.ErrServiceNotFound,
	entity.ErrSubServiceNotFound,
	entity.ErrPlanNotFound,
	entity.ErrContractNotFound,
	entity.ErrPaymentNotFound,
	entity.ErrStillReferenced,
	entity.ErrDuplicateKey,
	entity.ErrServiceHasActiveContracts,
	entity.ErrInvalidCredentials,
}

// wrapRepoErr leaves domain errors untouched and wraps everything else as a
// TechnicalError tagged with the failed operation.
func wrapRepoErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	for _, sentinel := range domainSentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return &TechnicalError{Code: CodeDatabaseError, Message: op, Err: err}
}
