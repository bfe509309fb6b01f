package usecase

import (
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	nonDigits = regexp.MustCompile(`\D`)
	validate  = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of input and flattens the result into
// field errors.
func validateStruct(input any) []ValidationError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "body", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fieldPath(fe), Message: tagMessage(fe)})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is invalid"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " items"
	default:
		return "is invalid"
	}
}

func ValidateProvisionClientInput(input ProvisionClientInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must have at least 10 digits"})
	}

	if strings.TrimSpace(input.Company) == "" {
		errors = append(errors, ValidationError{"company", "is required"})
	}

	if strings.TrimSpace(input.ServiceStartDate) == "" {
		errors = append(errors, ValidationError{"serviceStartDate", "is required"})
	} else if _, err := parseDate(input.ServiceStartDate); err != nil {
		errors = append(errors, ValidationError{"serviceStartDate", "must be a valid date (YYYY-MM-DD)"})
	}

	if len(input.Services) == 0 {
		errors = append(errors, ValidationError{"services", "at least one service must be selected"})
	}
	for i, sel := range input.Services {
		if strings.TrimSpace(sel.ServiceID) == "" {
			errors = append(errors, ValidationError{fmt.Sprintf("services[%d].serviceId", i), "is required"})
		}
	}

	if d := input.CustomDiscount; d != nil && d.Enabled {
		switch d.Type {
		case DiscountPercentage:
			if d.Value.IsNegative() || d.Value.GreaterThan(hundred) {
				errors = append(errors, ValidationError{"customDiscount.value", "must be between 0 and 100"})
			}
		case DiscountFixed:
			if d.Value.IsNegative() {
				errors = append(errors, ValidationError{"customDiscount.value", "must not be negative"})
			}
		default:
			errors = append(errors, ValidationError{"customDiscount.type", "must be percentage or fixed"})
		}
	}

	return errors
}

func isValidEmail(email string) bool {
	if !strings.Contains(email, "@") {
		return false
	}
	// "Name <a@b.c>" parses too; only a bare address is accepted
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == strings.TrimSpace(email)
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10
}

// parseDate accepts a plain date or an RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
