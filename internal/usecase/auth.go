package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/agency-admin/internal/entity"
)

// SessionUser is the public part of a user stored in the user-data cookie.
type SessionUser struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  entity.UserRole `json:"role"`
}

type AuthUseCase struct {
	Users UserRepository
}

func NewAuthUseCase(users UserRepository) *AuthUseCase {
	return &AuthUseCase{Users: users}
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*SessionUser, error) {
	input.Email = strings.TrimSpace(input.Email)
	if errs := validateStruct(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			slog.WarnContext(ctx, "login rejected", "email", input.Email, "reason", "unknown user")
			return nil, entity.ErrInvalidCredentials
		}
		return nil, wrapRepoErr("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		slog.WarnContext(ctx, "login rejected", "email", input.Email, "reason", "password mismatch")
		return nil, entity.ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID, "role", user.Role)
	return &SessionUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

// HashPassword is used when seeding operators.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
