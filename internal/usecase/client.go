package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type ClientUseCase struct {
	Clients ClientRepository
}

func NewClientUseCase(clients ClientRepository) *ClientUseCase {
	return &ClientUseCase{Clients: clients}
}

func (uc *ClientUseCase) List(ctx context.Context) ([]entity.Client, error) {
	clients, err := uc.Clients.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list clients", err)
	}
	return clients, nil
}

func (uc *ClientUseCase) Get(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.Clients.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, wrapRepoErr("find client", err)
	}
	return client, nil
}

// Delete removes the client. Contracts and payments go with it through the
// schema's cascades.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return newValidationError([]ValidationError{{Field: "id", Message: "is required"}})
	}
	if _, err := uc.Clients.FindByID(ctx, id); err != nil {
		return wrapRepoErr("find client", err)
	}
	if err := uc.Clients.Delete(ctx, id); err != nil {
		return wrapRepoErr("delete client", err)
	}
	slog.InfoContext(ctx, "client deleted", "client_id", id)
	return nil
}
