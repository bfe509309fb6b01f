package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

type seedUser struct {
	Email    string
	Password string
	Name     string
	Role     entity.UserRole
}

var seedUsers = []seedUser{
	{Email: "admin@empresa.com", Password: "admin123", Name: "Administrador Principal", Role: entity.RoleAdmin},
	{Email: "gerente@empresa.com", Password: "admin456", Name: "Gerente de Projetos", Role: entity.RoleManager},
}

// seedStatements populate the demo catalog and sample clients. Each one
// skips rows that already exist, so seeding can be repeated.
var seedStatements = []struct {
	name  string
	query string
}{
	{"services", `
		INSERT INTO services (id, name, description, type, base_price) VALUES
			('web-dev', 'Desenvolvimento Web', 'Criação de sites institucionais, e-commerces e landing pages', 'WEB_DEVELOPMENT', 2500),
			('paid-traffic', 'Tráfego Pago', 'Gestão de campanhas no Meta Ads e Google Ads', 'PAID_TRAFFIC', 1800),
			('hosting', 'Hospedagem de Sites', 'Servidores otimizados para performance, backups automáticos e SSL incluso', 'HOSTING', 150),
			('social-media', 'Social Media', 'Planejamento e execução de conteúdo para redes sociais', 'SOCIAL_MEDIA', 0)
		ON CONFLICT (id) DO NOTHING`},
	{"sub_services", `
		INSERT INTO sub_services (id, service_id, name, description, price) VALUES
			('meta-ads', 'paid-traffic', 'Meta Ads (Facebook/Instagram)', 'Campanhas no Facebook e Instagram', 1200),
			('google-ads', 'paid-traffic', 'Google Ads', 'Campanhas no Google Search e Display', 1500)
		ON CONFLICT (id) DO NOTHING`},
	{"plans", `
		INSERT INTO plans (id, service_id, name, description, posts_per_month, price) VALUES
			('start', 'social-media', 'Plano Start', 'Até 4 posts/mês', 4, 500),
			('pro', 'social-media', 'Plano Pro', 'Até 8 posts/mês', 8, 800),
			('business', 'social-media', 'Plano Business', 'Até 12 posts/mês', 12, 1200),
			('premium', 'social-media', 'Plano Premium', 'Conteúdo diário + stories + reels', 30, 2000)
		ON CONFLICT (id) DO NOTHING`},
	{"clients", `
		INSERT INTO clients (id, name, email, phone, company, service_start_date) VALUES
			('client-1', 'João Silva', 'joao@empresa.com', '(11) 99999-9999', 'Empresa ABC', '2024-01-15'),
			('client-2', 'Maria Santos', 'maria@startup.com', '(11) 88888-8888', 'Startup XYZ', '2024-01-10'),
			('client-3', 'Pedro Costa', 'pedro@consultoria.com', '(11) 77777-7777', 'Consultoria 123', '2024-01-05')
		ON CONFLICT DO NOTHING`},
	{"contracts", `
		INSERT INTO contracts (id, client_id, service_id, sub_service_id, plan_id, status, start_date) VALUES
			('contract-1', 'client-1', 'web-dev', NULL, NULL, 'ACTIVE', '2024-01-15'),
			('contract-2', 'client-2', 'paid-traffic', 'meta-ads', NULL, 'ACTIVE', '2024-01-10'),
			('contract-3', 'client-3', 'social-media', NULL, 'pro', 'ACTIVE', '2024-01-05')
		ON CONFLICT (id) DO NOTHING`},
	{"payments", `
		INSERT INTO payments (id, contract_id, client_id, amount, due_date, payment_date, status, payment_method, description) VALUES
			('payment-1', 'contract-1', 'client-1', 2500, '2024-01-15', '2024-01-14', 'PAID', 'PIX', 'Pagamento mensal - Janeiro 2024'),
			('payment-2', 'contract-2', 'client-2', 1800, '2024-01-20', NULL, 'PENDING', 'BANK_TRANSFER', 'Pagamento mensal - Janeiro 2024'),
			('payment-3', 'contract-3', 'client-3', 1200, '2024-01-10', NULL, 'OVERDUE', 'CREDIT_CARD', 'Pagamento mensal - Janeiro 2024')
		ON CONFLICT (id) DO NOTHING`},
}

// Seed loads the operators and the demo data in one transaction.
func Seed(ctx context.Context, db *sql.DB) error {
	tx := NewTxManager(db)
	users := NewUserRepository(db)

	return tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, su := range seedUsers {
			hash, err := usecase.HashPassword(su.Password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", su.Email, err)
			}
			created, err := users.CreateIfMissing(ctx, &entity.User{
				ID:           uuid.New().String(),
				Email:        su.Email,
				Name:         su.Name,
				Role:         su.Role,
				PasswordHash: hash,
			})
			if err != nil {
				return fmt.Errorf("seed user %s: %w", su.Email, err)
			}
			slog.InfoContext(ctx, "seed user", "email", su.Email, "created", created)
		}

		for _, st := range seedStatements {
			res, err := conn(ctx, db).ExecContext(ctx, st.query)
			if err != nil {
				return fmt.Errorf("seed %s: %w", st.name, translateError(err))
			}
			n, _ := res.RowsAffected()
			slog.InfoContext(ctx, "seed table", "table", st.name, "inserted", n)
		}
		return nil
	})
}
