package usecase_test

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
)

// memState is the content of the in-memory database.
type memState struct {
	clients   map[string]entity.Client
	services  map[string]entity.Service
	plans     map[string]entity.Plan
	contracts map[string]entity.Contract
	payments  map[string]entity.Payment
}

func (s memState) clone() memState {
	return memState{
		clients:   maps.Clone(s.clients),
		services:  maps.Clone(s.services),
		plans:     maps.Clone(s.plans),
		contracts: maps.Clone(s.contracts),
		payments:  maps.Clone(s.payments),
	}
}

// memStore mimics a transactional database: RunInTx restores the state
// taken before fn when fn fails.
type memStore struct {
	mu    sync.Mutex
	state memState
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		clients:   map[string]entity.Client{},
		services:  map[string]entity.Service{},
		plans:     map[string]entity.Plan{},
		contracts: map[string]entity.Contract{},
		payments:  map[string]entity.Payment{},
	}}
}

func (s *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snapshot := s.state.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// seedCatalog loads the catalog used by most provisioning tests.
func (s *memStore) seedCatalog() {
	s.state.services["web-dev"] = entity.Service{
		ID: "web-dev", Name: "Web Development", Type: entity.ServiceTypeWebDevelopment,
		BasePrice: decimal.NewFromInt(2500),
	}
	s.state.services["hosting"] = entity.Service{
		ID: "hosting", Name: "Hosting", Type: entity.ServiceTypeHosting,
		BasePrice: decimal.NewFromInt(150),
	}
	s.state.services["paid-traffic"] = entity.Service{
		ID: "paid-traffic", Name: "Paid Traffic", Type: entity.ServiceTypePaidTraffic,
		BasePrice:       decimal.NewFromInt(1800),
		TrafficDiscount: &entity.TrafficDiscount{Enabled: true, Percentage: decimal.NewFromInt(10)},
		SubServices: []entity.SubService{
			{ID: "meta-ads", ServiceID: "paid-traffic", Name: "Meta Ads", Price: decimal.NewFromInt(1200)},
			{ID: "google-ads", ServiceID: "paid-traffic", Name: "Google Ads", Price: decimal.NewFromInt(1500)},
		},
	}
	s.state.services["social-media"] = entity.Service{
		ID: "social-media", Name: "Social Media", Type: entity.ServiceTypeSocialMedia,
		BasePrice: decimal.Zero,
	}
	s.state.plans["start"] = entity.Plan{ID: "start", ServiceID: "social-media", Name: "Start", PostsPerMonth: 4, Price: decimal.NewFromInt(500)}
	s.state.plans["pro"] = entity.Plan{ID: "pro", ServiceID: "social-media", Name: "Pro", PostsPerMonth: 8, Price: decimal.NewFromInt(800)}
}

func (s *memStore) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.clients)
}

func (s *memStore) contractsOf(clientID string) []entity.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Contract
	for _, c := range s.state.contracts {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out
}

func (s *memStore) paymentsOf(clientID string) []entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Payment
	for _, p := range s.state.payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

type memClients struct{ s *memStore }

func (r memClients) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.state.clients {
		if existing.Email == c.Email {
			return entity.ErrEmailAlreadyExists
		}
	}
	r.s.state.clients[c.ID] = *c
	return nil
}

func (r memClients) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.clients[c.ID]; !ok {
		return entity.ErrClientNotFound
	}
	r.s.state.clients[c.ID] = *c
	return nil
}

func (r memClients) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.clients, id)
	return nil
}

func (r memClients) FindByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.state.clients[id]
	if !ok {
		return nil, entity.ErrClientNotFound
	}
	return &c, nil
}

func (r memClients) FindByEmail(_ context.Context, email string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.state.clients {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, entity.ErrClientNotFound
}

func (r memClients) List(_ context.Context) ([]entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Client, 0, len(r.s.state.clients))
	for _, c := range r.s.state.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memServices struct{ s *memStore }

func (r memServices) Create(_ context.Context, svc *entity.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.services[svc.ID] = *svc
	return nil
}

func (r memServices) Update(ctx context.Context, svc *entity.Service) error {
	return r.Create(ctx, svc)
}

// Delete enforces the contracts foreign key like the real schema does.
func (r memServices) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.state.contracts {
		if c.ServiceID == id {
			return entity.ErrStillReferenced
		}
	}
	delete(r.s.state.services, id)
	return nil
}

func (r memServices) DeleteInactiveContracts(_ context.Context, serviceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.state.contracts {
		if c.ServiceID != serviceID || c.Status == entity.ContractActive {
			continue
		}
		delete(r.s.state.contracts, id)
		for pid, p := range r.s.state.payments {
			if p.ContractID == id {
				delete(r.s.state.payments, pid)
			}
		}
	}
	return nil
}

func (r memServices) FindByID(_ context.Context, id string) (*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.state.services[id]
	if !ok {
		return nil, entity.ErrServiceNotFound
	}
	svc.SubServices = append([]entity.SubService(nil), svc.SubServices...)
	return &svc, nil
}

func (r memServices) List(_ context.Context) ([]entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Service, 0, len(r.s.state.services))
	for _, svc := range r.s.state.services {
		out = append(out, svc)
	}
	return out, nil
}

func (r memServices) ReplaceSubServices(_ context.Context, serviceID string, subs []entity.SubService) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc := r.s.state.services[serviceID]
	svc.SubServices = subs
	r.s.state.services[serviceID] = svc
	return nil
}

func (r memServices) CountActiveContracts(_ context.Context, serviceID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.state.contracts {
		if c.ServiceID == serviceID && c.Status == entity.ContractActive {
			n++
		}
	}
	return n, nil
}

type memPlans struct{ s *memStore }

func (r memPlans) List(_ context.Context) ([]entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Plan, 0, len(r.s.state.plans))
	for _, p := range r.s.state.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	return out, nil
}

func (r memPlans) ReplaceForService(_ context.Context, serviceID string, plans []entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.state.plans {
		if p.ServiceID == serviceID {
			delete(r.s.state.plans, id)
		}
	}
	for _, p := range plans {
		r.s.state.plans[p.ID] = p
	}
	return nil
}

type memContracts struct{ s *memStore }

func (r memContracts) Create(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.contracts[c.ID] = *c
	return nil
}

func (r memContracts) Update(ctx context.Context, c *entity.Contract) error {
	return r.Create(ctx, c)
}

func (r memContracts) FindByID(_ context.Context, id string) (*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.state.contracts[id]
	if !ok {
		return nil, entity.ErrContractNotFound
	}
	return &c, nil
}

func (r memContracts) List(_ context.Context) ([]entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Contract, 0, len(r.s.state.contracts))
	for _, c := range r.s.state.contracts {
		out = append(out, c)
	}
	return out, nil
}

func (r memContracts) DeleteByClientID(_ context.Context, clientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.state.contracts {
		if c.ClientID != clientID {
			continue
		}
		for _, p := range r.s.state.payments {
			if p.ContractID == id {
				return entity.ErrStillReferenced
			}
		}
		delete(r.s.state.contracts, id)
	}
	return nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.contracts[p.ContractID]; !ok {
		return entity.ErrContractNotFound
	}
	r.s.state.payments[p.ID] = *p
	return nil
}

func (r memPayments) Update(ctx context.Context, p *entity.Payment) error {
	return r.Create(ctx, p)
}

func (r memPayments) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.payments, id)
	return nil
}

func (r memPayments) FindByID(_ context.Context, id string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.payments[id]
	if !ok {
		return nil, entity.ErrPaymentNotFound
	}
	return &p, nil
}

func (r memPayments) List(_ context.Context) ([]entity.PaymentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.PaymentView, 0, len(r.s.state.payments))
	for _, p := range r.s.state.payments {
		out = append(out, entity.PaymentView{ID: p.ID, ContractID: p.ContractID, ClientID: p.ClientID, Amount: p.Amount, Status: p.Status})
	}
	return out, nil
}

func (r memPayments) DeleteByClientID(_ context.Context, clientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.state.payments {
		if p.ClientID == clientID {
			delete(r.s.state.payments, id)
		}
	}
	return nil
}
