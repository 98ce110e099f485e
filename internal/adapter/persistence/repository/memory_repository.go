package repository

import (
	"context"
	"sort"
	"sync"

	"motofinance/internal/domain/entities"
	"motofinance/internal/usecase/interfaces"
)

// ProposalMemoryRepository keeps proposals in process memory with the same
// conditional-write semantics as the DynamoDB repository. Used by the memory
// storage driver and by tests.
type ProposalMemoryRepository struct {
	mu        sync.Mutex
	proposals map[string]entities.Proposal
	products  map[string]entities.OfficialProduct
}

var _ interfaces.IProposalRepository = (*ProposalMemoryRepository)(nil)

func NewProposalMemoryRepository() *ProposalMemoryRepository {
	return &ProposalMemoryRepository{
		proposals: map[string]entities.Proposal{},
		products:  map[string]entities.OfficialProduct{},
	}
}

func (r *ProposalMemoryRepository) Create(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proposals[p.ID]; ok {
		return entities.Proposal{}, interfaces.ErrConditionFailed
	}
	r.proposals[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (r *ProposalMemoryRepository) GetByID(_ context.Context, id string) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok {
		return entities.Proposal{}, nil
	}
	return p.Clone(), nil
}

func (r *ProposalMemoryRepository) ListByStoreID(_ context.Context, storeID string) ([]entities.Proposal, error) {
	return r.list(func(p entities.Proposal) bool { return p.StoreID == storeID }), nil
}

func (r *ProposalMemoryRepository) ListByStatus(_ context.Context, status entities.ProposalStatus) ([]entities.Proposal, error) {
	return r.list(func(p entities.Proposal) bool { return p.Status == status }), nil
}

func (r *ProposalMemoryRepository) Update(_ context.Context, p entities.Proposal, expectedVersion int64) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkVersion(p.ID, expectedVersion); err != nil {
		return entities.Proposal{}, err
	}
	r.proposals[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (r *ProposalMemoryRepository) Approve(_ context.Context, p entities.Proposal, product entities.OfficialProduct, expectedVersion int64) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkVersion(p.ID, expectedVersion); err != nil {
		return entities.Proposal{}, err
	}
	if _, ok := r.products[product.ProposalID]; ok {
		return entities.Proposal{}, interfaces.ErrConditionFailed
	}
	r.proposals[p.ID] = p.Clone()
	r.products[product.ProposalID] = product
	return p.Clone(), nil
}

func (r *ProposalMemoryRepository) GetOfficialProductByProposalID(_ context.Context, proposalID string) (entities.OfficialProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[proposalID], nil
}

func (r *ProposalMemoryRepository) checkVersion(id string, expected int64) error {
	current, ok := r.proposals[id]
	if !ok || current.Version != expected {
		return interfaces.ErrConditionFailed
	}
	return nil
}

func (r *ProposalMemoryRepository) list(match func(entities.Proposal) bool) []entities.Proposal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.Proposal{}
	for _, p := range r.proposals {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type DownPaymentMemoryRepository struct {
	mu       sync.Mutex
	payments map[string]entities.DownPayment
}

var _ interfaces.IDownPaymentRepository = (*DownPaymentMemoryRepository)(nil)

func NewDownPaymentMemoryRepository() *DownPaymentMemoryRepository {
	return &DownPaymentMemoryRepository{payments: map[string]entities.DownPayment{}}
}

func (r *DownPaymentMemoryRepository) Create(_ context.Context, p entities.DownPayment) (entities.DownPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; ok {
		return entities.DownPayment{}, interfaces.ErrConditionFailed
	}
	r.payments[p.ID] = p
	return p, nil
}

func (r *DownPaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.DownPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments[id], nil
}

func (r *DownPaymentMemoryRepository) ListByProposalID(_ context.Context, proposalID string) ([]entities.DownPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.DownPayment{}
	for _, p := range r.payments {
		if p.ProposalID == proposalID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type UserMemoryRepository struct {
	mu    sync.RWMutex
	users map[entities.Role]map[string]entities.User
}

var _ interfaces.IUserRepository = (*UserMemoryRepository)(nil)

func NewUserMemoryRepository(users ...entities.User) *UserMemoryRepository {
	r := &UserMemoryRepository{users: map[entities.Role]map[string]entities.User{}}
	for _, u := range users {
		r.Put(u)
	}
	return r
}

// Put stores u under the role of its profile.
func (r *UserMemoryRepository) Put(u entities.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role := u.Role()
	if r.users[role] == nil {
		r.users[role] = map[string]entities.User{}
	}
	r.users[role][u.ID] = u
}

func (r *UserMemoryRepository) GetByID(_ context.Context, role entities.Role, id string) (entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[role][id], nil
}
