package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"motofinance/internal/domain/entities"
	"motofinance/internal/domain/financing"
	"motofinance/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProposalNotFound        = errors.New("proposal not found")
	ErrProposalConflict        = errors.New("proposal modified concurrently")
	ErrInvalidProposalID       = errors.New("invalid proposal id")
	ErrInvalidStoreID          = errors.New("invalid store id")
	ErrInvalidProposalStatus   = errors.New("invalid proposal status")
	ErrOfficialProductNotFound = errors.New("official product not found")
)

// IProposalUseCase drives the proposal lifecycle.
//
// Every mutation reads the proposal, applies the domain transition and commits
// it conditionally on the version it read. A lost race surfaces as
// ErrProposalConflict; nothing is retried here.
type IProposalUseCase interface {
	CreateProposal(ctx context.Context, storeID, brand, model string, price float64) (entities.Proposal, error)
	StartReview(ctx context.Context, id string) (entities.Proposal, error)
	ApproveProposal(ctx context.Context, id, evaluatorID string) (entities.Proposal, error)
	RejectProposal(ctx context.Context, id, reason, evaluatorID string) (entities.Proposal, error)
	AddNegotiationMessage(ctx context.Context, id, message string, author entities.NegotiationAuthor) (entities.Proposal, error)
	DeleteProposal(ctx context.Context, id string) (entities.Proposal, error)
	UpdateProposedPrice(ctx context.Context, id string, price float64) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	ListByStoreID(ctx context.Context, storeID string) ([]entities.Proposal, error)
	ListByStatus(ctx context.Context, status entities.ProposalStatus) ([]entities.Proposal, error)
	GetFinancing(ctx context.Context, id string) (financing.Calculation, error)
	GetOfficialProduct(ctx context.Context, id string) (entities.OfficialProduct, error)
	InvalidateProposal(ctx context.Context, id string) (entities.Proposal, error)
}

type ProposalUseCase struct {
	repo      interfaces.IProposalRepository
	financing IFinancingUseCase
	notifier  interfaces.IProposalNotifier
	logger    *zap.Logger
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(repo interfaces.IProposalRepository, fin IFinancingUseCase, notifier interfaces.IProposalNotifier, logger *zap.Logger) *ProposalUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProposalUseCase{repo: repo, financing: fin, notifier: notifier, logger: logger}
}

func (u *ProposalUseCase) CreateProposal(ctx context.Context, storeID, brand, model string, price float64) (entities.Proposal, error) {
	if strings.TrimSpace(storeID) == "" {
		return entities.Proposal{}, ErrInvalidStoreID
	}

	p, err := entities.NewProposal(uuid.NewString(), storeID, brand, model, price, time.Now())
	if err != nil {
		return entities.Proposal{}, err
	}

	calc, err := u.financing.ComputeFinancing(ctx, p.ProposedPrice)
	if err != nil {
		return entities.Proposal{}, err
	}
	p = p.WithCalculation(calc)

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Proposal{}, fmt.Errorf("%w: proposal %s already exists", ErrProposalConflict, p.ID)
		}
		return entities.Proposal{}, err
	}
	u.logger.Info("proposal created",
		zap.String("proposal_id", created.ID),
		zap.String("store_id", created.StoreID),
		zap.Float64("proposed_price", created.ProposedPrice),
	)
	u.publish(created)
	return created, nil
}

func (u *ProposalUseCase) StartReview(ctx context.Context, id string) (entities.Proposal, error) {
	return u.mutate(ctx, id, "start-review", func(p entities.Proposal) (entities.Proposal, error) {
		return p.StartReview(time.Now())
	})
}

func (u *ProposalUseCase) ApproveProposal(ctx context.Context, id, evaluatorID string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	if strings.TrimSpace(evaluatorID) == "" {
		return entities.Proposal{}, fmt.Errorf("%w: empty evaluator id", entities.ErrInvalidArgument)
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}

	approved, err := current.Approve(evaluatorID, time.Now())
	if err != nil {
		return entities.Proposal{}, err
	}
	if approved.Calculations == nil || !approved.Calculations.ComputedWith(approved.ProposedPrice, u.financing.FeeSchedule()) {
		calc, err := u.financing.ComputeFinancing(ctx, approved.ProposedPrice)
		if err != nil {
			return entities.Proposal{}, err
		}
		approved = approved.WithCalculation(calc)
	}

	product := entities.NewOfficialProduct(uuid.NewString(), approved)
	saved, err := u.repo.Approve(ctx, approved, product, current.Version)
	if err != nil {
		return entities.Proposal{}, u.commitError(id, "approve", err)
	}
	u.logger.Info("proposal approved",
		zap.String("proposal_id", saved.ID),
		zap.String("evaluator_id", saved.EvaluatorID),
		zap.String("official_product_id", product.ID),
	)
	u.publish(saved)
	return saved, nil
}

func (u *ProposalUseCase) RejectProposal(ctx context.Context, id, reason, evaluatorID string) (entities.Proposal, error) {
	if strings.TrimSpace(reason) == "" {
		return entities.Proposal{}, fmt.Errorf("%w: empty rejection reason", entities.ErrInvalidArgument)
	}
	if strings.TrimSpace(evaluatorID) == "" {
		return entities.Proposal{}, fmt.Errorf("%w: empty evaluator id", entities.ErrInvalidArgument)
	}
	return u.mutate(ctx, id, "reject", func(p entities.Proposal) (entities.Proposal, error) {
		return p.Reject(evaluatorID, reason, time.Now())
	})
}

func (u *ProposalUseCase) AddNegotiationMessage(ctx context.Context, id, message string, author entities.NegotiationAuthor) (entities.Proposal, error) {
	if strings.TrimSpace(message) == "" {
		return entities.Proposal{}, fmt.Errorf("%w: empty message", entities.ErrInvalidArgument)
	}
	if !author.Valid() {
		return entities.Proposal{}, fmt.Errorf("%w: unknown author %q", entities.ErrInvalidArgument, author)
	}
	return u.mutate(ctx, id, "negotiate", func(p entities.Proposal) (entities.Proposal, error) {
		return p.AddNegotiation(entities.NegotiationMessage{
			ID:        uuid.NewString(),
			Message:   message,
			Author:    author,
			Timestamp: time.Now(),
		})
	})
}

func (u *ProposalUseCase) DeleteProposal(ctx context.Context, id string) (entities.Proposal, error) {
	return u.mutate(ctx, id, "delete", func(p entities.Proposal) (entities.Proposal, error) {
		return p.Delete(time.Now())
	})
}

func (u *ProposalUseCase) UpdateProposedPrice(ctx context.Context, id string, price float64) (entities.Proposal, error) {
	return u.mutate(ctx, id, "update-price", func(p entities.Proposal) (entities.Proposal, error) {
		next, err := p.ChangePrice(price, time.Now())
		if err != nil {
			return entities.Proposal{}, err
		}
		calc, err := u.financing.ComputeFinancing(ctx, next.ProposedPrice)
		if err != nil {
			return entities.Proposal{}, err
		}
		return next.WithCalculation(calc), nil
	})
}

// InvalidateProposal drops every cached projection of an open proposal: the
// shared cache entry for its price and the calculation stored on the
// proposal. Both are recomputed from the running calculator.
func (u *ProposalUseCase) InvalidateProposal(ctx context.Context, id string) (entities.Proposal, error) {
	return u.mutate(ctx, id, "invalidate-financing", func(p entities.Proposal) (entities.Proposal, error) {
		if p.Status.Terminal() {
			return entities.Proposal{}, fmt.Errorf("%w: cannot refresh financing of a %s proposal", entities.ErrIllegalTransition, p.Status)
		}
		if err := u.financing.Invalidate(ctx, p.ProposedPrice); err != nil {
			u.logger.Warn("financing cache invalidation failed", zap.String("proposal_id", p.ID), zap.Error(err))
		}
		calc, err := u.financing.ComputeFinancing(ctx, p.ProposedPrice)
		if err != nil {
			return entities.Proposal{}, err
		}
		return p.RefreshCalculation(calc, time.Now())
	})
}

func (u *ProposalUseCase) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	return u.load(ctx, id)
}

func (u *ProposalUseCase) ListByStoreID(ctx context.Context, storeID string) ([]entities.Proposal, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, ErrInvalidStoreID
	}
	return u.repo.ListByStoreID(ctx, storeID)
}

func (u *ProposalUseCase) ListByStatus(ctx context.Context, status entities.ProposalStatus) ([]entities.Proposal, error) {
	if !status.Valid() {
		return nil, ErrInvalidProposalStatus
	}
	return u.repo.ListByStatus(ctx, status)
}

// GetFinancing returns the projection stored on the proposal when it was
// computed for the current price and fee schedule, and a fresh one otherwise.
func (u *ProposalUseCase) GetFinancing(ctx context.Context, id string) (financing.Calculation, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return financing.Calculation{}, err
	}
	if p.Calculations != nil && p.Calculations.ComputedWith(p.ProposedPrice, u.financing.FeeSchedule()) {
		return *p.Calculations, nil
	}
	return u.financing.ComputeFinancing(ctx, p.ProposedPrice)
}

func (u *ProposalUseCase) GetOfficialProduct(ctx context.Context, id string) (entities.OfficialProduct, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.OfficialProduct{}, ErrInvalidProposalID
	}
	prod, err := u.repo.GetOfficialProductByProposalID(ctx, id)
	if err != nil {
		return entities.OfficialProduct{}, err
	}
	if prod.ID == "" {
		return entities.OfficialProduct{}, ErrOfficialProductNotFound
	}
	return prod, nil
}

func (u *ProposalUseCase) mutate(
	ctx context.Context,
	id string,
	action string,
	transition func(entities.Proposal) (entities.Proposal, error),
) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}

	next, err := transition(current)
	if err != nil {
		u.logger.Debug("proposal transition refused",
			zap.String("proposal_id", id),
			zap.String("action", action),
			zap.String("status", string(current.Status)),
			zap.Error(err),
		)
		return entities.Proposal{}, err
	}

	saved, err := u.repo.Update(ctx, next, current.Version)
	if err != nil {
		return entities.Proposal{}, u.commitError(id, action, err)
	}
	u.logger.Info("proposal updated",
		zap.String("proposal_id", saved.ID),
		zap.String("action", action),
		zap.String("status", string(saved.Status)),
		zap.Int64("version", saved.Version),
	)
	u.publish(saved)
	return saved, nil
}

func (u *ProposalUseCase) load(ctx context.Context, id string) (entities.Proposal, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (u *ProposalUseCase) commitError(id, action string, err error) error {
	if errors.Is(err, interfaces.ErrConditionFailed) {
		u.logger.Warn("proposal commit lost race", zap.String("proposal_id", id), zap.String("action", action))
		return fmt.Errorf("%w: %s on proposal %s", ErrProposalConflict, action, id)
	}
	u.logger.Error("proposal commit failed", zap.String("proposal_id", id), zap.String("action", action), zap.Error(err))
	return err
}

func (u *ProposalUseCase) publish(p entities.Proposal) {
	if u.notifier != nil {
		u.notifier.Publish(p)
	}
}
