package interfaces

import (
	"context"
	"errors"
	"motofinance/internal/domain/entities"
)

// ErrConditionFailed is returned by repositories when a conditional write
// loses against a concurrent writer (version mismatch or duplicate key).
var ErrConditionFailed = errors.New("conditional write failed")

// IProposalRepository abstracts DynamoDB persistence for Proposal.
//
// Reads return a zero Proposal (empty ID) when nothing matches.
// Writes are conditional on the version the caller read:
//   - Update commits only if the stored version equals expectedVersion
//   - Approve commits the proposal update and the official product together, or neither

type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	ListByStoreID(ctx context.Context, storeID string) ([]entities.Proposal, error)
	ListByStatus(ctx context.Context, status entities.ProposalStatus) ([]entities.Proposal, error)
	Update(ctx context.Context, p entities.Proposal, expectedVersion int64) (entities.Proposal, error)
	Approve(ctx context.Context, p entities.Proposal, product entities.OfficialProduct, expectedVersion int64) (entities.Proposal, error)
	GetOfficialProductByProposalID(ctx context.Context, proposalID string) (entities.OfficialProduct, error)
}
