package interfaces

import (
	"context"
	"motofinance/internal/domain/entities"
)

// IDownPaymentRepository abstracts DynamoDB persistence for DownPayment.

type IDownPaymentRepository interface {
	Create(ctx context.Context, p entities.DownPayment) (entities.DownPayment, error)
	GetByID(ctx context.Context, id string) (entities.DownPayment, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.DownPayment, error)
}
