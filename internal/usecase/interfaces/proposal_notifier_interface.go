package interfaces

import "motofinance/internal/domain/entities"

// IProposalNotifier receives every committed proposal state.
type IProposalNotifier interface {
	Publish(p entities.Proposal)
}
