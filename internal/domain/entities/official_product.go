package entities

import (
	"time"

	"motofinance/internal/domain/financing"
)

// OfficialProduct is the catalogue entry materialized when a proposal is approved.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (proposal_id-index): proposal_id
//
// It is written in the same transaction as the approval, never on its own.
type OfficialProduct struct {
	ID         string                 `json:"id"`
	ProposalID string                 `json:"proposal_id"`
	StoreID    string                 `json:"store_id"`
	Brand      string                 `json:"brand"`
	Model      string                 `json:"model"`
	Price      float64                `json:"price"`
	Financing  *financing.Calculation `json:"financing,omitempty"`
	ApprovedBy string                 `json:"approved_by"`
	CreatedAt  time.Time              `json:"created_at"`
}

func NewOfficialProduct(id string, approved Proposal) OfficialProduct {
	var calc *financing.Calculation
	if approved.Calculations != nil {
		c := cloneCalculation(*approved.Calculations)
		calc = &c
	}
	return OfficialProduct{
		ID:         id,
		ProposalID: approved.ID,
		StoreID:    approved.StoreID,
		Brand:      approved.Brand,
		Model:      approved.Model,
		Price:      approved.ProposedPrice,
		Financing:  calc,
		ApprovedBy: approved.EvaluatorID,
		CreatedAt:  approved.UpdatedAt,
	}
}
