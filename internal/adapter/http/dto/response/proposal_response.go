package response

import (
	"time"

	"motofinance/internal/domain/entities"
)

type NegotiationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

type ProposalResponse struct {
	ProposalID    string                `json:"proposal_id"`
	ID            string                `json:"id"`
	StoreID       string                `json:"store_id"`
	Brand         string                `json:"brand"`
	Model         string                `json:"model"`
	ProposedPrice float64               `json:"proposed_price"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	EvaluatedAt   *time.Time            `json:"evaluated_at,omitempty"`
	EvaluatorID   string                `json:"evaluator_id,omitempty"`
	Comments      string                `json:"comments,omitempty"`
	Negotiations  []NegotiationResponse `json:"negotiations"`
	Calculations  *FinancingResponse    `json:"calculations,omitempty"`
	Version       int64                 `json:"version"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	res := ProposalResponse{
		ProposalID:    p.ID,
		ID:            p.ID,
		StoreID:       p.StoreID,
		Brand:         p.Brand,
		Model:         p.Model,
		ProposedPrice: p.ProposedPrice,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		EvaluatedAt:   p.EvaluatedAt,
		EvaluatorID:   p.EvaluatorID,
		Comments:      p.Comments,
		Negotiations:  make([]NegotiationResponse, 0, len(p.Negotiations)),
		Version:       p.Version,
	}
	for _, n := range p.Negotiations {
		res.Negotiations = append(res.Negotiations, NegotiationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Author:    string(n.Author),
			Timestamp: n.Timestamp,
		})
	}
	if p.Calculations != nil {
		calc := FromCalculation(*p.Calculations)
		res.Calculations = &calc
	}
	return res
}

func FromProposals(list []entities.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProposal(p))
	}
	return out
}

type OfficialProductResponse struct {
	ID         string             `json:"id"`
	ProposalID string             `json:"proposal_id"`
	StoreID    string             `json:"store_id"`
	Brand      string             `json:"brand"`
	Model      string             `json:"model"`
	Price      float64            `json:"price"`
	Financing  *FinancingResponse `json:"financing,omitempty"`
	ApprovedBy string             `json:"approved_by"`
	CreatedAt  time.Time          `json:"created_at"`
}

func FromOfficialProduct(op entities.OfficialProduct) OfficialProductResponse {
	res := OfficialProductResponse{
		ID:         op.ID,
		ProposalID: op.ProposalID,
		StoreID:    op.StoreID,
		Brand:      op.Brand,
		Model:      op.Model,
		Price:      op.Price,
		ApprovedBy: op.ApprovedBy,
		CreatedAt:  op.CreatedAt,
	}
	if op.Financing != nil {
		calc := FromCalculation(*op.Financing)
		res.Financing = &calc
	}
	return res
}
