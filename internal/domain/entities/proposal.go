package entities

import (
	"time"

	"motofinance/internal/domain/financing"
)

// ProposalStatus represents the lifecycle of a credit-offer proposal.
//
// Transitions:
//   - PENDING -> UNDER_REVIEW -> APPROVED | REJECTED | COUNTER_OFFERED
//   - COUNTER_OFFERED -> UNDER_REVIEW | APPROVED | REJECTED
//   - any non-terminal -> DELETED
//
// APPROVED, REJECTED and DELETED are terminal.
type ProposalStatus string

const (
	ProposalStatusPending        ProposalStatus = "PENDING"
	ProposalStatusUnderReview    ProposalStatus = "UNDER_REVIEW"
	ProposalStatusApproved       ProposalStatus = "APPROVED"
	ProposalStatusRejected       ProposalStatus = "REJECTED"
	ProposalStatusCounterOffered ProposalStatus = "COUNTER_OFFERED"
	ProposalStatusDeleted        ProposalStatus = "DELETED"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusUnderReview, ProposalStatusApproved,
		ProposalStatusRejected, ProposalStatusCounterOffered, ProposalStatusDeleted:
		return true
	}
	return false
}

func (s ProposalStatus) Terminal() bool {
	return s == ProposalStatusApproved || s == ProposalStatusRejected || s == ProposalStatusDeleted
}

type NegotiationAuthor string

const (
	NegotiationAuthorStore     NegotiationAuthor = "store"
	NegotiationAuthorFinancier NegotiationAuthor = "financier"
)

func (a NegotiationAuthor) Valid() bool {
	return a == NegotiationAuthorStore || a == NegotiationAuthorFinancier
}

type NegotiationMessage struct {
	ID        string            `json:"id"`
	Message   string            `json:"message"`
	Author    NegotiationAuthor `json:"author"`
	Timestamp time.Time         `json:"timestamp"`
}

// Proposal is a store's request to have a motorcycle offered under the
// financier's credit plans.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (store_id-index): store_id
//   - GSI2 (status-index): status
//
// Version is bumped on every committed write and guards conditional updates.
type Proposal struct {
	ID            string         `json:"id"`
	StoreID       string         `json:"store_id"`
	Brand         string         `json:"brand"`
	Model         string         `json:"model"`
	ProposedPrice float64        `json:"proposed_price"`
	Status        ProposalStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	EvaluatedAt *time.Time `json:"evaluated_at,omitempty"`
	EvaluatorID string     `json:"evaluator_id,omitempty"`
	Comments    string     `json:"comments,omitempty"`

	Negotiations []NegotiationMessage   `json:"negotiations"`
	Calculations *financing.Calculation `json:"calculations,omitempty"`

	Version int64 `json:"version"`
}

// Clone returns a deep copy so transitions never alias the caller's slices.
func (p Proposal) Clone() Proposal {
	out := p
	if p.Negotiations != nil {
		out.Negotiations = append([]NegotiationMessage(nil), p.Negotiations...)
	}
	if p.EvaluatedAt != nil {
		at := *p.EvaluatedAt
		out.EvaluatedAt = &at
	}
	if p.Calculations != nil {
		calc := cloneCalculation(*p.Calculations)
		out.Calculations = &calc
	}
	return out
}

func cloneCalculation(c financing.Calculation) financing.Calculation {
	out := c
	out.DownPaymentOptions = make([]financing.DownPaymentOption, len(c.DownPaymentOptions))
	for i, o := range c.DownPaymentOptions {
		o.Plans = append([]financing.Plan(nil), o.Plans...)
		out.DownPaymentOptions[i] = o
	}
	return out
}
