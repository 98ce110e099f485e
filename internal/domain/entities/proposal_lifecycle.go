package entities

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"motofinance/internal/domain/financing"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrIllegalTransition = errors.New("illegal transition")
)

// Every transition below returns a new Proposal and leaves the receiver
// untouched. On error the returned value is the zero Proposal.

func NewProposal(id, storeID, brand, model string, price float64, now time.Time) (Proposal, error) {
	storeID = strings.TrimSpace(storeID)
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	switch {
	case id == "":
		return Proposal{}, fmt.Errorf("%w: empty id", ErrInvalidArgument)
	case storeID == "":
		return Proposal{}, fmt.Errorf("%w: empty store id", ErrInvalidArgument)
	case brand == "":
		return Proposal{}, fmt.Errorf("%w: empty brand", ErrInvalidArgument)
	case model == "":
		return Proposal{}, fmt.Errorf("%w: empty model", ErrInvalidArgument)
	}
	if err := validPrice(price); err != nil {
		return Proposal{}, err
	}

	now = now.UTC()
	return Proposal{
		ID:            id,
		StoreID:       storeID,
		Brand:         brand,
		Model:         model,
		ProposedPrice: price,
		Status:        ProposalStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		Negotiations:  []NegotiationMessage{},
		Version:       1,
	}, nil
}

func (p Proposal) StartReview(now time.Time) (Proposal, error) {
	if p.Status != ProposalStatusPending {
		return Proposal{}, illegal(p.Status, "start review")
	}
	next := p.advance(now)
	next.Status = ProposalStatusUnderReview
	return next, nil
}

func (p Proposal) Approve(evaluatorID string, now time.Time) (Proposal, error) {
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return Proposal{}, fmt.Errorf("%w: empty evaluator id", ErrInvalidArgument)
	}
	if !p.evaluable() {
		return Proposal{}, illegal(p.Status, "approve")
	}
	next := p.advance(now)
	next.Status = ProposalStatusApproved
	next.EvaluatorID = evaluatorID
	at := next.UpdatedAt
	next.EvaluatedAt = &at
	return next, nil
}

func (p Proposal) Reject(evaluatorID, reason string, now time.Time) (Proposal, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Proposal{}, fmt.Errorf("%w: empty rejection reason", ErrInvalidArgument)
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return Proposal{}, fmt.Errorf("%w: empty evaluator id", ErrInvalidArgument)
	}
	if !p.evaluable() {
		return Proposal{}, illegal(p.Status, "reject")
	}
	next := p.advance(now)
	next.Status = ProposalStatusRejected
	next.EvaluatorID = evaluatorID
	next.Comments = reason
	at := next.UpdatedAt
	next.EvaluatedAt = &at
	return next, nil
}

// AddNegotiation appends msg to the log. A financier message turns the
// proposal into a counter offer; a store reply to a counter offer puts it
// back under review.
func (p Proposal) AddNegotiation(msg NegotiationMessage) (Proposal, error) {
	msg.Message = strings.TrimSpace(msg.Message)
	switch {
	case msg.ID == "":
		return Proposal{}, fmt.Errorf("%w: empty message id", ErrInvalidArgument)
	case msg.Message == "":
		return Proposal{}, fmt.Errorf("%w: empty message", ErrInvalidArgument)
	case !msg.Author.Valid():
		return Proposal{}, fmt.Errorf("%w: unknown author %q", ErrInvalidArgument, msg.Author)
	}
	if p.Status != ProposalStatusUnderReview && p.Status != ProposalStatusCounterOffered {
		return Proposal{}, illegal(p.Status, "negotiate")
	}

	next := p.advance(msg.Timestamp)
	msg.Timestamp = next.UpdatedAt
	next.Negotiations = append(next.Negotiations, msg)
	switch msg.Author {
	case NegotiationAuthorFinancier:
		next.Status = ProposalStatusCounterOffered
	case NegotiationAuthorStore:
		if p.Status == ProposalStatusCounterOffered {
			next.Status = ProposalStatusUnderReview
		}
	}
	return next, nil
}

func (p Proposal) Delete(now time.Time) (Proposal, error) {
	if p.Status.Terminal() {
		return Proposal{}, illegal(p.Status, "delete")
	}
	next := p.advance(now)
	next.Status = ProposalStatusDeleted
	return next, nil
}

// ChangePrice revises the proposed price of an open proposal and drops the
// cached calculation so it is recomputed for the new price.
func (p Proposal) ChangePrice(price float64, now time.Time) (Proposal, error) {
	if err := validPrice(price); err != nil {
		return Proposal{}, err
	}
	if p.Status.Terminal() {
		return Proposal{}, illegal(p.Status, "change price")
	}
	next := p.advance(now)
	next.ProposedPrice = price
	next.Calculations = nil
	return next, nil
}

// RefreshCalculation replaces the stored projection of an open proposal. It
// counts as a write, so the version advances.
func (p Proposal) RefreshCalculation(c financing.Calculation, now time.Time) (Proposal, error) {
	if p.Status.Terminal() {
		return Proposal{}, illegal(p.Status, "refresh financing of")
	}
	if c.BasePrice != p.ProposedPrice {
		return Proposal{}, fmt.Errorf("%w: calculation for %v on a proposal priced %v", ErrInvalidArgument, c.BasePrice, p.ProposedPrice)
	}
	return p.advance(now).WithCalculation(c), nil
}

func (p Proposal) WithCalculation(c financing.Calculation) Proposal {
	next := p.Clone()
	calc := cloneCalculation(c)
	next.Calculations = &calc
	return next
}

func (p Proposal) evaluable() bool {
	switch p.Status {
	case ProposalStatusPending, ProposalStatusUnderReview, ProposalStatusCounterOffered:
		return true
	}
	return false
}

func (p Proposal) advance(now time.Time) Proposal {
	next := p.Clone()
	next.UpdatedAt = now.UTC()
	next.Version = p.Version + 1
	return next
}

func illegal(from ProposalStatus, action string) error {
	return fmt.Errorf("%w: cannot %s a %s proposal", ErrIllegalTransition, action, from)
}

func validPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return fmt.Errorf("%w: %v", financing.ErrInvalidAmount, price)
	}
	return nil
}
