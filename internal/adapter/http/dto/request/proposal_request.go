package request

import (
	"errors"
	"strings"
)

var (
	ErrMissingStoreID   = errors.New("missing store id")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrMissingVehicle   = errors.New("missing brand or model")
	ErrEmptyNegotiation = errors.New("empty negotiation message")
)

// CreateProposalRequest is the payload a store sends to submit a motorcycle
// for financing. Store users may omit store_id; it is taken from their token.
type CreateProposalRequest struct {
	StoreID       string  `json:"store_id"`
	Brand         string  `json:"brand" binding:"required"`
	Model         string  `json:"model" binding:"required"`
	ProposedPrice float64 `json:"proposed_price" binding:"required"`
}

// ResolveStoreID prefers the caller's own store over the payload.
func (r CreateProposalRequest) ResolveStoreID(tokenStoreID string) string {
	if v := strings.TrimSpace(tokenStoreID); v != "" {
		return v
	}
	return strings.TrimSpace(r.StoreID)
}

func (r CreateProposalRequest) Validate() error {
	if strings.TrimSpace(r.Brand) == "" || strings.TrimSpace(r.Model) == "" {
		return ErrMissingVehicle
	}
	if r.ProposedPrice <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

type UpdatePriceRequest struct {
	ProposedPrice float64 `json:"proposed_price" binding:"required"`
}

type RejectProposalRequest struct {
	Reason string `json:"reason"`
}

type NegotiationRequest struct {
	Message string `json:"message" binding:"required"`
}

func (r NegotiationRequest) ResolveMessage() (string, error) {
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		return "", ErrEmptyNegotiation
	}
	return msg, nil
}
