package entities

import (
	"encoding/json"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// PaymentStatusFromProvider maps Mercado Pago payment states onto ours.
func PaymentStatusFromProvider(status string) PaymentStatus {
	switch status {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusDenied
	default:
		return PaymentStatusPending
	}
}

// DownPayment records the client's down payment for an approved proposal.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (proposal_id-index): proposal_id
//
// MPPayloadRaw keeps the provider response body for audit; MPPayload is the
// parsed form used for querying.
type DownPayment struct {
	ID         string        `json:"id"`
	ProposalID string        `json:"proposal_id"`
	Percentage int           `json:"percentage"`
	Amount     float64       `json:"amount"`
	Date       time.Time     `json:"date"`
	Status     PaymentStatus `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
