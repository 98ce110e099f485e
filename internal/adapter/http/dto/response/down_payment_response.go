package response

import (
	"time"

	"motofinance/internal/domain/entities"
)

type DownPaymentResponse struct {
	PaymentID  string    `json:"payment_id"`
	ID         string    `json:"id"`
	ProposalID string    `json:"proposal_id"`
	Percentage int       `json:"percentage"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromDownPayment(p entities.DownPayment) DownPaymentResponse {
	return DownPaymentResponse{
		PaymentID:    p.ID,
		ID:           p.ID,
		ProposalID:   p.ProposalID,
		Percentage:   p.Percentage,
		Amount:       p.Amount,
		Date:         p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}

func FromDownPayments(list []entities.DownPayment) []DownPaymentResponse {
	out := make([]DownPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromDownPayment(p))
	}
	return out
}
