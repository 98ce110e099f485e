package request

import "encoding/json"

// DownPaymentRequest charges one of the proposal's down payment tiers.
//
// `mp_payload` is forwarded to Mercado Pago after the amount and references
// are pinned server-side; it needs payment_method_id and payer.
type DownPaymentRequest struct {
	Percentage int             `json:"percentage" binding:"required"`
	MPPayload  json.RawMessage `json:"mp_payload"`
}
