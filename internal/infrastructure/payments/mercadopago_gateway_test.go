package payments

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	_, err := NewMercadoPagoGateway("", false, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestMercadoPagoGateway_MockCreate(t *testing.T) {
	g, err := NewMercadoPagoGateway("", true, nil)
	require.NoError(t, err)
	g.now = func() time.Time { return time.Unix(1700000000, 0) }

	id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":730,"date_created":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "1700000000000000000", id)
	assert.Equal(t, "approved", status)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(730), body["transaction_amount"])
	assert.Equal(t, "x", body["date_created"])
	assert.Equal(t, "accredited", body["status_detail"])
	assert.Contains(t, body, "date_approved")
}

func TestMercadoPagoGateway_MockCreateInvalidPayload(t *testing.T) {
	g, err := NewMercadoPagoGateway("", true, zap.NewNop())
	require.NoError(t, err)

	_, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`not-json`))
	require.NoError(t, err)
	assert.Equal(t, "approved", status)
	assert.NotContains(t, string(raw), "not-json")
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	_, _, _, err := g.CreatePayment(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
}
