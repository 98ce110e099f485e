package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motofinance/internal/domain/entities"
	"motofinance/internal/infrastructure/auth"
	"motofinance/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "routes-test-secret"

func testConfig() config.Config {
	return config.Config{
		Server:  config.ServerConfig{HTTPAddr: ":0"},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		Financing: config.FinancingConfig{
			SoatFee:       65,
			NotarialFee:   180,
			ProcessingFee: 120,
			AnnualRate:    0.42,
		},
		Cache:    config.CacheConfig{Driver: config.CacheDriverMemory, TTL: time.Minute},
		Auth:     config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
		Payments: config.PaymentsConfig{Mock: true},
		Watcher:  config.WatcherConfig{Enabled: true, PollSpec: "*/1 * * * * *"},
	}
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newClient(t *testing.T, router http.Handler, claims *auth.Claims) client {
	t.Helper()
	c := client{t: t, router: router}
	if claims != nil {
		tok, _, err := auth.JWT{Secret: []byte(testSecret), TokenTTL: time.Hour}.Sign(*claims)
		require.NoError(t, err)
		c.token = tok
	}
	return c
}

func (c client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestBuild_RequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	_, err := build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestBuild_UnknownDrivers(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "sqlite"
	_, err := build(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "storage driver")

	cfg = testConfig()
	cfg.Cache.Driver = "memcached"
	_, err = build(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "cache driver")

	cfg = testConfig()
	cfg.Watcher.PollSpec = "not a spec"
	_, err = build(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "poll spec")
}

func TestProposalFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := build(ctx, testConfig(), zap.NewNop())
	require.NoError(t, err)
	app.Start()
	defer app.Close()

	anon := newClient(t, app.Router, nil)
	store := newClient(t, app.Router, &auth.Claims{UserID: "u-store", Role: entities.RoleStore, StoreID: "store-1"})
	otherStore := newClient(t, app.Router, &auth.Claims{UserID: "u-other", Role: entities.RoleStore, StoreID: "store-2"})
	admin := newClient(t, app.Router, &auth.Claims{UserID: "u-admin", Role: entities.RoleAdmin})
	buyer := newClient(t, app.Router, &auth.Claims{UserID: "u-client", Role: entities.RoleClient})

	code, body := anon.do(http.MethodGet, "/v1/ping", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body["message"])

	code, _ = anon.do(http.MethodGet, "/v1/financing?price=4500", "")
	require.Equal(t, http.StatusUnauthorized, code)

	code, body = buyer.do(http.MethodGet, "/v1/financing?price=4500", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4865.0, body["total_price"])

	code, _ = buyer.do(http.MethodPost, "/v1/proposals", `{"brand":"Honda","model":"CB190","proposed_price":4500}`)
	require.Equal(t, http.StatusForbidden, code)

	code, body = store.do(http.MethodPost, "/v1/proposals", `{"brand":"Honda","model":"CB190","proposed_price":4500}`)
	require.Equal(t, http.StatusCreated, code)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, "store-1", body["store_id"])

	code, _ = otherStore.do(http.MethodGet, "/v1/proposals/"+id, "")
	require.Equal(t, http.StatusForbidden, code)

	code, _ = store.do(http.MethodPatch, "/v1/proposals/"+id+"/approve", "")
	require.Equal(t, http.StatusForbidden, code)

	code, body = admin.do(http.MethodPatch, "/v1/proposals/"+id+"/review", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "UNDER_REVIEW", body["status"])

	code, body = admin.do(http.MethodPost, "/v1/proposals/"+id+"/negotiations", `{"message":"Can you do 4300?"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "COUNTER_OFFERED", body["status"])

	code, body = store.do(http.MethodPatch, "/v1/proposals/"+id+"/price", `{"proposed_price":4300}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4300.0, body["proposed_price"])

	code, body = store.do(http.MethodPost, "/v1/proposals/"+id+"/negotiations", `{"message":"Done, 4300."}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "UNDER_REVIEW", body["status"])

	code, _ = store.do(http.MethodDelete, "/v1/proposals/"+id+"/financing", "")
	require.Equal(t, http.StatusForbidden, code)

	code, body = admin.do(http.MethodDelete, "/v1/proposals/"+id+"/financing", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "UNDER_REVIEW", body["status"])
	calc, _ := body["calculations"].(map[string]any)
	assert.Equal(t, 4300.0, calc["base_price"])

	code, _ = store.do(http.MethodPost, "/v1/proposals/"+id+"/down-payments", `{"percentage":15,"mp_payload":{"payment_method_id":"pix","payer":{"email":"c@example.com"}}}`)
	require.Equal(t, http.StatusConflict, code)

	code, body = admin.do(http.MethodPatch, "/v1/proposals/"+id+"/approve", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "APPROVED", body["status"])
	assert.Equal(t, "u-admin", body["evaluator_id"])

	code, _ = admin.do(http.MethodPatch, "/v1/proposals/"+id+"/reject", `{"reason":"too late"}`)
	require.Equal(t, http.StatusConflict, code)

	code, body = store.do(http.MethodGet, "/v1/proposals/"+id+"/product", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4300.0, body["price"])
	assert.Equal(t, id, body["proposal_id"])

	code, body = store.do(http.MethodPost, "/v1/proposals/"+id+"/down-payments", `{"percentage":15,"mp_payload":{"payment_method_id":"pix","payer":{"email":"c@example.com"}}}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, 15.0, body["percentage"])
	paymentID, _ := body["payment_id"].(string)
	require.NotEmpty(t, paymentID)

	code, body = store.do(http.MethodGet, "/v1/down-payments/"+paymentID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, id, body["proposal_id"])

	code, _ = store.do(http.MethodDelete, "/v1/proposals/"+id, "")
	require.Equal(t, http.StatusForbidden, code)

	code, _ = admin.do(http.MethodDelete, "/v1/proposals/"+id, "")
	require.Equal(t, http.StatusConflict, code)

	code, _ = store.do(http.MethodGet, "/v1/users/me", "")
	require.Equal(t, http.StatusNotFound, code)
}

func TestSwaggerRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/proposals")
}
