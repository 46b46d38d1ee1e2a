package walletapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/STTM-NSU/wallet-client/internal/config"
	"github.com/STTM-NSU/wallet-client/internal/fakeapi"
	"github.com/STTM-NSU/wallet-client/internal/logger"
	"github.com/STTM-NSU/wallet-client/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, address string) *WalletService {
	t.Helper()
	s := NewWalletService(config.APIConfig{Address: address}, logger.NewNop())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newFake(t *testing.T, opts ...fakeapi.Option) (*fakeapi.Server, *WalletService) {
	t.Helper()
	fake := fakeapi.New(opts...)
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	return fake, newService(t, srv.URL+fakeapi.BasePath)
}

// rawServer answers every request with status and body, and hands the last
// request to the test.
func rawServer(t *testing.T, status int, body string) (*httptest.Server, <-chan *http.Request) {
	t.Helper()
	seen := make(chan *http.Request, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(payload))
		seen <- r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestListWallets(t *testing.T) {
	srv, seen := rawServer(t, http.StatusOK, `[
		{"id": "w1", "total": 10.005, "created_at": "2024-05-01T10:00:00Z",
		 "assets": [{"symbol": "BTC", "quantity": 0.5, "price": 20.01, "value": 10.005}]},
		{"id": "w2", "total": 0, "created_at": "2024-05-02T10:00:00+02:00", "assets": []}
	]`)

	wallets, err := newService(t, srv.URL+"/api/v1").ListWallets(context.Background())
	require.NoError(t, err)
	require.Len(t, wallets, 2)

	assert.Equal(t, "w1", wallets[0].ID)
	assert.True(t, decimal.RequireFromString("10.005").Equal(wallets[0].Total))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), wallets[0].CreatedAt.UTC())
	require.Len(t, wallets[0].Assets, 1)
	assert.Equal(t, "BTC", wallets[0].Assets[0].Symbol)
	assert.Empty(t, wallets[1].Assets)

	r := <-seen
	assert.Equal(t, http.MethodGet, r.Method)
	assert.Equal(t, "/api/v1/wallets", r.URL.Path)
	assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
}

func TestCreateWalletRequestShape(t *testing.T) {
	srv, seen := rawServer(t, http.StatusCreated,
		`{"email": "a@b.c", "wallet_id": "abc123", "created_at": "2024-05-01T10:00:00Z"}`)

	created, err := newService(t, srv.URL).CreateWallet(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "abc123", created.WalletID)
	assert.Equal(t, "a@b.c", created.Email)

	r := <-seen
	assert.Equal(t, http.MethodPost, r.Method)
	assert.Equal(t, "/wallets", r.URL.Path)
	assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"email": "a@b.c"}`, readBody(t, r))
}

func TestAddAssetRequestShape(t *testing.T) {
	srv, seen := rawServer(t, http.StatusOK, `{"id": "w 1", "total": 1, "created_at": "2024-05-01T10:00:00Z", "assets": []}`)
	s := newService(t, srv.URL)

	_, err := s.AddAsset(context.Background(), "w 1", model.AddAssetRequest{Symbol: "BTC", Quantity: 1.5})
	require.NoError(t, err)

	r := <-seen
	assert.Equal(t, "/wallets/w 1/assets", r.URL.Path)
	assert.JSONEq(t, `{"symbol": "BTC", "quantity": 1.5}`, readBody(t, r))

	price := 30000.25
	_, err = s.AddAsset(context.Background(), "w 1", model.AddAssetRequest{Symbol: "BTC", Quantity: 2, Price: &price})
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol": "BTC", "quantity": 2, "price": 30000.25}`, readBody(t, <-seen))
}

func TestSimulateProfitRequestShape(t *testing.T) {
	srv, seen := rawServer(t, http.StatusOK, `{"total": 150.5, "best_asset": "BTC", "best_performance": 12.3,
		"worst_asset": "ETH", "worst_performance": -4.2}`)

	result, err := newService(t, srv.URL).SimulateProfit(context.Background(), model.SimulationRequest{
		Assets: []model.SimulationAsset{{Symbol: "BTC", Quantity: 1, Value: 100}, {Symbol: "ETH", Quantity: 2, Value: 50.5}},
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("150.5").Equal(result.Total))
	assert.Equal(t, "BTC", result.BestAsset)
	assert.True(t, result.BestPerformance.Valid)
	assert.Equal(t, "12.3", result.BestPerformance.Decimal.String())
	assert.Equal(t, "ETH", result.WorstAsset)
	assert.Equal(t, "-4.2", result.WorstPerformance.Decimal.String())

	r := <-seen
	assert.Equal(t, "/profit-simulation", r.URL.Path)
	assert.JSONEq(t, `{"assets": [{"symbol": "BTC", "quantity": 1, "value": 100},
		{"symbol": "ETH", "quantity": 2, "value": 50.5}]}`, readBody(t, r))
}

func TestSimulateProfitNullPerformers(t *testing.T) {
	srv, _ := rawServer(t, http.StatusOK, `{"total": 0, "best_asset": null, "best_performance": null,
		"worst_asset": null, "worst_performance": null}`)

	result, err := newService(t, srv.URL).SimulateProfit(context.Background(), model.SimulationRequest{})
	require.NoError(t, err)
	assert.Empty(t, result.BestAsset)
	assert.False(t, result.BestPerformance.Valid)
	assert.Empty(t, result.WorstAsset)
}

func TestStatusError(t *testing.T) {
	srv, _ := rawServer(t, http.StatusBadRequest, `{"status": 400, "message": "Validation failed",
		"details": ["symbol: Symbol must be 1-10 uppercase alphanumeric characters"],
		"path": "/api/v1/wallets/w1/assets", "timestamp": "2024-05-01T10:00:00Z"}`)

	_, err := newService(t, srv.URL).AddAsset(context.Background(), "w1", model.AddAssetRequest{Symbol: "b-t-c", Quantity: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatus)
	assert.NotErrorIs(t, err, ErrNetwork)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindStatus, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.NotNil(t, apiErr.Response)
	assert.Equal(t, "Validation failed", apiErr.Response.Message)
	assert.Len(t, apiErr.Response.Details, 1)
	assert.Contains(t, err.Error(), "Validation failed")
}

func TestStatusErrorWithoutJSONBody(t *testing.T) {
	srv, _ := rawServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := newService(t, srv.URL).ListWallets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatus)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Nil(t, apiErr.Response)
}

func TestDecodeError(t *testing.T) {
	srv, _ := rawServer(t, http.StatusOK, `{"id": "w1", "total": "not-a-number"`)

	_, err := newService(t, srv.URL).GetWallet(context.Background(), "w1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrStatus)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	address := srv.URL
	srv.Close()

	_, err := newService(t, address).ListWallets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestCanceledContext(t *testing.T) {
	srv, _ := rawServer(t, http.StatusOK, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(t, srv.URL).ListWallets(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestEmptyWalletID(t *testing.T) {
	s := newService(t, "http://127.0.0.1:1")

	_, err := s.GetWallet(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyWalletID)

	_, err = s.AddAsset(context.Background(), "", model.AddAssetRequest{Symbol: "BTC", Quantity: 1})
	assert.ErrorIs(t, err, ErrEmptyWalletID)
}

func TestAgainstFakeService(t *testing.T) {
	fake, s := newFake(t,
		fakeapi.WithIDs("abc123"),
		fakeapi.WithPrices(map[string]string{"BTC": "100", "ETH": "10"}),
	)
	ctx := context.Background()

	wallets, err := s.ListWallets(ctx)
	require.NoError(t, err)
	assert.Empty(t, wallets)

	created, err := s.CreateWallet(ctx, "trader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", created.WalletID)

	w, err := s.AddAsset(ctx, "abc123", model.AddAssetRequest{Symbol: "BTC", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, w.Assets, 1)
	assert.Equal(t, "200", w.Total.String())

	w, err = s.AddAsset(ctx, "abc123", model.AddAssetRequest{Symbol: "BTC", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, w.Assets, 1)
	assert.Equal(t, "3", w.Assets[0].Quantity.String())

	got, err := s.GetWallet(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, w.Total.String(), got.Total.String())

	_, err = s.GetWallet(ctx, "missing")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	fake.FailNext(http.StatusInternalServerError)
	_, err = s.ListWallets(ctx)
	assert.ErrorIs(t, err, ErrStatus)

	assert.Len(t, fake.Requests(), 7)
}

func TestRateLimitedClientStillServes(t *testing.T) {
	srv, _ := rawServer(t, http.StatusOK, `[]`)
	s := NewWalletService(config.APIConfig{Address: srv.URL, RequestsPerSecond: 1000}, logger.NewNop())
	t.Cleanup(func() { _ = s.Close() })

	for range 3 {
		_, err := s.ListWallets(context.Background())
		require.NoError(t, err)
	}
}

func readBody(t *testing.T, r *http.Request) string {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var v any
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return string(body)
}
