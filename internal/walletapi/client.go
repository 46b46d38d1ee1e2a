package walletapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/STTM-NSU/wallet-client/internal/config"
	"github.com/STTM-NSU/wallet-client/internal/logger"
	"github.com/STTM-NSU/wallet-client/internal/model"
	"github.com/google/uuid"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	_walletsURL          = "/wallets"
	_profitSimulationURL = "/profit-simulation"

	_requestIDHeader   = "X-Request-Id"
	_contentTypeHeader = "Content-Type"
	_jsonContentType   = "application/json"
)

var ErrEmptyWalletID = errors.New("empty wallet id")

func walletURL(walletID string) string {
	return _walletsURL + "/" + url.PathEscape(walletID)
}

func walletAssetsURL(walletID string) string {
	return walletURL(walletID) + "/assets"
}

// WalletService is a thin client for the wallet REST service. Every call is
// a single attempt; it is safe for concurrent use.
type WalletService struct {
	c           *resty.Client
	rateLimiter ratelimit.Limiter

	logger logger.Logger
}

func NewWalletService(cfg config.APIConfig, logger logger.Logger) *WalletService {
	client := withSonicCodec(resty.New()).
		SetLogger(logger).
		SetBaseURL(cfg.Address).
		SetTimeout(cfg.Timeout)

	rl := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.RequestsPerSecond)
	}

	return &WalletService{
		c:           client,
		rateLimiter: rl,
		logger:      logger,
	}
}

func (s *WalletService) Close() error {
	return s.c.Close()
}

// GET /wallets
func (s *WalletService) ListWallets(ctx context.Context) ([]model.Wallet, error) {
	var wallets []model.Wallet
	if err := s.do(s.request(ctx).SetResult(&wallets), http.MethodGet, _walletsURL); err != nil {
		return nil, fmt.Errorf("%w: can't list wallets", err)
	}
	return wallets, nil
}

// POST /wallets {"email": ...}
func (s *WalletService) CreateWallet(ctx context.Context, email string) (model.CreateWalletResponse, error) {
	var created model.CreateWalletResponse
	req := s.request(ctx).
		SetHeader(_contentTypeHeader, _jsonContentType).
		SetBody(model.CreateWalletRequest{Email: email}).
		SetResult(&created)

	if err := s.do(req, http.MethodPost, _walletsURL); err != nil {
		return model.CreateWalletResponse{}, fmt.Errorf("%w: can't create wallet", err)
	}
	return created, nil
}

// GET /wallets/{id}
func (s *WalletService) GetWallet(ctx context.Context, walletID string) (model.Wallet, error) {
	if walletID == "" {
		return model.Wallet{}, ErrEmptyWalletID
	}

	var wallet model.Wallet
	if err := s.do(s.request(ctx).SetResult(&wallet), http.MethodGet, walletURL(walletID)); err != nil {
		return model.Wallet{}, fmt.Errorf("%w: can't get wallet %s", err, walletID)
	}
	return wallet, nil
}

// POST /wallets/{id}/assets {"symbol": ..., "quantity": ...}
func (s *WalletService) AddAsset(ctx context.Context, walletID string, asset model.AddAssetRequest) (model.Wallet, error) {
	if walletID == "" {
		return model.Wallet{}, ErrEmptyWalletID
	}

	var wallet model.Wallet
	req := s.request(ctx).
		SetHeader(_contentTypeHeader, _jsonContentType).
		SetBody(asset).
		SetResult(&wallet)

	if err := s.do(req, http.MethodPost, walletAssetsURL(walletID)); err != nil {
		return model.Wallet{}, fmt.Errorf("%w: can't add asset %s to wallet %s", err, asset.Symbol, walletID)
	}
	return wallet, nil
}

// POST /profit-simulation {"assets": [...]}
func (s *WalletService) SimulateProfit(ctx context.Context, sim model.SimulationRequest) (model.SimulationResult, error) {
	var result model.SimulationResult
	req := s.request(ctx).
		SetHeader(_contentTypeHeader, _jsonContentType).
		SetBody(sim).
		SetResult(&result)

	if err := s.do(req, http.MethodPost, _profitSimulationURL); err != nil {
		return model.SimulationResult{}, fmt.Errorf("%w: can't run profit simulation", err)
	}
	return result, nil
}

func (s *WalletService) request(ctx context.Context) *resty.Request {
	s.rateLimiter.Take()

	return s.c.R().
		SetContext(ctx).
		SetHeader(_requestIDHeader, uuid.NewString()).
		SetForceResponseContentType(_jsonContentType).
		SetError(&model.ErrorResponse{})
}

func (s *WalletService) do(req *resty.Request, method, path string) error {
	requestID := req.Header.Get(_requestIDHeader)

	resp, err := req.Execute(method, path)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}

	if resp == nil || resp.RawResponse == nil {
		if err == nil {
			err = errors.New("no response")
		}
		s.logger.Debugf("request %s %s (%s) failed: %s", method, path, requestID, err)
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}

	s.logger.Debugf("got response %s %s (%s) status: %s, %s", method, path, requestID, resp.Status(), resp.Duration())

	if resp.IsError() {
		apiErr := &Error{Kind: KindStatus, Method: method, Path: path, StatusCode: resp.StatusCode()}
		if body, ok := resp.Error().(*model.ErrorResponse); ok && err == nil {
			apiErr.Response = body
		}
		return apiErr
	}
	if err != nil {
		return &Error{Kind: KindDecode, Method: method, Path: path, StatusCode: resp.StatusCode(), Err: err}
	}
	if !resp.IsSuccess() {
		return &Error{Kind: KindStatus, Method: method, Path: path, StatusCode: resp.StatusCode()}
	}

	return nil
}
