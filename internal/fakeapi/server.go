package fakeapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

const BasePath = "/api/v1"

// RecordedRequest is one request the fake received, body kept verbatim.
type RecordedRequest struct {
	Method string
	Path   string
	Body   string
}

type Server struct {
	store *store

	mu       sync.Mutex
	requests []RecordedRequest
	failures []int
}

type Option func(*Server)

// WithIDs makes the fake hand out the given wallet ids in order, then fall
// back to random ones.
func WithIDs(ids ...string) Option {
	return func(s *Server) {
		next := s.store.newID
		var mu sync.Mutex
		s.store.newID = func() string {
			mu.Lock()
			defer mu.Unlock()
			if len(ids) == 0 {
				return next()
			}
			id := ids[0]
			ids = ids[1:]
			return id
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.store.now = now
	}
}

// WithPrices seeds the market price table, e.g. {"BTC": "65000.5"}.
func WithPrices(prices map[string]string) Option {
	return func(s *Server) {
		for symbol, p := range prices {
			s.store.setPrice(symbol, decimal.RequireFromString(p))
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{store: newStore()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) SetPrice(symbol string, price decimal.Decimal) {
	s.store.setPrice(symbol, price)
}

// FailNext makes the next request answer with the given status and an
// error body, without touching state.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, status)
}

func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/wallets", s.listWallets)
		r.Post("/wallets", s.createWallet)
		r.Get("/wallets/{walletID}", s.getWallet)
		r.Post("/wallets/{walletID}/assets", s.addAsset)
		r.Post("/profit-simulation", s.simulate)
	})

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		var status int
		if len(s.failures) > 0 {
			status = s.failures[0]
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			writeError(w, r, status, "Injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listWallets(w http.ResponseWriter, r *http.Request) {
	wallets := s.store.list()
	out := make([]walletJSON, 0, len(wallets))
	for i := range wallets {
		out = append(out, toWalletJSON(&wallets[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createWallet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}
	if strings.TrimSpace(body.Email) == "" {
		writeError(w, r, http.StatusBadRequest, "Validation failed", "email: Email is required")
		return
	}

	created, err := s.store.createWallet(body.Email)
	if err != nil {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, userJSON{
		Email:     created.email,
		WalletID:  created.id,
		CreatedAt: created.createdAt,
	})
}

func (s *Server) getWallet(w http.ResponseWriter, r *http.Request) {
	found, err := s.store.get(chi.URLParam(r, "walletID"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toWalletJSON(&found))
}

func (s *Server) addAsset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Symbol   string       `json:"symbol"`
		Quantity *json.Number `json:"quantity"`
		Price    *json.Number `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}

	var details []string
	if !_symbolPattern.MatchString(body.Symbol) {
		details = append(details, "symbol: Symbol must be 1-10 uppercase alphanumeric characters")
	}
	quantity, qErr := parseNumber(body.Quantity)
	if body.Quantity == nil || qErr != nil || !quantity.IsPositive() {
		details = append(details, "quantity: Quantity must be a positive number")
	}
	price, pErr := parseNumber(body.Price)
	if pErr != nil {
		details = append(details, "price: Price must be a number")
	}
	if len(details) > 0 {
		writeError(w, r, http.StatusBadRequest, "Validation failed", details...)
		return
	}

	updated, err := s.store.addAsset(chi.URLParam(r, "walletID"), body.Symbol, quantity, price)
	switch {
	case errors.Is(err, errWalletNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toWalletJSON(&updated))
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Assets []struct {
			Symbol   string      `json:"symbol"`
			Quantity json.Number `json:"quantity"`
			Value    json.Number `json:"value"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}
	if body.Assets == nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", "assets: Assets list is required")
		return
	}

	inputs := make([]simulationInput, 0, len(body.Assets))
	for _, a := range body.Assets {
		q, qErr := decimal.NewFromString(a.Quantity.String())
		v, vErr := decimal.NewFromString(a.Value.String())
		if qErr != nil || vErr != nil {
			writeError(w, r, http.StatusBadRequest, "Validation failed", "assets: quantity and value must be numbers")
			return
		}
		inputs = append(inputs, simulationInput{symbol: a.Symbol, quantity: q, value: v})
	}

	result, err := s.store.simulate(inputs)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	out := simulationJSON{Total: number(result.total)}
	if result.best != nil {
		out.BestAsset = &result.best.symbol
		out.BestPerformance = number(result.best.percent)
	} else {
		out.BestPerformance = json.Number("0")
	}
	if result.worst != nil {
		out.WorstAsset = &result.worst.symbol
		out.WorstPerformance = number(result.worst.percent)
	} else {
		out.WorstPerformance = json.Number("0")
	}
	writeJSON(w, http.StatusOK, out)
}

func parseNumber(n *json.Number) (decimal.Decimal, error) {
	if n == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}

// DemoPrices is the market the fake starts with for local runs.
func DemoPrices() map[string]string {
	return map[string]string{
		"BTC":  "70000",
		"ETH":  "3600",
		"ADA":  "0.45",
		"DOT":  "7.2",
		"LINK": "15.3",
	}
}
