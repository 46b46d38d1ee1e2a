// Package fakeapi is an in-memory stand-in for the wallet service. It speaks
// the same REST contract and is used by tests and by `wallet-client
// serve-fake` for local runs without the real backend.
package fakeapi

import (
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	errWalletNotFound = errors.New("wallet not found")
	errEmailExists    = errors.New("email already exists")
	errUnknownSymbol  = errors.New("invalid or unsupported symbol")
	errBadSimulation  = errors.New("invalid simulation input")
)

var _symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

type asset struct {
	symbol    string
	quantity  decimal.Decimal
	price     decimal.Decimal
	updatedAt time.Time
}

func (a asset) value() decimal.Decimal {
	return a.quantity.Mul(a.price)
}

type wallet struct {
	id        string
	email     string
	createdAt time.Time
	assets    []asset
}

func (w *wallet) total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range w.assets {
		total = total.Add(a.value())
	}
	return total
}

type performance struct {
	symbol  string
	percent decimal.Decimal
}

type simulation struct {
	total decimal.Decimal
	best  *performance
	worst *performance
}

type simulationInput struct {
	symbol   string
	quantity decimal.Decimal
	value    decimal.Decimal
}

type store struct {
	mu sync.Mutex

	now   func() time.Time
	newID func() string

	wallets []*wallet
	byID    map[string]*wallet
	prices  map[string]decimal.Decimal
}

func newStore() *store {
	return &store{
		now:    time.Now,
		newID:  uuid.NewString,
		byID:   make(map[string]*wallet),
		prices: make(map[string]decimal.Decimal),
	}
}

func (s *store) setPrice(symbol string, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

func (s *store) createWallet(email string) (*wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.wallets {
		if w.email == email {
			return nil, errEmailExists
		}
	}

	w := &wallet{id: s.newID(), email: email, createdAt: s.now()}
	s.wallets = append(s.wallets, w)
	s.byID[w.id] = w
	return w, nil
}

func (s *store) list() []wallet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]wallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		out = append(out, snapshot(w))
	}
	return out
}

func (s *store) get(id string) (wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.byID[id]
	if !ok {
		return wallet{}, errWalletNotFound
	}
	return snapshot(w), nil
}

// addAsset merges into an existing position of the same symbol. A zero price
// means "use the market price".
func (s *store) addAsset(id, symbol string, quantity, price decimal.Decimal) (wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.byID[id]
	if !ok {
		return wallet{}, errWalletNotFound
	}

	if price.IsZero() {
		market, ok := s.prices[symbol]
		if !ok {
			return wallet{}, errUnknownSymbol
		}
		price = market
	}

	for i := range w.assets {
		if w.assets[i].symbol == symbol {
			w.assets[i].quantity = w.assets[i].quantity.Add(quantity)
			w.assets[i].price = price
			w.assets[i].updatedAt = s.now()
			return snapshot(w), nil
		}
	}

	w.assets = append(w.assets, asset{symbol: symbol, quantity: quantity, price: price, updatedAt: s.now()})
	return snapshot(w), nil
}

// simulate values every input at the current market price and reports the
// best and worst change against the price implied by the input value.
func (s *store) simulate(inputs []simulationInput) (simulation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := simulation{total: decimal.Zero}
	for _, in := range inputs {
		if !in.quantity.IsPositive() || !in.value.IsPositive() {
			return simulation{}, errBadSimulation
		}

		current, ok := s.prices[in.symbol]
		if !ok {
			continue
		}
		result.total = result.total.Add(in.quantity.Mul(current))

		boughtAt := in.value.DivRound(in.quantity, 8)
		p := performance{symbol: in.symbol, percent: decimal.Zero}
		if !boughtAt.IsZero() {
			p.percent = current.Sub(boughtAt).DivRound(boughtAt, 4).Mul(decimal.NewFromInt(100)).Round(2)
		}

		if result.best == nil || p.percent.GreaterThan(result.best.percent) {
			best := p
			result.best = &best
		}
		if result.worst == nil || p.percent.LessThan(result.worst.percent) {
			worst := p
			result.worst = &worst
		}
	}

	return result, nil
}

func snapshot(w *wallet) wallet {
	c := *w
	c.assets = append([]asset(nil), w.assets...)
	return c
}
