package session

import (
	"sync"

	"github.com/STTM-NSU/wallet-client/internal/model"
)

// Session is the client-side context of one user: the wallet currently
// shown and the last snapshot loaded for it. The snapshot may be stale.
type Session struct {
	name string

	mu       sync.RWMutex
	walletID string
	wallet   *model.Wallet
}

func New(name string) *Session {
	return &Session{name: name}
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) WalletID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walletID
}

// Wallet returns a copy of the cached snapshot, or false when none is held.
func (s *Session) Wallet() (model.Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wallet == nil {
		return model.Wallet{}, false
	}
	w := *s.wallet
	w.Assets = append([]model.Asset(nil), s.wallet.Assets...)
	return w, true
}

func (s *Session) SetWalletID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walletID = id
}

// SetWallet stores id and snapshot together.
func (s *Session) SetWallet(id string, w model.Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walletID = id
	s.wallet = &w
}
