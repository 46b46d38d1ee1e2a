package session

import (
	"sync"
	"testing"

	"github.com/STTM-NSU/wallet-client/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	s := New("default")
	assert.Equal(t, "default", s.Name())
	assert.Empty(t, s.WalletID())
	_, ok := s.Wallet()
	assert.False(t, ok)

	s.SetWalletID("abc123")
	assert.Equal(t, "abc123", s.WalletID())
	_, ok = s.Wallet()
	assert.False(t, ok)

	s.SetWallet("abc123", model.Wallet{ID: "abc123", Assets: []model.Asset{{Symbol: "BTC"}}})
	w, ok := s.Wallet()
	require.True(t, ok)
	assert.Equal(t, "abc123", w.ID)

	// callers get a copy
	w.Assets[0].Symbol = "ETH"
	again, _ := s.Wallet()
	assert.Equal(t, "BTC", again.Assets[0].Symbol)
}

func TestSessionConcurrentWrites(t *testing.T) {
	s := New("default")

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.SetWallet(id, model.Wallet{ID: id})
		}(id)
	}
	wg.Wait()

	w, ok := s.Wallet()
	require.True(t, ok)
	assert.Equal(t, s.WalletID(), w.ID)
}
