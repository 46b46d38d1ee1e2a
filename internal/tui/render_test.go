package tui

import (
	"errors"
	"testing"

	"github.com/STTM-NSU/wallet-client/internal/view"
	"github.com/stretchr/testify/assert"
)

func TestRenderWalletListEmpty(t *testing.T) {
	out := RenderWalletList(view.WalletList{Placeholder: view.NoWalletsPlaceholder})

	assert.Contains(t, out, "WALLETS (0)")
	assert.Contains(t, out, view.NoWalletsPlaceholder)
	assert.NotContains(t, out, "TOTAL")
}

func TestRenderWalletList(t *testing.T) {
	out := RenderWalletList(view.WalletList{
		Count: 2,
		Rows: []view.WalletRow{
			{ID: "w1", AssetCount: 3, Total: "$10.01"},
			{ID: "w2", AssetCount: 0, Total: "$0.00"},
		},
	})

	assert.Contains(t, out, "WALLETS (2)")
	assert.Contains(t, out, "w1")
	assert.Contains(t, out, "$10.01")
	assert.Contains(t, out, "w2")
	assert.NotContains(t, out, view.NoWalletsPlaceholder)
}

func TestRenderWallet(t *testing.T) {
	out := RenderWallet(view.Wallet{
		ID:      "abc123",
		Total:   "$50.00",
		Created: "2024-05-01 10:00:00",
		Assets:  []view.AssetRow{{Symbol: "BTC", Quantity: "0.5", Price: "$100.00", Value: "$50.00"}},
	})

	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "2024-05-01 10:00:00")
	assert.Contains(t, out, "BTC")
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, "$100.00")
}

func TestRenderWalletWithoutAssets(t *testing.T) {
	out := RenderWallet(view.Wallet{ID: "abc123", Total: "$0.00", Placeholder: view.NoAssetsPlaceholder})

	assert.Contains(t, out, view.NoAssetsPlaceholder)
	assert.NotContains(t, out, "SYMBOL")
}

func TestRenderSimulation(t *testing.T) {
	out := RenderSimulation(view.Simulation{
		Total: "$150.50",
		Best:  &view.Performer{Asset: "BTC", Performance: "+12.30%"},
		Worst: &view.Performer{Asset: "ETH", Performance: "-4.20%", Loss: true},
	})

	assert.Contains(t, out, "$150.50")
	assert.Contains(t, out, "BTC")
	assert.Contains(t, out, "+12.30%")
	assert.Contains(t, out, "ETH")
	assert.Contains(t, out, "-4.20%")
}

func TestPerformanceStyleFollowsLoss(t *testing.T) {
	assert.Equal(t, gainStyle, performanceStyle(view.Performer{Performance: "+12.30%"}))
	assert.Equal(t, lossStyle, performanceStyle(view.Performer{Performance: "-4.20%", Loss: true}))
	// a losing best performer keeps its "+" prefix
	assert.Equal(t, lossStyle, performanceStyle(view.Performer{Performance: "+-1.50%", Loss: true}))

	out := RenderSimulation(view.Simulation{
		Total: "$98.50",
		Best:  &view.Performer{Asset: "BTC", Performance: "+-1.50%", Loss: true},
	})
	assert.Contains(t, out, "+-1.50%")
}

func TestRenderSimulationWithoutPerformers(t *testing.T) {
	out := RenderSimulation(view.Simulation{Total: "$0.00"})

	assert.Contains(t, out, "$0.00")
	assert.NotContains(t, out, "Best")
	assert.NotContains(t, out, "Worst")
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError(errors.New("boom")), "boom")
}
