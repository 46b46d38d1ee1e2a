package view

import (
	"github.com/STTM-NSU/wallet-client/internal/model"
	"github.com/shopspring/decimal"
)

const (
	NoWalletsPlaceholder = "No wallets found"
	NoAssetsPlaceholder  = "No assets found"
)

type WalletRow struct {
	ID         string
	AssetCount int
	Total      string
}

type WalletList struct {
	Count       int
	Placeholder string // set only when there are no rows
	Rows        []WalletRow
}

func NewWalletList(wallets []model.Wallet) WalletList {
	list := WalletList{Count: len(wallets)}
	if len(wallets) == 0 {
		list.Placeholder = NoWalletsPlaceholder
		return list
	}

	list.Rows = make([]WalletRow, 0, len(wallets))
	for _, w := range wallets {
		list.Rows = append(list.Rows, WalletRow{
			ID:         w.ID,
			AssetCount: len(w.Assets),
			Total:      FormatMoney(w.Total),
		})
	}
	return list
}

type AssetRow struct {
	Symbol   string
	Quantity string
	Price    string
	Value    string
}

type Wallet struct {
	ID                string
	Total             string
	Created           string
	Assets            []AssetRow
	Placeholder       string
	SimulationEnabled bool
}

func NewWallet(w model.Wallet, dateLayout string) Wallet {
	v := Wallet{
		ID:                w.ID,
		Total:             FormatMoney(w.Total),
		Created:           FormatDate(w.CreatedAt, dateLayout),
		SimulationEnabled: w.HasAssets(),
	}
	if !w.HasAssets() {
		v.Placeholder = NoAssetsPlaceholder
		return v
	}

	v.Assets = make([]AssetRow, 0, len(w.Assets))
	for _, a := range w.Assets {
		v.Assets = append(v.Assets, AssetRow{
			Symbol:   a.Symbol,
			Quantity: a.Quantity.String(),
			Price:    FormatMoney(a.Price),
			Value:    FormatMoney(a.Value),
		})
	}
	return v
}

// Performer is one side of a simulation. Loss follows the sign of the
// number, not of the formatted text.
type Performer struct {
	Asset       string
	Performance string
	Loss        bool
}

// Simulation leaves Best or Worst nil when the service named no asset for
// that side.
type Simulation struct {
	Total string
	Best  *Performer
	Worst *Performer
}

func NewSimulation(r model.SimulationResult) Simulation {
	v := Simulation{Total: FormatMoney(r.Total)}
	if r.BestAsset != "" {
		best := orZero(r.BestPerformance)
		v.Best = &Performer{
			Asset:       r.BestAsset,
			Performance: FormatBestPerformance(best),
			Loss:        best.IsNegative(),
		}
	}
	if r.WorstAsset != "" {
		worst := orZero(r.WorstPerformance)
		v.Worst = &Performer{
			Asset:       r.WorstAsset,
			Performance: FormatSignedPercent(worst),
			Loss:        worst.IsNegative(),
		}
	}
	return v
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
