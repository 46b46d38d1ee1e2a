package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Asset struct {
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Value     decimal.Decimal `json:"value"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

type Wallet struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Assets    []Asset         `json:"assets"`
}

func (w *Wallet) HasAssets() bool {
	return w != nil && len(w.Assets) > 0
}

// CreateWalletResponse is what the service answers to a wallet creation: the
// owner's email and the id of the freshly created wallet.
type CreateWalletResponse struct {
	Email     string    `json:"email"`
	WalletID  string    `json:"wallet_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SimulationResult names are empty and performances invalid when the
// service had nothing to compare.
type SimulationResult struct {
	Total            decimal.Decimal     `json:"total"`
	BestAsset        string              `json:"best_asset"`
	BestPerformance  decimal.NullDecimal `json:"best_performance"`
	WorstAsset       string              `json:"worst_asset"`
	WorstPerformance decimal.NullDecimal `json:"worst_performance"`
}
