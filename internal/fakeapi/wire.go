package fakeapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Numbers go out as bare JSON numbers, the way the real service serializes
// its decimals.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type assetJSON struct {
	Symbol    string      `json:"symbol"`
	Quantity  json.Number `json:"quantity"`
	Price     json.Number `json:"price"`
	Value     json.Number `json:"value"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type walletJSON struct {
	ID        string      `json:"id"`
	Total     json.Number `json:"total"`
	Assets    []assetJSON `json:"assets"`
	CreatedAt time.Time   `json:"created_at"`
}

func toWalletJSON(w *wallet) walletJSON {
	assets := make([]assetJSON, 0, len(w.assets))
	for _, a := range w.assets {
		assets = append(assets, assetJSON{
			Symbol:    a.symbol,
			Quantity:  number(a.quantity),
			Price:     number(a.price),
			Value:     number(a.value()),
			UpdatedAt: a.updatedAt,
		})
	}
	return walletJSON{
		ID:        w.id,
		Total:     number(w.total()),
		Assets:    assets,
		CreatedAt: w.createdAt,
	}
}

type userJSON struct {
	Email     string    `json:"email"`
	WalletID  string    `json:"wallet_id"`
	CreatedAt time.Time `json:"created_at"`
}

type simulationJSON struct {
	Total            json.Number `json:"total"`
	BestAsset        *string     `json:"best_asset"`
	BestPerformance  json.Number `json:"best_performance"`
	WorstAsset       *string     `json:"worst_asset"`
	WorstPerformance json.Number `json:"worst_performance"`
}

type errorJSON struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Details   []string  `json:"details"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	writeJSON(w, status, errorJSON{
		Status:    status,
		Message:   message,
		Details:   details,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}
