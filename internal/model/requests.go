package model

import "time"

type CreateWalletRequest struct {
	Email string `json:"email"`
}

// AddAssetRequest.Price is optional; the service keeps its own price when it
// is absent.
type AddAssetRequest struct {
	Symbol   string   `json:"symbol"`
	Quantity float64  `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

type SimulationAsset struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Value    float64 `json:"value"`
}

type SimulationRequest struct {
	Assets []SimulationAsset `json:"assets"`
}

// NewSimulationRequest re-shapes a wallet snapshot into the simulation body.
func NewSimulationRequest(w Wallet) SimulationRequest {
	assets := make([]SimulationAsset, 0, len(w.Assets))
	for _, a := range w.Assets {
		assets = append(assets, SimulationAsset{
			Symbol:   a.Symbol,
			Quantity: a.Quantity.InexactFloat64(),
			Value:    a.Value.InexactFloat64(),
		})
	}
	return SimulationRequest{Assets: assets}
}

type ErrorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Details   []string  `json:"details"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}
