package tui

import (
	"errors"
	"strings"

	"github.com/STTM-NSU/wallet-client/internal/controller"
	"github.com/STTM-NSU/wallet-client/internal/view"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

type Action string

const (
	ActionList     Action = "list"
	ActionCreate   Action = "create"
	ActionLoad     Action = "load"
	ActionAdd      Action = "add"
	ActionSimulate Action = "simulate"
	ActionQuit     Action = "quit"
)

// menuOptions hides actions the current state can't run.
func menuOptions(ui controller.UIState, hasWallet, simulationEnabled bool) []huh.Option[Action] {
	opts := []huh.Option[Action]{
		huh.NewOption("List wallets", ActionList),
		huh.NewOption("Create wallet", ActionCreate),
		huh.NewOption("Load wallet", ActionLoad),
	}
	if hasWallet && !ui.AddAssetBusy {
		opts = append(opts, huh.NewOption("Add asset", ActionAdd))
	}
	if simulationEnabled && !ui.SimulationBusy {
		opts = append(opts, huh.NewOption("Run profit simulation", ActionSimulate))
	}
	return append(opts, huh.NewOption("Quit", ActionQuit))
}

func menuForm(action *Action, opts []huh.Option[Action]) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("What next?").
				Options(opts...).
				Value(action),
		),
	)
}

func createWalletForm(email *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("Owner of the new wallet").
				Value(email),
		),
	)
}

func chooseWalletForm(list view.WalletList, walletID *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(list.Rows))
	for _, row := range list.Rows {
		opts = append(opts, huh.NewOption(row.ID+"  "+row.Total, row.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a wallet").
				Options(opts...).
				Value(walletID),
		),
	)
}

func addAssetForm(in *controller.AssetInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Symbol").
				Description("Ticker, e.g. BTC").
				Value(&in.Symbol),
			huh.NewInput().
				Title("Quantity").
				Value(&in.Quantity).
				Validate(validateDecimal),
			huh.NewInput().
				Title("Price").
				Description("Leave empty to use the market price").
				Value(&in.Price).
				Validate(validateOptionalDecimal),
		),
	)
}

// Only checks the value parses; range checks are the service's job.
func validateDecimal(s string) error {
	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func validateOptionalDecimal(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDecimal(s)
}
