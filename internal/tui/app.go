package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/STTM-NSU/wallet-client/internal/controller"
	"github.com/STTM-NSU/wallet-client/internal/logger"
	"github.com/STTM-NSU/wallet-client/internal/view"
	"github.com/charmbracelet/huh"
)

// Prompter collects input for the interactive mode.
type Prompter interface {
	Action(ctx context.Context, opts []huh.Option[Action]) (Action, error)
	Email(ctx context.Context) (string, error)
	Wallet(ctx context.Context, list view.WalletList) (string, error)
	Asset(ctx context.Context) (controller.AssetInput, error)
}

type FormPrompter struct{}

func (FormPrompter) Action(ctx context.Context, opts []huh.Option[Action]) (Action, error) {
	var action Action
	err := menuForm(&action, opts).RunWithContext(ctx)
	return action, err
}

func (FormPrompter) Email(ctx context.Context) (string, error) {
	var email string
	err := createWalletForm(&email).RunWithContext(ctx)
	return email, err
}

func (FormPrompter) Wallet(ctx context.Context, list view.WalletList) (string, error) {
	var walletID string
	err := chooseWalletForm(list, &walletID).RunWithContext(ctx)
	return walletID, err
}

func (FormPrompter) Asset(ctx context.Context) (controller.AssetInput, error) {
	var in controller.AssetInput
	err := addAssetForm(&in).RunWithContext(ctx)
	return in, err
}

type App struct {
	c      *controller.Controller
	prompt Prompter
	out    io.Writer

	logger logger.Logger
}

func NewApp(c *controller.Controller, prompt Prompter, out io.Writer, logger logger.Logger) *App {
	return &App{
		c:      c,
		prompt: prompt,
		out:    out,
		logger: logger,
	}
}

// Run shows the menu until the user quits, aborts a form or ctx is done.
// Failed operations are printed and the loop goes on.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		opts := menuOptions(a.c.UI(), a.c.Session().WalletID() != "", a.c.SimulationEnabled())
		action, err := a.prompt.Action(ctx, opts)
		if err != nil {
			return quietAbort(err)
		}
		if action == ActionQuit {
			return nil
		}

		if err := a.perform(ctx, action); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			if controller.Skipped(err) {
				a.logger.Debugf("%s: %s skipped", err, action)
				continue
			}
			a.logger.Errorf("%s: can't %s", err, action)
			a.println(RenderError(err))
		}
	}
}

func (a *App) perform(ctx context.Context, action Action) error {
	switch action {
	case ActionList:
		list, err := a.c.ListWallets(ctx)
		if err != nil {
			return err
		}
		a.println(RenderWalletList(list))

	case ActionCreate:
		a.c.ShowCreateForm()
		email, err := a.prompt.Email(ctx)
		if err != nil {
			a.c.HideCreateForm()
			return err
		}
		w, err := a.c.CreateWallet(ctx, email)
		if err != nil {
			return err
		}
		a.println(RenderWallet(w))

	case ActionLoad:
		list, err := a.c.ListWallets(ctx)
		if err != nil {
			return err
		}
		if list.Count == 0 {
			a.println(RenderWalletList(list))
			return nil
		}
		walletID, err := a.prompt.Wallet(ctx, list)
		if err != nil {
			return err
		}
		w, err := a.c.LoadWallet(ctx, walletID)
		if err != nil {
			return err
		}
		a.println(RenderWallet(w))

	case ActionAdd:
		a.c.ShowAddAssetForm()
		in, err := a.prompt.Asset(ctx)
		if err != nil {
			a.c.HideAddAssetForm()
			return err
		}
		w, err := a.c.AddAsset(ctx, in)
		if err != nil {
			return err
		}
		a.println(RenderWallet(w))

	case ActionSimulate:
		sim, err := a.c.RunSimulation(ctx)
		if err != nil {
			return err
		}
		a.println(RenderSimulation(sim))

	default:
		return fmt.Errorf("unknown action %q", action)
	}

	return nil
}

func (a *App) println(s string) {
	_, _ = fmt.Fprintln(a.out, s)
}

func quietAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
