package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/STTM-NSU/wallet-client/internal/config"
	"github.com/STTM-NSU/wallet-client/internal/logger"
	"github.com/STTM-NSU/wallet-client/internal/model"
	"github.com/STTM-NSU/wallet-client/internal/session"
	"github.com/STTM-NSU/wallet-client/internal/view"
	"github.com/shopspring/decimal"
)

// Returned instead of sending a request when the session can't support the
// operation. UIs are expected to ignore them; see Skipped.
var (
	ErrNoWallet = errors.New("no current wallet")
	ErrNoAssets = errors.New("current wallet has no assets")
)

func Skipped(err error) bool {
	return errors.Is(err, ErrNoWallet) || errors.Is(err, ErrNoAssets)
}

type WalletAPI interface {
	ListWallets(ctx context.Context) ([]model.Wallet, error)
	CreateWallet(ctx context.Context, email string) (model.CreateWalletResponse, error)
	GetWallet(ctx context.Context, walletID string) (model.Wallet, error)
	AddAsset(ctx context.Context, walletID string, asset model.AddAssetRequest) (model.Wallet, error)
	SimulateProfit(ctx context.Context, sim model.SimulationRequest) (model.SimulationResult, error)
}

// AssetInput is the add-asset form as typed. Price may be left empty.
type AssetInput struct {
	Symbol   string
	Quantity string
	Price    string
}

// Controller runs the wallet operations for one session. Operations may be
// called concurrently; nothing orders them, so whichever response lands last
// decides the session's current wallet.
type Controller struct {
	api        WalletAPI
	session    *session.Session
	store      session.Store
	dateLayout string

	logger logger.Logger

	mu sync.Mutex
	ui UIState
}

func NewController(
	api WalletAPI,
	sess *session.Session,
	store session.Store,
	viewCfg config.ViewConfig,
	logger logger.Logger) *Controller {
	if store == nil {
		store = session.NewMemoryStore()
	}
	viewCfg.Setup()

	return &Controller{
		api:        api,
		session:    sess,
		store:      store,
		dateLayout: viewCfg.DateLayout,
		logger:     logger.With("session", sess.Name()),
	}
}

func (c *Controller) Session() *session.Session {
	return c.session
}

// Resume reloads the wallet the session had selected in a previous run.
// It returns ErrNoWallet when there is nothing to resume.
func (c *Controller) Resume(ctx context.Context) (view.Wallet, error) {
	walletID, err := c.store.Load(ctx, c.session.Name())
	if err != nil {
		return view.Wallet{}, fmt.Errorf("%w: can't load session", err)
	}
	if walletID == "" {
		return view.Wallet{}, ErrNoWallet
	}

	c.session.SetWalletID(walletID)
	return c.LoadWallet(ctx, walletID)
}

func (c *Controller) ListWallets(ctx context.Context) (view.WalletList, error) {
	wallets, err := c.api.ListWallets(ctx)
	if err != nil {
		return view.WalletList{}, err
	}

	c.logger.Debugf("listed %d wallets", len(wallets))
	return view.NewWalletList(wallets), nil
}

// CreateWallet creates a wallet for email and makes it current. The create
// form is hidden only on success.
func (c *Controller) CreateWallet(ctx context.Context, email string) (view.Wallet, error) {
	c.update(func(ui *UIState) { ui.CreateBusy = true })
	defer c.update(func(ui *UIState) { ui.CreateBusy = false })

	created, err := c.api.CreateWallet(ctx, email)
	if err != nil {
		return view.Wallet{}, err
	}
	c.logger.Infof("created wallet %s", created.WalletID)

	c.session.SetWalletID(created.WalletID)

	w, err := c.LoadWallet(ctx, created.WalletID)
	if err != nil {
		return view.Wallet{}, err
	}

	c.HideCreateForm()
	return w, nil
}

func (c *Controller) LoadWallet(ctx context.Context, walletID string) (view.Wallet, error) {
	w, err := c.api.GetWallet(ctx, walletID)
	if err != nil {
		return view.Wallet{}, err
	}

	c.session.SetWallet(walletID, w)
	c.persist(ctx, walletID)
	c.update(func(ui *UIState) { ui.WalletPanelVisible = true })

	c.logger.Debugf("loaded wallet %s with %d assets", walletID, len(w.Assets))
	return view.NewWallet(w, c.dateLayout), nil
}

// AddAsset sends the form to the current wallet. The symbol goes out
// uppercased. The returned snapshot becomes the current wallet.
func (c *Controller) AddAsset(ctx context.Context, in AssetInput) (view.Wallet, error) {
	walletID := c.session.WalletID()
	if walletID == "" {
		return view.Wallet{}, ErrNoWallet
	}

	req, err := in.request()
	if err != nil {
		return view.Wallet{}, err
	}

	c.update(func(ui *UIState) { ui.AddAssetBusy = true })
	defer c.update(func(ui *UIState) { ui.AddAssetBusy = false })

	w, err := c.api.AddAsset(ctx, walletID, req)
	if err != nil {
		return view.Wallet{}, err
	}

	c.session.SetWallet(walletID, w)
	c.update(func(ui *UIState) {
		ui.WalletPanelVisible = true
		ui.AddAssetModalVisible = false
	})

	c.logger.Infof("added %s %s to wallet %s", in.Quantity, req.Symbol, walletID)
	return view.NewWallet(w, c.dateLayout), nil
}

func (in AssetInput) request() (model.AddAssetRequest, error) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(in.Quantity))
	if err != nil {
		return model.AddAssetRequest{}, fmt.Errorf("%w: can't parse quantity %q", err, in.Quantity)
	}

	req := model.AddAssetRequest{
		Symbol:   strings.ToUpper(in.Symbol),
		Quantity: quantity.InexactFloat64(),
	}

	if p := strings.TrimSpace(in.Price); p != "" {
		price, err := decimal.NewFromString(p)
		if err != nil {
			return model.AddAssetRequest{}, fmt.Errorf("%w: can't parse price %q", err, in.Price)
		}
		f := price.InexactFloat64()
		req.Price = &f
	}

	return req, nil
}

// RunSimulation simulates the cached snapshot of the current wallet, not a
// fresh one.
func (c *Controller) RunSimulation(ctx context.Context) (view.Simulation, error) {
	w, ok := c.session.Wallet()
	if !ok {
		return view.Simulation{}, ErrNoWallet
	}
	if !w.HasAssets() {
		return view.Simulation{}, ErrNoAssets
	}

	c.update(func(ui *UIState) { ui.SimulationBusy = true })
	defer c.update(func(ui *UIState) { ui.SimulationBusy = false })

	result, err := c.api.SimulateProfit(ctx, model.NewSimulationRequest(w))
	if err != nil {
		return view.Simulation{}, err
	}

	c.update(func(ui *UIState) { ui.SimulationPanelVisible = true })
	c.logger.Infof("simulated wallet %s: total %s", w.ID, result.Total)
	return view.NewSimulation(result), nil
}

func (c *Controller) persist(ctx context.Context, walletID string) {
	if err := c.store.Save(ctx, c.session.Name(), walletID); err != nil {
		c.logger.Warnf("%s: can't save session", err)
	}
}
