package controller

// UIState mirrors the visibility toggles of the wallet screen. Every flag
// flips on its own.
type UIState struct {
	CreateFormVisible      bool
	AddAssetModalVisible   bool
	WalletPanelVisible     bool
	SimulationPanelVisible bool

	CreateBusy     bool
	AddAssetBusy   bool
	SimulationBusy bool
}

// SimulationEnabled reports whether the simulate action should be offered.
func (c *Controller) SimulationEnabled() bool {
	w, ok := c.session.Wallet()
	return ok && w.HasAssets()
}

func (c *Controller) UI() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ui
}

func (c *Controller) ShowCreateForm() {
	c.update(func(ui *UIState) { ui.CreateFormVisible = true })
}

func (c *Controller) HideCreateForm() {
	c.update(func(ui *UIState) { ui.CreateFormVisible = false })
}

func (c *Controller) ShowAddAssetForm() {
	c.update(func(ui *UIState) { ui.AddAssetModalVisible = true })
}

func (c *Controller) HideAddAssetForm() {
	c.update(func(ui *UIState) { ui.AddAssetModalVisible = false })
}

func (c *Controller) update(fn func(ui *UIState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.ui)
}
