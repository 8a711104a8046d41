package main

import (
	"sync"
	"time"
)

// DashboardOptions 仪表盘运行参数
type DashboardOptions struct {
	Symbol          string
	Range           Range
	FromCurrency    string
	ToCurrency      string
	RefreshInterval time.Duration
	Debounce        time.Duration
	Timeout         time.Duration
	Metrics         *Metrics
}

// optionsFromConfig 把配置文件转换为运行参数
func optionsFromConfig(config Config, metrics *Metrics) DashboardOptions {
	return DashboardOptions{
		Symbol:          config.Display.DefaultSymbol,
		Range:           Range(config.Display.DefaultRange),
		FromCurrency:    config.Display.FromCurrency,
		ToCurrency:      config.Display.ToCurrency,
		RefreshInterval: time.Duration(config.Update.RefreshInterval) * time.Second,
		Debounce:        time.Duration(config.Update.DebounceMillis) * time.Millisecond,
		Timeout:         time.Duration(config.API.TimeoutSeconds) * time.Second,
		Metrics:         metrics,
	}
}

// Dashboard 组合所有模块，是 UI 操作的唯一入口
type Dashboard struct {
	selection    *SelectionState
	sinks        Sinks
	orchestrator *Orchestrator
	autocomplete *Autocomplete
	watchlist    *WatchlistManager
	converter    *CurrencyConverter
	theme        *ThemeManager

	closeOnce sync.Once
}

// NewDashboard 创建仪表盘，主题在创建时立即应用
func NewDashboard(backend Backend, store KVStore, sinks Sinks, opts DashboardOptions) *Dashboard {
	if opts.FromCurrency == "" {
		opts.FromCurrency = "USD"
	}
	if opts.ToCurrency == "" {
		opts.ToCurrency = "INR"
	}

	d := &Dashboard{
		selection: NewSelectionState(opts.Symbol, opts.Range),
		sinks:     sinks,
	}
	d.watchlist = NewWatchlistManager(store, sinks.Watchlist, d.selection.Symbol)
	d.orchestrator = NewOrchestrator(backend, d.selection, sinks, d.watchlist, opts.RefreshInterval, opts.Timeout, opts.Metrics)
	d.autocomplete = NewAutocomplete(backend, sinks.Search, opts.Debounce, opts.Timeout, opts.Metrics, func(symbol string) {
		if err := d.SelectSymbol(symbol); err != nil {
			logWarn("log.dashboard.selectFail", symbol, err)
		}
	})
	d.converter = NewCurrencyConverter(backend, sinks.Currency, opts.FromCurrency, opts.ToCurrency, opts.Timeout, opts.Metrics)
	d.theme = NewThemeManager(store, sinks.Theme)
	return d
}

// Start 首次加载：当前股票全部区域、涨幅榜、币种列表，然后启动价格轮询
func (d *Dashboard) Start() error {
	sel := d.selection.Snapshot()
	logInfo("log.dashboard.start", sel.Symbol, sel.Range)

	d.sinks.Search.SetQuery(sel.Symbol)
	d.orchestrator.RefreshAll(sel)
	d.orchestrator.ShowMovers(Gainers)
	d.converter.LoadCurrencies()
	return d.orchestrator.StartPolling()
}

// Selection 当前选择的快照
func (d *Dashboard) Selection() Selection {
	return d.selection.Snapshot()
}

// SelectSymbol 切换当前股票：同步更新状态和输入框，异步刷新全部区域
func (d *Dashboard) SelectSymbol(symbol string) error {
	sel, err := d.selection.SetSymbol(symbol)
	if err != nil {
		return err
	}
	logInfo("log.dashboard.select", sel.Symbol)
	d.autocomplete.Reset(sel.Symbol)
	d.orchestrator.RefreshAll(sel)
	return nil
}

// SelectRange 切换图表范围，只刷新历史价格
func (d *Dashboard) SelectRange(rng Range) error {
	sel, err := d.selection.SetRange(rng)
	if err != nil {
		return err
	}
	logDebug("log.dashboard.range", sel.Symbol, sel.Range)
	d.orchestrator.RefreshHistory(sel)
	return nil
}

// ---------------------------------------------------------------------------
// 自动补全
// ---------------------------------------------------------------------------

func (d *Dashboard) Input(text string) {
	d.autocomplete.Input(text)
}

func (d *Dashboard) ChooseSuggestion(i int) bool {
	return d.autocomplete.Choose(i)
}

func (d *Dashboard) Suggestions() []Suggestion {
	return d.autocomplete.Suggestions()
}

func (d *Dashboard) Click(target ClickTarget) {
	d.autocomplete.Click(target)
}

func (d *Dashboard) DismissSuggestions() {
	d.autocomplete.Dismiss()
}

// ---------------------------------------------------------------------------
// 自选股
// ---------------------------------------------------------------------------

// AddCurrentToWatchlist 把当前股票加入自选
func (d *Dashboard) AddCurrentToWatchlist() error {
	return d.watchlist.Add(d.selection.Symbol())
}

func (d *Dashboard) AddToWatchlist(symbol string) error {
	return d.watchlist.Add(symbol)
}

func (d *Dashboard) RemoveFromWatchlist(symbol string) error {
	return d.watchlist.Remove(symbol)
}

func (d *Dashboard) Watchlist() []string {
	return d.watchlist.Symbols()
}

// ---------------------------------------------------------------------------
// 涨跌榜、换算、主题
// ---------------------------------------------------------------------------

func (d *Dashboard) ShowMovers(kind MoverType) {
	d.orchestrator.ShowMovers(kind)
}

func (d *Dashboard) Convert(amount string) {
	d.converter.ConvertSelected(amount)
}

func (d *Dashboard) CycleFromCurrency(step int) {
	d.converter.CycleFrom(step)
}

func (d *Dashboard) CycleToCurrency(step int) {
	d.converter.CycleTo(step)
}

func (d *Dashboard) ToggleTheme() {
	if _, err := d.theme.Toggle(); err != nil {
		logWarn("log.dashboard.themeFail", err)
	}
}

// Wait 等待所有在途请求，测试中用于同步
func (d *Dashboard) Wait() {
	d.orchestrator.Wait()
	d.converter.Wait()
}

// Close 停止轮询和防抖计时器，取消并等待所有在途请求
func (d *Dashboard) Close() {
	d.closeOnce.Do(func() {
		d.orchestrator.Close()
		d.autocomplete.Close()
		d.converter.Close()
		logInfo("log.dashboard.close")
	})
}
