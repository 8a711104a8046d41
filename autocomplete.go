package main

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ============================================================================
// 搜索自动补全
// ============================================================================

// Autocomplete 输入防抖、搜索与建议列表
//
// 每次输入都会停止上一个计时器并取消上一次在途搜索，generation 用来
// 识别已经被取代的搜索结果。所有对 sink 的调用都在 mu 下完成。
type Autocomplete struct {
	mu       sync.Mutex
	backend  Backend
	sink     SearchSink
	delay    time.Duration
	timeout  time.Duration
	metrics  *Metrics
	onSelect func(symbol string)

	query   string
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	items   []Suggestion
	visible bool
	closed  bool
	wg      sync.WaitGroup
}

// NewAutocomplete 创建自动补全，onSelect 在选中建议时调用
func NewAutocomplete(backend Backend, sink SearchSink, delay, timeout time.Duration, metrics *Metrics, onSelect func(string)) *Autocomplete {
	if delay <= 0 {
		delay = debounceInterval
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Autocomplete{
		backend:  backend,
		sink:     sink,
		delay:    delay,
		timeout:  timeout,
		metrics:  metrics,
		onSelect: onSelect,
	}
}

// Input 处理输入框内容变化
// 空白输入立即隐藏列表且不发请求，否则在防抖间隔后搜索
func (a *Autocomplete) Input(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	query := strings.TrimSpace(text)
	a.query = query
	a.gen++
	a.stopPendingLocked()

	if query == "" {
		a.hideLocked()
		return
	}

	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() { a.lookup(gen, query) })
}

// lookup 防抖计时器到期后执行搜索
func (a *Autocomplete) lookup(gen uint64, query string) {
	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	a.timer = nil
	a.cancel = cancel
	a.wg.Add(1)
	a.mu.Unlock()

	defer a.wg.Done()
	defer cancel()

	a.metrics.lookup()
	logDebug("log.search.lookup", query)

	results, err := a.backend.Search(ctx, query)
	if err != nil {
		logWarn("log.search.failed", query, err)
		results = nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || gen != a.gen || a.query == "" {
		logDebug("log.search.superseded", query)
		return
	}
	a.cancel = nil

	items := suggestionsFromResults(results)
	if len(items) == 0 {
		a.hideLocked()
		return
	}
	a.items = items
	a.visible = true
	a.sink.ShowSuggestions(items)
}

// Choose 选中第 i 条建议
func (a *Autocomplete) Choose(i int) bool {
	a.mu.Lock()
	if !a.visible || i < 0 || i >= len(a.items) {
		a.mu.Unlock()
		return false
	}
	symbol := a.items[i].Symbol
	a.mu.Unlock()

	logDebug("log.search.choose", symbol)
	if a.onSelect != nil {
		a.onSelect(symbol)
	}
	return true
}

// Reset 选中股票后把输入框设为该股票并收起列表
// 尚未返回的搜索不会再打开列表
func (a *Autocomplete) Reset(symbol string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.gen++
	a.stopPendingLocked()
	a.query = symbol
	a.sink.SetQuery(symbol)
	a.hideLocked()
}

// Click 点击输入框和列表以外的位置时收起列表
func (a *Autocomplete) Click(target ClickTarget) {
	if target != ClickElsewhere {
		return
	}
	a.Dismiss()
}

// Dismiss 收起列表，不影响待执行的搜索
func (a *Autocomplete) Dismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.visible {
		a.hideLocked()
	}
}

// Visible 建议列表是否可见
func (a *Autocomplete) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// Suggestions 当前显示的建议
func (a *Autocomplete) Suggestions() []Suggestion {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.visible {
		return nil
	}
	return append([]Suggestion(nil), a.items...)
}

// Close 停止计时器、取消在途搜索并等待其返回
func (a *Autocomplete) Close() {
	a.mu.Lock()
	a.closed = true
	a.gen++
	a.stopPendingLocked()
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Autocomplete) stopPendingLocked() {
	if a.timer != nil {
		if a.timer.Stop() {
			a.metrics.debounceCancel()
		}
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Autocomplete) hideLocked() {
	a.items = nil
	a.visible = false
	a.sink.HideSuggestions()
}
