package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// 请求分发
// ============================================================================

// fetcher 后台请求的公共部分：序号、超时、在途请求和指标
type fetcher struct {
	ctx     context.Context
	cancel  context.CancelFunc
	tracker *RequestTracker
	group   errgroup.Group
	timeout time.Duration
	metrics *Metrics
}

func newFetcher(tracker *RequestTracker, timeout time.Duration, metrics *Metrics) *fetcher {
	if timeout <= 0 {
		timeout = requestTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &fetcher{
		ctx:     ctx,
		cancel:  cancel,
		tracker: tracker,
		timeout: timeout,
		metrics: metrics,
	}
}

// dispatch 发起一次后台请求
// 发号在调用方 goroutine 中同步完成，之后的同类请求会让这次请求过期。
// 响应只在序号仍是最新且 current 返回 true 时交给 render，失败也交给 render 显示占位内容。
func dispatch[T any](f *fetcher, kind FetchKind, current func() bool, fetch func(context.Context) (T, error), render func(T, error)) {
	seq := f.tracker.Issue(kind)
	f.group.Go(func() error {
		start := time.Now()
		ctx, cancel := context.WithTimeout(f.ctx, f.timeout)
		defer cancel()

		result, err := fetch(ctx)
		elapsed := time.Since(start)

		if f.ctx.Err() != nil {
			logDebug("log.fetch.dropped", kind, seq)
			f.metrics.observeFetch(kind, outcomeDropped, elapsed)
			return nil
		}

		rendered := f.tracker.Deliver(kind, seq, current, func() { render(result, err) })
		switch {
		case !rendered:
			logDebug("log.fetch.stale", kind, seq, f.tracker.Latest(kind))
			f.metrics.observeFetch(kind, outcomeStale, elapsed)
		case err != nil:
			logWarn("log.fetch.failed", kind, err)
			f.metrics.observeFetch(kind, outcomeFailed, elapsed)
		default:
			logDebug("log.fetch.rendered", kind, seq, elapsed.Milliseconds())
			f.metrics.observeFetch(kind, outcomeRendered, elapsed)
		}
		return nil
	})
}

// wait 等待所有在途请求结束
func (f *fetcher) wait() {
	f.group.Wait()
}

// close 取消在途请求并等待它们退出
func (f *fetcher) close() {
	f.cancel()
	f.group.Wait()
}

// ============================================================================
// 刷新编排
// ============================================================================

// Orchestrator 负责当前股票的所有数据刷新和价格轮询
type Orchestrator struct {
	*fetcher

	backend   Backend
	selection *SelectionState
	sinks     Sinks
	watchlist *WatchlistManager
	interval  time.Duration

	pollMu sync.Mutex
	poller *cron.Cron
}

// NewOrchestrator 创建刷新编排器
func NewOrchestrator(backend Backend, selection *SelectionState, sinks Sinks, watchlist *WatchlistManager, interval, timeout time.Duration, metrics *Metrics) *Orchestrator {
	if interval <= 0 {
		interval = refreshInterval
	}
	return &Orchestrator{
		fetcher:   newFetcher(NewRequestTracker(), timeout, metrics),
		backend:   backend,
		selection: selection,
		sinks:     sinks,
		watchlist: watchlist,
		interval:  interval,
	}
}

// matchesSymbol 响应所属的股票仍是当前股票
func (o *Orchestrator) matchesSymbol(sel Selection) func() bool {
	return func() bool {
		return o.selection.Symbol() == sel.Symbol
	}
}

// matchesSelection 股票和范围都未改变
func (o *Orchestrator) matchesSelection(sel Selection) func() bool {
	return func() bool {
		return o.selection.Snapshot() == sel
	}
}

// RefreshAll 刷新当前选择的全部区域，自选列表同步重绘
func (o *Orchestrator) RefreshAll(sel Selection) {
	logDebug("log.refresh.all", sel.Symbol, sel.Range)
	o.RefreshInfo(sel)
	o.RefreshPrice(sel)
	o.RefreshHistory(sel)
	o.RefreshNews(sel)
	if o.watchlist != nil {
		o.watchlist.Render()
	}
}

// RefreshInfo 刷新公司信息
func (o *Orchestrator) RefreshInfo(sel Selection) {
	dispatch(o.fetcher, FetchInfo, o.matchesSymbol(sel),
		func(ctx context.Context) (*CompanyInfo, error) {
			return o.backend.Info(ctx, sel.Symbol)
		},
		func(info *CompanyInfo, err error) {
			if err != nil {
				info = nil
			}
			o.sinks.Info.RenderInfo(infoView(info))
		})
}

// RefreshPrice 刷新最新价格，失败时显示占位符
func (o *Orchestrator) RefreshPrice(sel Selection) {
	o.refreshPrice(func() string { return sel.Symbol }, false)
}

// refreshPrice 在序号发出之后才通过 symbol 取股票代码
// keepOnError 为 true 时失败不覆盖上一次的价格
func (o *Orchestrator) refreshPrice(symbol func() string, keepOnError bool) {
	var requested string
	dispatch(o.fetcher, FetchPrice,
		func() bool { return o.selection.Symbol() == requested },
		func(ctx context.Context) (*PriceQuote, error) {
			requested = symbol()
			return o.backend.Price(ctx, requested)
		},
		func(quote *PriceQuote, err error) {
			if err != nil {
				if keepOnError {
					return
				}
				quote = nil
			}
			o.sinks.Price.RenderPrice(priceView(quote))
		})
}

// RefreshHistory 按当前范围刷新图表
func (o *Orchestrator) RefreshHistory(sel Selection) {
	dispatch(o.fetcher, FetchHistory, o.matchesSelection(sel),
		func(ctx context.Context) (*PriceHistory, error) {
			return o.backend.History(ctx, sel.Symbol, sel.Range)
		},
		func(history *PriceHistory, err error) {
			if err != nil {
				history = nil
			}
			o.sinks.Chart.RenderChart(chartView(sel, history))
		})
}

// RefreshNews 刷新新闻列表
func (o *Orchestrator) RefreshNews(sel Selection) {
	dispatch(o.fetcher, FetchNews, o.matchesSymbol(sel),
		func(ctx context.Context) ([]NewsItem, error) {
			return o.backend.News(ctx, sel.Symbol)
		},
		func(items []NewsItem, err error) {
			if err != nil {
				items = nil
			}
			o.sinks.News.RenderNews(newsViews(items))
		})
}

// ShowMovers 加载涨幅榜或跌幅榜
func (o *Orchestrator) ShowMovers(kind MoverType) {
	dispatch(o.fetcher, FetchMovers, nil,
		func(ctx context.Context) ([]Mover, error) {
			return o.backend.Movers(ctx, kind)
		},
		func(movers []Mover, err error) {
			if err != nil {
				movers = nil
			}
			o.sinks.Movers.RenderMovers(kind, moverViews(movers))
		})
}

// ============================================================================
// 价格轮询
// ============================================================================

// StartPolling 启动固定间隔的价格轮询，重复调用无效
// 轮询不因切换股票而重置，每次触发时读取当时的股票
func (o *Orchestrator) StartPolling() error {
	o.pollMu.Lock()
	defer o.pollMu.Unlock()

	if o.poller != nil {
		return nil
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %s", o.interval)
	if _, err := c.AddFunc(spec, o.pollPrice); err != nil {
		return fmt.Errorf("schedule price poller: %w", err)
	}
	c.Start()
	o.poller = c

	logInfo("log.poller.start", o.interval)
	return nil
}

// StopPolling 停止轮询并等待正在执行的任务返回
func (o *Orchestrator) StopPolling() {
	o.pollMu.Lock()
	c := o.poller
	o.poller = nil
	o.pollMu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	logInfo("log.poller.stop")
}

func (o *Orchestrator) pollPrice() {
	if o.ctx.Err() != nil {
		return
	}
	o.metrics.poll()
	// 切换股票时先写选择再发序号，轮询在发序号之后读取股票即不会落后于选择
	o.refreshPrice(o.selection.Symbol, true)
}

// Wait 等待所有在途请求
func (o *Orchestrator) Wait() {
	o.wait()
}

// Close 停止轮询，取消并等待在途请求
func (o *Orchestrator) Close() {
	o.StopPolling()
	o.close()
}
