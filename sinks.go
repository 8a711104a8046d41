package main

import (
	"strconv"
	"strings"
)

// ============================================================================
// 渲染接口
// 每个区域一个接口，可以在任意 goroutine 中调用
// ============================================================================

// SearchSink 搜索框与自动补全列表
type SearchSink interface {
	SetQuery(text string)
	ShowSuggestions(items []Suggestion)
	HideSuggestions()
}

type InfoSink interface {
	RenderInfo(view InfoView)
}

type PriceSink interface {
	RenderPrice(view PriceView)
}

// ChartSink 历史价格图表，每次渲染替换上一张图
type ChartSink interface {
	RenderChart(view ChartView)
}

type NewsSink interface {
	RenderNews(items []NewsView)
}

type MoversSink interface {
	RenderMovers(kind MoverType, items []MoverView)
}

type WatchlistSink interface {
	RenderWatchlist(symbols []string, current string)
}

// CurrencySink 换算器的两个币种选择框与结果
type CurrencySink interface {
	RenderCurrencies(codes []string, from, to string)
	RenderConversion(text string, ok bool)
}

type ThemeSink interface {
	ApplyTheme(theme Theme)
}

// Sinks 仪表盘的全部渲染目标
type Sinks struct {
	Search    SearchSink
	Info      InfoSink
	Price     PriceSink
	Chart     ChartSink
	News      NewsSink
	Movers    MoversSink
	Watchlist WatchlistSink
	Currency  CurrencySink
	Theme     ThemeSink
}

// ============================================================================
// 视图数据
// ============================================================================

// Suggestion 自动补全条目，Label 形如 "AAPL - Apple Inc."
type Suggestion struct {
	Symbol string
	Label  string
}

type InfoView struct {
	Name     string
	Sector   string
	Symbol   string
	Currency string
}

// PriceView Price 缺失时为 "-"，Change 在涨跌额缺失或为 0 时为空
type PriceView struct {
	Price  string
	Change string
	Trend  Trend
}

type ChartView struct {
	Symbol string
	Range  Range
	Dates  []string
	Prices []float64
}

// NewsView Meta 形如 "Reuters • 2h ago"
type NewsView struct {
	Title string
	URL   string
	Meta  string
}

type MoverView struct {
	Symbol  string
	Percent string
	Trend   Trend
}

// ============================================================================
// 数据到视图的映射
// ============================================================================

// formatNumber 与后端原值一致的最短十进制表示
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trendOf 按涨跌额符号分类
func trendOf(change *float64) Trend {
	switch {
	case change == nil:
		return TrendNeutral
	case *change > 0:
		return TrendUp
	case *change < 0:
		return TrendDown
	}
	return TrendNeutral
}

func suggestionsFromResults(results []SearchResult) []Suggestion {
	items := make([]Suggestion, 0, len(results))
	for _, r := range results {
		items = append(items, Suggestion{Symbol: r.Symbol, Label: r.Symbol + " - " + r.Name})
	}
	return items
}

func infoView(info *CompanyInfo) InfoView {
	if info == nil {
		return InfoView{}
	}
	return InfoView{
		Name:     info.Name,
		Sector:   info.Sector,
		Symbol:   info.Symbol,
		Currency: info.Currency,
	}
}

func priceView(quote *PriceQuote) PriceView {
	view := PriceView{Price: "-"}
	if quote == nil {
		return view
	}
	if quote.Price != nil {
		view.Price = formatNumber(*quote.Price)
	}
	if quote.Change != nil && *quote.Change != 0 {
		pct := "-"
		if quote.PercentChange != nil {
			pct = formatNumber(*quote.PercentChange)
		}
		view.Change = formatNumber(*quote.Change) + " (" + pct + "%)"
	}
	view.Trend = trendOf(quote.Change)
	return view
}

func chartView(sel Selection, history *PriceHistory) ChartView {
	view := ChartView{Symbol: sel.Symbol, Range: sel.Range}
	if history != nil {
		view.Dates = history.Dates
		view.Prices = history.Prices
	}
	return view
}

func newsViews(items []NewsItem) []NewsView {
	views := make([]NewsView, 0, len(items))
	for _, item := range items {
		views = append(views, NewsView{
			Title: item.Title,
			URL:   item.URL,
			Meta:  newsMeta(item),
		})
	}
	return views
}

// newsMeta 只拼接非空的来源和时间
func newsMeta(item NewsItem) string {
	parts := nonEmpty(strings.TrimSpace(item.Source), strings.TrimSpace(item.Time.String()))
	return strings.Join(parts, " • ")
}

func moverViews(movers []Mover) []MoverView {
	views := make([]MoverView, 0, len(movers))
	for _, mv := range movers {
		pct := "-"
		if mv.PercentChange != nil {
			pct = formatNumber(*mv.PercentChange)
		}
		trend := trendOf(mv.Change)
		if trend == TrendUp {
			pct = "+" + pct
		}
		views = append(views, MoverView{Symbol: mv.Symbol, Percent: pct + "%", Trend: trend})
	}
	return views
}
