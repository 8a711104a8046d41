package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 内存存储
// ============================================================================

type memoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	sets    int
	failSet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *memoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("disk full")
	}
	s.sets++
	s.values[key] = value
	return nil
}

func (s *memoryStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// ============================================================================
// 假后端
// ============================================================================

// fakeBackend 每个接口可以单独替换，默认返回空数据
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string][]string

	search     func(ctx context.Context, q string) ([]SearchResult, error)
	info       func(ctx context.Context, symbol string) (*CompanyInfo, error)
	price      func(ctx context.Context, symbol string) (*PriceQuote, error)
	history    func(ctx context.Context, symbol string, rng Range) (*PriceHistory, error)
	news       func(ctx context.Context, symbol string) ([]NewsItem, error)
	movers     func(ctx context.Context, kind MoverType) ([]Mover, error)
	currencies func(ctx context.Context) ([]string, error)
	convert    func(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string][]string{}}
}

func (b *fakeBackend) record(method, arg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[method] = append(b.calls[method], arg)
}

func (b *fakeBackend) callsTo(method string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls[method]...)
}

func (b *fakeBackend) Search(ctx context.Context, q string) ([]SearchResult, error) {
	b.record("search", q)
	if b.search != nil {
		return b.search(ctx, q)
	}
	return nil, nil
}

func (b *fakeBackend) Info(ctx context.Context, symbol string) (*CompanyInfo, error) {
	b.record("info", symbol)
	if b.info != nil {
		return b.info(ctx, symbol)
	}
	return &CompanyInfo{Symbol: symbol}, nil
}

func (b *fakeBackend) Price(ctx context.Context, symbol string) (*PriceQuote, error) {
	b.record("price", symbol)
	if b.price != nil {
		return b.price(ctx, symbol)
	}
	return &PriceQuote{Price: floatPtr(1)}, nil
}

func (b *fakeBackend) History(ctx context.Context, symbol string, rng Range) (*PriceHistory, error) {
	b.record("history", symbol+"/"+string(rng))
	if b.history != nil {
		return b.history(ctx, symbol, rng)
	}
	return &PriceHistory{Dates: []string{"2024-01-02"}, Prices: []float64{1}}, nil
}

func (b *fakeBackend) News(ctx context.Context, symbol string) ([]NewsItem, error) {
	b.record("news", symbol)
	if b.news != nil {
		return b.news(ctx, symbol)
	}
	return nil, nil
}

func (b *fakeBackend) Movers(ctx context.Context, kind MoverType) ([]Mover, error) {
	b.record("movers", string(kind))
	if b.movers != nil {
		return b.movers(ctx, kind)
	}
	return nil, nil
}

func (b *fakeBackend) Currencies(ctx context.Context) ([]string, error) {
	b.record("currencies", "")
	if b.currencies != nil {
		return b.currencies(ctx)
	}
	return []string{"USD", "INR"}, nil
}

func (b *fakeBackend) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error) {
	b.record("convert", amount.String()+" "+from+" "+to)
	if b.convert != nil {
		return b.convert(ctx, amount, from, to)
	}
	return &ConversionResult{}, nil
}

// ============================================================================
// 记录型渲染目标
// ============================================================================

// sinkState 渲染目标收到的最新内容
type sinkState struct {
	query       string
	suggestions []Suggestion
	visible     bool
	hides       int

	info      InfoView
	infoCount int

	price      PriceView
	priceCount int

	chart      ChartView
	chartCount int

	news      []NewsView
	newsCount int

	moversKind MoverType
	movers     []MoverView

	watchlist      []string
	watchCurrent   string
	watchlistCount int

	codes        []string
	from, to     string
	conversion   string
	conversionOK bool

	theme Theme
}

type recordingSinks struct {
	mu    sync.Mutex
	state sinkState
}

func (r *recordingSinks) sinks() Sinks {
	return Sinks{
		Search:    r,
		Info:      r,
		Price:     r,
		Chart:     r,
		News:      r,
		Movers:    r,
		Watchlist: r,
		Currency:  r,
		Theme:     r,
	}
}

func (r *recordingSinks) record(fn func(st *sinkState)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.state)
}

// snapshot 在锁内读取，避免与后台渲染竞争
func (r *recordingSinks) snapshot() sinkState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *recordingSinks) SetQuery(text string) {
	r.record(func(st *sinkState) { st.query = text })
}

func (r *recordingSinks) ShowSuggestions(items []Suggestion) {
	r.record(func(st *sinkState) {
		st.suggestions = items
		st.visible = len(items) > 0
	})
}

func (r *recordingSinks) HideSuggestions() {
	r.record(func(st *sinkState) {
		st.suggestions = nil
		st.visible = false
		st.hides++
	})
}

func (r *recordingSinks) RenderInfo(view InfoView) {
	r.record(func(st *sinkState) {
		st.info = view
		st.infoCount++
	})
}

func (r *recordingSinks) RenderPrice(view PriceView) {
	r.record(func(st *sinkState) {
		st.price = view
		st.priceCount++
	})
}

func (r *recordingSinks) RenderChart(view ChartView) {
	r.record(func(st *sinkState) {
		st.chart = view
		st.chartCount++
	})
}

func (r *recordingSinks) RenderNews(items []NewsView) {
	r.record(func(st *sinkState) {
		st.news = items
		st.newsCount++
	})
}

func (r *recordingSinks) RenderMovers(kind MoverType, items []MoverView) {
	r.record(func(st *sinkState) {
		st.moversKind = kind
		st.movers = items
	})
}

func (r *recordingSinks) RenderWatchlist(symbols []string, current string) {
	r.record(func(st *sinkState) {
		st.watchlist = symbols
		st.watchCurrent = current
		st.watchlistCount++
	})
}

func (r *recordingSinks) RenderCurrencies(codes []string, from, to string) {
	r.record(func(st *sinkState) {
		st.codes = codes
		st.from = from
		st.to = to
	})
}

func (r *recordingSinks) RenderConversion(text string, ok bool) {
	r.record(func(st *sinkState) {
		st.conversion = text
		st.conversionOK = ok
	})
}

func (r *recordingSinks) ApplyTheme(theme Theme) {
	r.record(func(st *sinkState) { st.theme = theme })
}

// ============================================================================
// 辅助函数
// ============================================================================

func floatPtr(v float64) *float64 {
	return &v
}

// waitFor 轮询直到 cond 成立或超时
func waitFor(t *testing.T, desc string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", desc)
}
