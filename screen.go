package main

import "sync"

// ScreenState 终端界面各区域的当前内容
type ScreenState struct {
	Query       string
	QuerySeq    uint64 // 每次 SetQuery 递增，UI 据此覆盖本地输入
	Suggestions []Suggestion
	ShowSuggest bool

	Info  InfoView
	Price PriceView

	Chart    ChartView
	ChartSeq uint64

	News    []NewsView
	NewsSeq uint64

	MoversKind MoverType
	Movers     []MoverView

	Watchlist []string
	Current   string

	Currencies   []string
	From         string
	To           string
	Conversion   string
	ConversionOK bool

	Theme Theme
}

// Screen 实现全部渲染接口
//
// 渲染只修改状态并发出非阻塞通知，由 bubbletea 循环中的 waitForScreenUpdate
// 读取，不在 sink 中调用 Program.Send。
type Screen struct {
	mu      sync.Mutex
	state   ScreenState
	updates chan struct{}
}

func NewScreen() *Screen {
	return &Screen{
		state:   ScreenState{Price: PriceView{Price: "-"}, MoversKind: Gainers, Theme: ThemeLight},
		updates: make(chan struct{}, 1),
	}
}

// Sinks 以 Screen 作为所有区域的渲染目标
func (s *Screen) Sinks() Sinks {
	return Sinks{
		Search:    s,
		Info:      s,
		Price:     s,
		Chart:     s,
		News:      s,
		Movers:    s,
		Watchlist: s,
		Currency:  s,
		Theme:     s,
	}
}

// Snapshot 返回状态副本
func (s *Screen) Snapshot() ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Updates 状态变化通知，多次变化可能合并为一次
func (s *Screen) Updates() <-chan struct{} {
	return s.updates
}

func (s *Screen) update(fn func(*ScreenState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()

	select {
	case s.updates <- struct{}{}:
	default:
		// 已有未处理的通知
	}
}

// ============================================================================
// 渲染接口实现
// ============================================================================

func (s *Screen) SetQuery(text string) {
	s.update(func(st *ScreenState) {
		st.Query = text
		st.QuerySeq++
	})
}

func (s *Screen) ShowSuggestions(items []Suggestion) {
	s.update(func(st *ScreenState) {
		st.Suggestions = items
		st.ShowSuggest = len(items) > 0
	})
}

func (s *Screen) HideSuggestions() {
	s.update(func(st *ScreenState) {
		st.Suggestions = nil
		st.ShowSuggest = false
	})
}

func (s *Screen) RenderInfo(view InfoView) {
	s.update(func(st *ScreenState) { st.Info = view })
}

func (s *Screen) RenderPrice(view PriceView) {
	s.update(func(st *ScreenState) { st.Price = view })
}

func (s *Screen) RenderChart(view ChartView) {
	s.update(func(st *ScreenState) {
		st.Chart = view
		st.ChartSeq++
	})
}

func (s *Screen) RenderNews(items []NewsView) {
	s.update(func(st *ScreenState) {
		st.News = items
		st.NewsSeq++
	})
}

func (s *Screen) RenderMovers(kind MoverType, items []MoverView) {
	s.update(func(st *ScreenState) {
		st.MoversKind = kind
		st.Movers = items
	})
}

func (s *Screen) RenderWatchlist(symbols []string, current string) {
	s.update(func(st *ScreenState) {
		st.Watchlist = symbols
		st.Current = current
	})
}

func (s *Screen) RenderCurrencies(codes []string, from, to string) {
	s.update(func(st *ScreenState) {
		st.Currencies = codes
		st.From = from
		st.To = to
	})
}

func (s *Screen) RenderConversion(text string, ok bool) {
	s.update(func(st *ScreenState) {
		st.Conversion = text
		st.ConversionOK = ok
	})
}

func (s *Screen) ApplyTheme(theme Theme) {
	s.update(func(st *ScreenState) { st.Theme = theme })
}
