package main

import "time"

// 文件路径与时间常量
const (
	configFile       = "conf/config.yml"
	envFile          = ".env"
	defaultStoreFile = "data/storage.json"
	defaultSQLiteDB  = "data/storage.db"
	defaultLogDir    = "logs"
	refreshInterval  = 5 * time.Second
	debounceInterval = 200 * time.Millisecond
	requestTimeout   = 10 * time.Second
	defaultSymbol    = "AAPL"
	defaultAPIURL    = "http://127.0.0.1:5000"
)

// 本地存储键（与浏览器版 localStorage 键名一致）
const (
	themeKey     = "theme"
	watchlistKey = "watchlist"
)

// 存储后端
const (
	storageFile   = "file"
	storageSQLite = "sqlite"
	storageRedis  = "redis"
)

// 语言常量
type Language string

const (
	Chinese Language = "zh"
	English Language = "en"
)

// Range 图表时间范围
type Range string

const (
	Range1D  Range = "1d"
	Range5D  Range = "5d"
	Range1M  Range = "1mo"
	Range3M  Range = "3mo"
	Range6M  Range = "6mo"
	Range1Y  Range = "1y"
	Range5Y  Range = "5y"
	RangeMax Range = "max"

	defaultRange = Range1M
)

// chartRanges 过滤按钮的显示顺序
var chartRanges = []Range{Range1D, Range5D, Range1M, Range3M, Range6M, Range1Y, Range5Y, RangeMax}

// Valid 判断是否为已知的时间范围
func (r Range) Valid() bool {
	for _, known := range chartRanges {
		if r == known {
			return true
		}
	}
	return false
}

// Theme 主题偏好
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Trend 涨跌分类（决定显示颜色）
type Trend int

const (
	TrendNeutral Trend = iota
	TrendUp
	TrendDown
)

// MoverType 涨幅榜 / 跌幅榜
type MoverType string

const (
	Gainers MoverType = "gainers"
	Losers  MoverType = "losers"
)

// FetchKind 请求类型，每种类型独立做过期响应抑制
type FetchKind int

const (
	FetchInfo FetchKind = iota
	FetchPrice
	FetchHistory
	FetchNews
	FetchMovers
	FetchCurrencies
	FetchConvert

	fetchKindCount
)

func (k FetchKind) String() string {
	switch k {
	case FetchInfo:
		return "info"
	case FetchPrice:
		return "price"
	case FetchHistory:
		return "history"
	case FetchNews:
		return "news"
	case FetchMovers:
		return "movers"
	case FetchCurrencies:
		return "currencies"
	case FetchConvert:
		return "convert"
	}
	return "unknown"
}

// Focus 键盘焦点所在区域
type Focus int

const (
	FocusSearch Focus = iota
	FocusWatchlist
	FocusMovers
	FocusConverter

	focusCount
)

// ClickTarget 鼠标点击落点（用于自动补全的点击外部关闭）
type ClickTarget int

const (
	ClickElsewhere ClickTarget = iota
	ClickSearchInput
	ClickSuggestions
)
