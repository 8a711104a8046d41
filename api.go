package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 错误分类
// ============================================================================

var (
	// ErrNetwork 请求被拒绝、网络错误或非 2xx 状态码
	ErrNetwork = errors.New("network failure")
	// ErrMalformed 传输正常但响应结构不符合预期
	ErrMalformed = errors.New("malformed response")
	// ErrEmptyResult 响应有效但没有数据
	ErrEmptyResult = errors.New("empty result")
)

// ============================================================================
// 后端接口
// ============================================================================

// Backend 仪表盘使用的后端数据接口
type Backend interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Info(ctx context.Context, symbol string) (*CompanyInfo, error)
	Price(ctx context.Context, symbol string) (*PriceQuote, error)
	History(ctx context.Context, symbol string, rng Range) (*PriceHistory, error)
	News(ctx context.Context, symbol string) ([]NewsItem, error)
	Movers(ctx context.Context, kind MoverType) ([]Mover, error)
	Currencies(ctx context.Context) ([]string, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error)
}

// HTTPBackend 通过 HTTP JSON 接口访问后端
type HTTPBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend 创建后端客户端
func NewHTTPBackend(baseURL string, timeout time.Duration) *HTTPBackend {
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// getJSON 发起 GET 请求并把 JSON 响应解码到 out
func (b *HTTPBackend) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := b.baseURL + "/api/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	logDebug("log.api.request", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", endpoint, ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w: %v", endpoint, ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %w: status %d", endpoint, ErrNetwork, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		logDebug("log.api.decodeFail", endpoint, string(body[:min(200, len(body))]))
		return fmt.Errorf("%s: %w: %v", endpoint, ErrMalformed, err)
	}
	return nil
}

// Search 按关键字搜索股票
func (b *HTTPBackend) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var results []SearchResult
	if err := b.getJSON(ctx, "search", url.Values{"q": {query}}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Info 获取公司信息
func (b *HTTPBackend) Info(ctx context.Context, symbol string) (*CompanyInfo, error) {
	var info CompanyInfo
	if err := b.getJSON(ctx, "info", url.Values{"symbol": {symbol}}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Price 获取最新价格
func (b *HTTPBackend) Price(ctx context.Context, symbol string) (*PriceQuote, error) {
	var quote PriceQuote
	if err := b.getJSON(ctx, "price", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// History 获取历史收盘价
func (b *HTTPBackend) History(ctx context.Context, symbol string, rng Range) (*PriceHistory, error) {
	var history PriceHistory
	params := url.Values{"symbol": {symbol}, "range": {string(rng)}}
	if err := b.getJSON(ctx, "history", params, &history); err != nil {
		return nil, err
	}
	if len(history.Dates) != len(history.Prices) {
		return nil, fmt.Errorf("history: %w: %d dates for %d prices", ErrMalformed, len(history.Dates), len(history.Prices))
	}
	return &history, nil
}

// News 获取相关新闻
func (b *HTTPBackend) News(ctx context.Context, symbol string) ([]NewsItem, error) {
	var items []NewsItem
	if err := b.getJSON(ctx, "news", url.Values{"symbol": {symbol}}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Movers 获取涨幅榜或跌幅榜
func (b *HTTPBackend) Movers(ctx context.Context, kind MoverType) ([]Mover, error) {
	var movers []Mover
	if err := b.getJSON(ctx, "gainers-losers", url.Values{"type": {string(kind)}}, &movers); err != nil {
		return nil, err
	}
	return movers, nil
}

// Currencies 获取支持的币种列表
func (b *HTTPBackend) Currencies(ctx context.Context) ([]string, error) {
	var codes []string
	if err := b.getJSON(ctx, "convert", url.Values{"currencies": {"1"}}, &codes); err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("currencies: %w", ErrEmptyResult)
	}
	return codes, nil
}

// Convert 换算金额
func (b *HTTPBackend) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error) {
	var result ConversionResult
	params := url.Values{"from": {from}, "to": {to}, "amount": {amount.String()}}
	if err := b.getJSON(ctx, "convert", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================================
// 辅助类型
// ============================================================================

// flexText 兼容字符串、数字和 null 的 JSON 文本字段
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*f = ""
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexText(s)
	default:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return fmt.Errorf("unsupported text value %s", trimmed)
		}
		*f = flexText(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return nil
}

func (f flexText) String() string {
	return string(f)
}
