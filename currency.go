package main

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ============================================================================
// 汇率换算
// ============================================================================

// CurrencyConverter 币种列表与金额换算
type CurrencyConverter struct {
	*fetcher

	backend     Backend
	sink        CurrencySink
	defaultFrom string
	defaultTo   string

	mu    sync.Mutex
	codes []string
	from  string
	to    string
}

// NewCurrencyConverter 创建换算器，defaultFrom / defaultTo 为列表加载后的默认选择
func NewCurrencyConverter(backend Backend, sink CurrencySink, defaultFrom, defaultTo string, timeout time.Duration, metrics *Metrics) *CurrencyConverter {
	return &CurrencyConverter{
		fetcher:     newFetcher(NewRequestTracker(), timeout, metrics),
		backend:     backend,
		sink:        sink,
		defaultFrom: defaultFrom,
		defaultTo:   defaultTo,
	}
}

// LoadCurrencies 获取支持的币种并填充两个选择框
func (c *CurrencyConverter) LoadCurrencies() {
	dispatch(c.fetcher, FetchCurrencies, nil,
		func(ctx context.Context) ([]string, error) {
			return c.backend.Currencies(ctx)
		},
		func(codes []string, err error) {
			if err != nil {
				codes = nil
			}
			c.mu.Lock()
			c.codes = codes
			c.from = pickCurrency(codes, c.defaultFrom)
			c.to = pickCurrency(codes, c.defaultTo)
			from, to := c.from, c.to
			c.mu.Unlock()

			c.sink.RenderCurrencies(codes, from, to)
		})
}

// pickCurrency 列表中有 preferred 时选它，否则选第一个
func pickCurrency(codes []string, preferred string) string {
	for _, code := range codes {
		if code == preferred {
			return code
		}
	}
	if len(codes) > 0 {
		return codes[0]
	}
	return ""
}

// Selected 当前选择的源币种和目标币种
func (c *CurrencyConverter) Selected() (from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.from, c.to
}

// Codes 已加载的币种列表
func (c *CurrencyConverter) Codes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.codes...)
}

// CycleFrom 源币种切换到列表中的下一个（step 为 -1 时上一个）
func (c *CurrencyConverter) CycleFrom(step int) {
	c.cycle(&c.from, step)
}

// CycleTo 目标币种切换到列表中的下一个（step 为 -1 时上一个）
func (c *CurrencyConverter) CycleTo(step int) {
	c.cycle(&c.to, step)
}

func (c *CurrencyConverter) cycle(field *string, step int) {
	c.mu.Lock()
	if len(c.codes) == 0 {
		c.mu.Unlock()
		return
	}
	idx := 0
	for i, code := range c.codes {
		if code == *field {
			idx = i
			break
		}
	}
	n := len(c.codes)
	*field = c.codes[((idx+step)%n+n)%n]
	codes, from, to := append([]string(nil), c.codes...), c.from, c.to
	c.mu.Unlock()

	c.sink.RenderCurrencies(codes, from, to)
}

// Convert 换算金额，结果缺失、为 0 或非有限数时显示失败
// 金额无法解析时不发请求
func (c *CurrencyConverter) Convert(amount, from, to string) {
	amount = strings.TrimSpace(amount)
	value, err := decimal.NewFromString(amount)
	if err != nil || from == "" || to == "" {
		logWarn("log.converter.invalid", amount, from, to)
		seq := c.tracker.Issue(FetchConvert)
		c.tracker.Deliver(FetchConvert, seq, nil, func() {
			c.sink.RenderConversion(getText("converter.failed"), false)
		})
		return
	}

	dispatch(c.fetcher, FetchConvert, nil,
		func(ctx context.Context) (*ConversionResult, error) {
			return c.backend.Convert(ctx, value, from, to)
		},
		func(result *ConversionResult, err error) {
			if err != nil || result == nil || result.Result == nil {
				c.sink.RenderConversion(getText("converter.failed"), false)
				return
			}
			v := *result.Result
			if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				c.sink.RenderConversion(getText("converter.failed"), false)
				return
			}
			c.sink.RenderConversion(fmt.Sprintf("%s %s = %s %s", amount, from, formatAmount(v), to), true)
		})
}

// ConvertSelected 使用当前选择的币种换算
func (c *CurrencyConverter) ConvertSelected(amount string) {
	from, to := c.Selected()
	c.Convert(amount, from, to)
}

// Wait 等待在途请求
func (c *CurrencyConverter) Wait() {
	c.wait()
}

// Close 取消并等待在途请求
func (c *CurrencyConverter) Close() {
	c.close()
}

var amountPrinter = message.NewPrinter(language.English)

// formatAmount 带千分位、最多 4 位小数
func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(4)))
}
