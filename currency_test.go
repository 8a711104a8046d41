package main

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestConverter(b *fakeBackend) (*CurrencyConverter, *recordingSinks) {
	rec := &recordingSinks{}
	return NewCurrencyConverter(b, rec, "USD", "INR", time.Second, nil), rec
}

func TestConvert(t *testing.T) {
	tests := []struct {
		result   *ConversionResult
		err      error
		expected string
		ok       bool
		desc     string
	}{
		{&ConversionResult{Result: floatPtr(9.2)}, nil, "10 USD = 9.2 EUR", true, "正常换算"},
		{&ConversionResult{Result: floatPtr(12345.678912)}, nil, "10 USD = 12,345.6789 EUR", true, "千分位与四位小数"},
		{&ConversionResult{}, nil, "Conversion failed", false, "结果缺失"},
		{nil, nil, "Conversion failed", false, "响应为空"},
		{&ConversionResult{Result: floatPtr(0)}, nil, "Conversion failed", false, "结果为 0"},
		{&ConversionResult{Result: floatPtr(math.Inf(1))}, nil, "Conversion failed", false, "结果为无穷大"},
		{nil, errors.New("503"), "Conversion failed", false, "请求失败"},
	}

	for _, tt := range tests {
		b := newFakeBackend()
		b.convert = func(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error) {
			return tt.result, tt.err
		}
		c, rec := newTestConverter(b)

		c.Convert(" 10 ", "USD", "EUR")
		c.Wait()

		st := rec.snapshot()
		if st.conversion != tt.expected || st.conversionOK != tt.ok {
			t.Errorf("%s: conversion = %q (ok=%v), expected %q (ok=%v)",
				tt.desc, st.conversion, st.conversionOK, tt.expected, tt.ok)
		}
		c.Close()
	}
}

// 金额无法解析时不发请求
func TestConvertInvalidAmount(t *testing.T) {
	tests := []struct {
		amount string
		desc   string
	}{
		{"", "空金额"},
		{"abc", "非数字"},
		{"1,000", "带千分位"},
		{"10 USD", "带币种"},
	}

	for _, tt := range tests {
		b := newFakeBackend()
		c, rec := newTestConverter(b)

		c.Convert(tt.amount, "USD", "EUR")
		c.Wait()

		if calls := b.callsTo("convert"); len(calls) != 0 {
			t.Errorf("%s: convert called %v", tt.desc, calls)
		}
		if st := rec.snapshot(); st.conversion != "Conversion failed" || st.conversionOK {
			t.Errorf("%s: conversion = %q", tt.desc, st.conversion)
		}
		c.Close()
	}
}

func TestLoadCurrencies(t *testing.T) {
	tests := []struct {
		codes    []string
		err      error
		from, to string
		desc     string
	}{
		{[]string{"EUR", "INR", "USD"}, nil, "USD", "INR", "默认币种存在"},
		{[]string{"EUR", "JPY"}, nil, "EUR", "EUR", "默认币种不存在时选第一个"},
		{nil, errors.New("down"), "", "", "加载失败"},
	}

	for _, tt := range tests {
		b := newFakeBackend()
		b.currencies = func(ctx context.Context) ([]string, error) { return tt.codes, tt.err }
		c, rec := newTestConverter(b)

		c.LoadCurrencies()
		c.Wait()

		st := rec.snapshot()
		if st.from != tt.from || st.to != tt.to || !reflect.DeepEqual(st.codes, tt.codes) {
			t.Errorf("%s: rendered %v %s/%s, expected %v %s/%s",
				tt.desc, st.codes, st.from, st.to, tt.codes, tt.from, tt.to)
		}
		if from, to := c.Selected(); from != tt.from || to != tt.to {
			t.Errorf("%s: Selected = %s/%s", tt.desc, from, to)
		}
		c.Close()
	}
}

func TestCycleCurrency(t *testing.T) {
	b := newFakeBackend()
	b.currencies = func(ctx context.Context) ([]string, error) {
		return []string{"EUR", "INR", "USD"}, nil
	}
	c, rec := newTestConverter(b)
	defer c.Close()

	c.LoadCurrencies()
	c.Wait()

	c.CycleFrom(1)
	if from, _ := c.Selected(); from != "EUR" {
		t.Errorf("CycleFrom(1) from USD = %s, expected EUR (wrap)", from)
	}
	c.CycleTo(-1)
	if _, to := c.Selected(); to != "EUR" {
		t.Errorf("CycleTo(-1) from INR = %s, expected EUR", to)
	}
	if st := rec.snapshot(); st.from != "EUR" || st.to != "EUR" {
		t.Errorf("rendered %s/%s", st.from, st.to)
	}

	c.ConvertSelected("5")
	c.Wait()
	if calls := b.callsTo("convert"); len(calls) != 1 || calls[0] != "5 EUR EUR" {
		t.Errorf("convert calls = %v", calls)
	}
}

func TestConvertLatestWins(t *testing.T) {
	b := newFakeBackend()
	release := make(chan struct{})
	b.convert = func(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error) {
		if amount.Equal(decimal.NewFromInt(1)) {
			<-release
			return &ConversionResult{Result: floatPtr(83)}, nil
		}
		return &ConversionResult{Result: floatPtr(166)}, nil
	}
	c, rec := newTestConverter(b)
	defer c.Close()

	c.Convert("1", "USD", "INR")
	c.Convert("2", "USD", "INR")
	waitFor(t, "second conversion", func() bool { return rec.snapshot().conversion != "" })
	close(release)
	c.Wait()

	if st := rec.snapshot(); st.conversion != "2 USD = 166 INR" {
		t.Errorf("conversion = %q, expected the later request", st.conversion)
	}
}
