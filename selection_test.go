package main

import (
	"errors"
	"testing"
)

func TestNewSelectionState(t *testing.T) {
	tests := []struct {
		symbol   string
		rng      Range
		expected Selection
		desc     string
	}{
		{"MSFT", Range5D, Selection{"MSFT", Range5D}, "合法初值保持不变"},
		{"  TSLA ", Range1Y, Selection{"TSLA", Range1Y}, "代码去除首尾空白"},
		{"", Range1D, Selection{defaultSymbol, Range1D}, "空代码回退到默认股票"},
		{"AAPL", Range("2w"), Selection{"AAPL", defaultRange}, "未知范围回退到默认范围"},
	}

	for _, tt := range tests {
		got := NewSelectionState(tt.symbol, tt.rng).Snapshot()
		if got != tt.expected {
			t.Errorf("%s: NewSelectionState(%q, %q) = %+v, expected %+v",
				tt.desc, tt.symbol, tt.rng, got, tt.expected)
		}
	}
}

func TestSelectionSetSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		err      error
		desc     string
	}{
		{"NVDA", "NVDA", nil, "普通代码"},
		{" AMD\t", "AMD", nil, "去除空白后保存"},
		{"", "AAPL", ErrEmptySymbol, "空字符串被拒绝"},
		{"   ", "AAPL", ErrEmptySymbol, "纯空白被拒绝"},
	}

	for _, tt := range tests {
		s := NewSelectionState("AAPL", Range1M)
		sel, err := s.SetSymbol(tt.input)
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: SetSymbol(%q) error = %v, expected %v", tt.desc, tt.input, err, tt.err)
		}
		if sel.Symbol != tt.expected || s.Symbol() != tt.expected {
			t.Errorf("%s: SetSymbol(%q) symbol = %q (state %q), expected %q",
				tt.desc, tt.input, sel.Symbol, s.Symbol(), tt.expected)
		}
		if sel.Range != Range1M {
			t.Errorf("%s: range changed to %q", tt.desc, sel.Range)
		}
	}
}

func TestSelectionSetRange(t *testing.T) {
	s := NewSelectionState("AAPL", Range1M)

	sel, err := s.SetRange(Range5Y)
	if err != nil {
		t.Fatalf("SetRange(5y) error: %v", err)
	}
	if sel != (Selection{"AAPL", Range5Y}) {
		t.Errorf("SetRange(5y) = %+v", sel)
	}

	sel, err = s.SetRange(Range("10y"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("SetRange(10y) error = %v, expected ErrInvalidRange", err)
	}
	if sel.Range != Range5Y || s.Snapshot().Range != Range5Y {
		t.Errorf("invalid range should keep 5y, got %q", s.Snapshot().Range)
	}
}
