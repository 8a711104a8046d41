package main

import (
	"errors"
	"strings"
	"sync"
)

var (
	// ErrEmptySymbol 空白股票代码不能成为当前选择
	ErrEmptySymbol = errors.New("empty symbol")
	// ErrInvalidRange 未知的图表时间范围
	ErrInvalidRange = errors.New("invalid range")
)

// SelectionState 当前股票与图表范围，整个仪表盘只有一份
type SelectionState struct {
	mu     sync.RWMutex
	symbol string
	rng    Range
}

// NewSelectionState 创建选择状态，非法初值回退到默认值
func NewSelectionState(symbol string, rng Range) *SelectionState {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = defaultSymbol
	}
	if !rng.Valid() {
		rng = defaultRange
	}
	return &SelectionState{symbol: symbol, rng: rng}
}

// Snapshot 返回当前选择的副本
func (s *SelectionState) Snapshot() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Selection{Symbol: s.symbol, Range: s.rng}
}

// SetSymbol 设置当前股票并返回新的快照
func (s *SelectionState) SetSymbol(symbol string) (Selection, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return s.Snapshot(), ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbol = symbol
	return Selection{Symbol: s.symbol, Range: s.rng}, nil
}

// SetRange 设置图表范围并返回新的快照
func (s *SelectionState) SetRange(rng Range) (Selection, error) {
	if !rng.Valid() {
		return s.Snapshot(), ErrInvalidRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
	return Selection{Symbol: s.symbol, Range: s.rng}, nil
}

// Symbol 当前股票代码
func (s *SelectionState) Symbol() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbol
}
