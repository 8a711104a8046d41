package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ============================================================================
// 涨跌颜色 - 支持多语言颜色方案
// 中文：红涨绿跌 | 英文：绿涨红跌
// ============================================================================

// trendTextColor 涨跌对应的 go-pretty 颜色，持平时返回 false
func trendTextColor(trend Trend) (text.Color, bool) {
	up, down := text.FgGreen, text.FgRed
	if currentLanguage() == Chinese {
		up, down = text.FgRed, text.FgGreen
	}
	switch trend {
	case TrendUp:
		return up, true
	case TrendDown:
		return down, true
	}
	return text.Reset, false
}

// formatTrend 按涨跌给文本着色，持平时不加颜色
func formatTrend(s string, trend Trend) string {
	if color, ok := trendTextColor(trend); ok {
		return color.Sprint(s)
	}
	return s
}

// trendLineColor 图表线条颜色：按首尾价格判断涨跌，持平时使用主题色
func trendLineColor(prices []float64, fallback lipgloss.Color) lipgloss.Color {
	if len(prices) < 2 {
		return fallback
	}
	first, last := prices[0], prices[len(prices)-1]

	upColor, downColor := lipgloss.Color("10"), lipgloss.Color("9")
	if currentLanguage() == Chinese {
		upColor, downColor = downColor, upColor
	}
	switch {
	case last > first:
		return upColor
	case last < first:
		return downColor
	}
	return fallback
}

// ============================================================================
// 其他格式化函数
// ============================================================================

// hyperlink 终端超链接（OSC 8），不支持的终端只显示文本
func hyperlink(url, label string) string {
	if url == "" {
		return label
	}
	return "\x1b]8;;" + url + "\x1b\\" + label + "\x1b]8;;\x1b\\"
}

// truncate 按显示宽度截断
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
