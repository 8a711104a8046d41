package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
)

// supportedColors go-pretty 支持的高亮颜色
var supportedColors = map[string]text.Color{
	"black":   text.FgBlack,
	"red":     text.FgRed,
	"green":   text.FgGreen,
	"yellow":  text.FgYellow,
	"blue":    text.FgBlue,
	"magenta": text.FgMagenta,
	"cyan":    text.FgCyan,
	"white":   text.FgWhite,
}

// highlightText 使用配置的颜色高亮文本，未知颜色使用黄色
func highlightText(content, colorName string) string {
	color, exists := supportedColors[strings.ToLower(colorName)]
	if !exists {
		color = text.FgYellow
	}
	return color.Sprint(content)
}

// ============================================================================
// 主题配色
// ============================================================================

// palette 一个主题下的界面颜色
type palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Accent  lipgloss.Color
	Focus   lipgloss.Color
	Chart   lipgloss.Color
	Surface lipgloss.Color
}

var (
	lightPalette = palette{
		Text:    lipgloss.Color("235"),
		Muted:   lipgloss.Color("244"),
		Border:  lipgloss.Color("250"),
		Accent:  lipgloss.Color("63"),
		Focus:   lipgloss.Color("33"),
		Chart:   lipgloss.Color("63"),
		Surface: lipgloss.Color("255"),
	}
	darkPalette = palette{
		Text:    lipgloss.Color("252"),
		Muted:   lipgloss.Color("245"),
		Border:  lipgloss.Color("239"),
		Accent:  lipgloss.Color("111"),
		Focus:   lipgloss.Color("81"),
		Chart:   lipgloss.Color("111"),
		Surface: lipgloss.Color("236"),
	}
)

func paletteFor(theme Theme) palette {
	if theme == ThemeDark {
		return darkPalette
	}
	return lightPalette
}
