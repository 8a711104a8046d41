package main

import (
	"fmt"
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

// ============================================================================
// 历史价格图表
// ============================================================================

// chartPanel 持有当前图表实例，数据或尺寸变化时重建
type chartPanel struct {
	model  *linechart.Model
	seq    uint64
	width  int
	height int
	built  bool
}

// sync 数据序号或尺寸变化时释放旧图表并重建
func (c *chartPanel) sync(view ChartView, seq uint64, width, height int, lineStyle lipgloss.Style) {
	if c.built && c.seq == seq && c.width == width && c.height == height {
		return
	}
	c.release()
	c.seq, c.width, c.height = seq, width, height
	c.model = buildLineChart(view.Prices, width, height, lineStyle)
	c.built = true
	if c.model != nil {
		logDebug("log.chart.build", view.Symbol, view.Range, len(view.Prices), width, height)
	}
}

// release 清空并丢弃旧图表
func (c *chartPanel) release() {
	if c.model != nil {
		c.model.Clear()
		c.model = nil
	}
	c.built = false
}

// View 空序列显示空白区域
func (c *chartPanel) View() string {
	if c.model == nil {
		return lipgloss.NewStyle().Width(c.width).Height(c.height).Render("")
	}
	return c.model.View()
}

// buildLineChart 收盘价折线图，隐藏日期轴标签，显示价格轴标签
func buildLineChart(prices []float64, width, height int, lineStyle lipgloss.Style) *linechart.Model {
	if len(prices) == 0 || width < 10 || height < 4 {
		return nil
	}

	points := prices
	if len(points) == 1 {
		points = []float64{prices[0], prices[0]}
	}

	minPrice, maxPrice := points[0], points[0]
	for _, p := range points {
		minPrice = math.Min(minPrice, p)
		maxPrice = math.Max(maxPrice, p)
	}
	margin := (maxPrice - minPrice) * 0.05
	if margin == 0 {
		margin = math.Max(math.Abs(maxPrice)*0.01, 0.01)
	}

	yLabelFormatter := func(index int, value float64) string {
		if value >= 100 {
			return fmt.Sprintf("%.1f", value)
		} else if value >= 10 {
			return fmt.Sprintf("%.2f", value)
		}
		return fmt.Sprintf("%.3f", value)
	}
	xLabelFormatter := func(index int, value float64) string {
		return ""
	}

	lc := linechart.New(width, height,
		0, float64(len(points)-1),
		minPrice-margin, maxPrice+margin,
		linechart.WithXYSteps(4, 4),
		linechart.WithXLabelFormatter(xLabelFormatter),
		linechart.WithYLabelFormatter(yLabelFormatter),
		linechart.WithStyles(lipgloss.Style{}, lipgloss.Style{}, lineStyle),
	)

	for i := 0; i < len(points)-1; i++ {
		p1 := canvas.Float64Point{X: float64(i), Y: points[i]}
		p2 := canvas.Float64Point{X: float64(i + 1), Y: points[i+1]}
		lc.DrawBrailleLineWithStyle(p1, p2, lineStyle)
	}
	lc.DrawXYAxisAndLabel()

	return &lc
}
