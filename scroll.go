package main

// ============================================================================
// 列表滚动控制
// ============================================================================

// listScroll 带光标的列表滚动位置
type listScroll struct {
	cursor int
	offset int // 第一行可见条目
}

// up 光标上移，超出可见范围时滚动
func (s *listScroll) up(maxLines int) {
	if s.cursor > 0 {
		s.cursor--
	}
	s.adjust(-1, maxLines)
}

// down 光标下移，超出可见范围时滚动
func (s *listScroll) down(total, maxLines int) {
	if s.cursor < total-1 {
		s.cursor++
	}
	s.adjust(total, maxLines)
}

// adjust 确保光标在可见范围内（total 为 -1 时不修正越界）
func (s *listScroll) adjust(total, maxLines int) {
	if total >= 0 {
		if s.cursor > total-1 {
			s.cursor = total - 1
		}
		if s.cursor < 0 {
			s.cursor = 0
		}
	}
	if maxLines <= 0 {
		maxLines = 1
	}

	// 光标超出可见范围的上边界
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	// 光标超出可见范围的下边界
	if s.cursor >= s.offset+maxLines {
		s.offset = s.cursor - maxLines + 1
	}
	// 列表变短后不留空行
	if total >= 0 && s.offset > total-maxLines {
		s.offset = total - maxLines
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// window 返回可见条目的起止下标
func (s *listScroll) window(total, maxLines int) (start, end int) {
	s.adjust(total, maxLines)
	start = s.offset
	end = start + maxLines
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return start, end
}

// ============================================================================
// 自选列表与涨跌榜滚动
// ============================================================================

func (m *Model) scrollWatchlistUp() {
	m.watchScroll.up(m.config.Display.MaxLines)
}

func (m *Model) scrollWatchlistDown() {
	m.watchScroll.down(len(m.screen.Watchlist), m.config.Display.MaxLines)
}

func (m *Model) scrollMoversUp() {
	m.moverScroll.up(m.config.Display.MaxLines)
}

func (m *Model) scrollMoversDown() {
	m.moverScroll.down(len(m.screen.Movers), m.config.Display.MaxLines)
}
