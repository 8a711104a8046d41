package main

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ============================================================================
// 调试日志系统
// ============================================================================

// debugBuffer 调试面板的日志缓冲，日志可能来自任意 goroutine
type debugBuffer struct {
	mu      sync.Mutex
	enabled bool
	lines   []string
	limit   int
}

var debugLogs = &debugBuffer{limit: 500}

// enableDebug 打开或关闭调试面板记录
func enableDebug(on bool) {
	debugLogs.mu.Lock()
	defer debugLogs.mu.Unlock()
	debugLogs.enabled = on
}

// debugPrint 调试模式下记录一条带时间戳的日志
func debugPrint(msg string) {
	debugLogs.mu.Lock()
	defer debugLogs.mu.Unlock()

	if !debugLogs.enabled {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	debugLogs.lines = append(debugLogs.lines, fmt.Sprintf("[%s] %s", timestamp, msg))
	if len(debugLogs.lines) > debugLogs.limit {
		debugLogs.lines = debugLogs.lines[len(debugLogs.lines)-debugLogs.limit:]
	}
}

// snapshot 返回日志副本
func (b *debugBuffer) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// logUserAction 记录用户操作 - 支持 i18n key
func (m *Model) logUserAction(actionKey string, args ...any) {
	if !m.debugMode {
		return
	}
	prefix := getText("debug.action.prefix")
	debugPrint(prefix + " " + fmt.Sprintf(getText(actionKey), args...))
}

// ============================================================================
// 调试日志滚动控制
// ============================================================================

// scrollDebugUp 向上滚动调试日志
func (m *Model) scrollDebugUp() {
	maxScroll := len(debugLogs.snapshot()) - 1
	if m.debugScrollPos < maxScroll {
		m.debugScrollPos++
	}
}

// scrollDebugDown 向下滚动调试日志
func (m *Model) scrollDebugDown() {
	if m.debugScrollPos > 0 {
		m.debugScrollPos--
	}
}

// ============================================================================
// 调试面板渲染
// ============================================================================

// renderDebugPanel 渲染调试面板
func (m *Model) renderDebugPanel() string {
	if !m.debugMode {
		return ""
	}

	// 显示最多6条完整日志，支持滚动查看
	maxDebugLines := 6

	logs := debugLogs.snapshot()
	if len(logs) == 0 {
		return "\n" + getText("debug.empty")
	}

	width := m.width
	if width <= 0 || width > 120 {
		width = 80
	}

	totalLogs := len(logs)
	if m.debugScrollPos > totalLogs-1 {
		m.debugScrollPos = totalLogs - 1
	}
	currentPos := totalLogs - m.debugScrollPos

	var b strings.Builder
	b.WriteString("\n" + strings.Repeat("=", width) + "\n")
	b.WriteString(fmt.Sprintf(getText("debug.header"), currentPos, totalLogs) + "\n")
	b.WriteString(strings.Repeat("-", width) + "\n")

	// 根据滚动位置计算要显示的日志范围
	endIndex := totalLogs - m.debugScrollPos
	startIndex := endIndex - maxDebugLines
	if startIndex < 0 {
		startIndex = 0
	}

	for i := startIndex; i < endIndex; i++ {
		prefix := ""
		if i == endIndex-1 && m.debugScrollPos == 0 {
			prefix = "→ " // 标记最新日志
		}
		b.WriteString(prefix + logs[i] + "\n")
	}

	b.WriteString(strings.Repeat("=", width))
	return b.String()
}
