package main

import "fmt"

// ============================================================================
// 日志函数 - 四个级别
// ============================================================================

// logDebug DEBUG 级别日志 - 详细调试信息
// key: i18n 键名（如 "log.fetch.stale"）
// args: 格式化参数（替换 i18n 文本中的 %s, %d 等占位符）
func logDebug(key string, args ...any) {
	text := formatLogText(key, args...)
	debugPrint(text)

	if globalLogger == nil {
		return
	}
	globalLogger.Log(LogDebug, key, text)
}

// logInfo INFO 级别日志 - 正常运行信息
func logInfo(key string, args ...any) {
	if globalLogger == nil {
		return
	}
	globalLogger.Log(LogInfo, key, formatLogText(key, args...))
}

// logWarn WARN 级别日志 - 可能的问题
func logWarn(key string, args ...any) {
	text := formatLogText(key, args...)
	debugPrint(text)

	if globalLogger == nil {
		return
	}
	globalLogger.Log(LogWarn, key, text)
}

// logError ERROR 级别日志 - 需要关注的错误
func logError(key string, args ...any) {
	text := formatLogText(key, args...)
	debugPrint(text)

	if globalLogger == nil {
		return
	}
	globalLogger.Log(LogError, key, text)
}

// ============================================================================
// 辅助函数
// ============================================================================

// formatLogText 获取 i18n 日志文本并填充参数，找不到时使用 key 本身
func formatLogText(key string, args ...any) string {
	text := getText(key)
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	return text
}

// ============================================================================
// 简化日志函数 - 用于没有 i18n key 的直接消息
// ============================================================================

// logInfoDirect 直接记录 INFO 级别消息（无 key）
func logInfoDirect(format string, args ...any) {
	if globalLogger == nil {
		return
	}
	globalLogger.Log(LogInfo, "", fmt.Sprintf(format, args...))
}

// logErrorDirect 直接记录 ERROR 级别消息（无 key）
func logErrorDirect(format string, args ...any) {
	if globalLogger == nil {
		return
	}
	globalLogger.Log(LogError, "", fmt.Sprintf(format, args...))
}
