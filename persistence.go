package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// Watchlist 自选股数据持久化
// ============================================================================

// loadWatchlist 从存储读取自选列表（JSON 数组）
// 缺失或格式错误时返回空列表，加载时去空白、去重并保持顺序
func loadWatchlist(store KVStore) []string {
	raw, ok := store.Get(watchlistKey)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logWarn("log.watchlist.malformed", err)
		return []string{}
	}

	seen := make(map[string]bool, len(stored))
	list := make([]string, 0, len(stored))
	for _, symbol := range stored {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		list = append(list, symbol)
	}
	return list
}

// saveWatchlist 把自选列表写回存储
func saveWatchlist(store KVStore, list []string) error {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return store.Set(watchlistKey, string(data))
}

// ============================================================================
// Theme 主题持久化
// ============================================================================

// loadTheme 只有存储值恰好为 "dark" 时才是深色主题
func loadTheme(store KVStore) Theme {
	if raw, ok := store.Get(themeKey); ok && raw == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

func saveTheme(store KVStore, theme Theme) error {
	return store.Set(themeKey, string(theme))
}

// ============================================================================
// Config 配置文件持久化
// ============================================================================

// getDefaultConfig 获取默认配置
func getDefaultConfig() Config {
	return Config{
		System: SystemConfig{
			Language:  "en",          // 默认英文
			DebugMode: false,         // 调试模式关闭
			LogDir:    defaultLogDir, // 日志目录
			LogLevel:  "info",
		},
		API: APIConfig{
			BaseURL:        defaultAPIURL,
			TimeoutSeconds: int(requestTimeout / time.Second),
		},
		Storage: StorageConfig{
			Driver: storageFile,
			Path:   defaultStoreFile,
		},
		Display: DisplayConfig{
			DefaultSymbol:  defaultSymbol,
			DefaultRange:   string(defaultRange),
			FromCurrency:   "USD",
			ToCurrency:     "INR",
			ChartHeight:    14,
			MaxLines:       10,
			HighlightColor: "yellow",
		},
		Update: UpdateConfig{
			RefreshInterval: int(refreshInterval / time.Second),
			DebounceMillis:  int(debounceInterval / time.Millisecond),
		},
	}
}

// loadConfig 加载配置文件，不存在时写入默认配置，格式错误时使用默认配置
func loadConfig(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		config := getDefaultConfig()
		if err := saveConfig(path, config); err != nil {
			logWarn("log.config.saveFail", path, err)
		}
		return config
	}

	config := getDefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		logWarn("log.config.malformed", path, err)
		return getDefaultConfig()
	}

	validateConfig(&config)
	return config
}

// validateConfig 修正不合理的配置值
func validateConfig(config *Config) {
	defaults := getDefaultConfig()

	if config.System.Language != string(Chinese) && config.System.Language != string(English) {
		config.System.Language = defaults.System.Language
	}
	if config.System.LogDir == "" {
		config.System.LogDir = defaults.System.LogDir
	}
	if _, ok := parseLogLevel(config.System.LogLevel); !ok {
		config.System.LogLevel = defaults.System.LogLevel
	}

	if strings.TrimSpace(config.API.BaseURL) == "" {
		config.API.BaseURL = defaults.API.BaseURL
	}
	if config.API.TimeoutSeconds <= 0 || config.API.TimeoutSeconds > 120 {
		config.API.TimeoutSeconds = defaults.API.TimeoutSeconds
	}

	switch config.Storage.Driver {
	case storageFile, storageSQLite, storageRedis:
	default:
		config.Storage.Driver = defaults.Storage.Driver
	}
	if config.Storage.Path == "" && config.Storage.Driver == storageSQLite {
		config.Storage.Path = defaultSQLiteDB
	}
	if config.Storage.Path == "" {
		config.Storage.Path = defaults.Storage.Path
	}

	if strings.TrimSpace(config.Display.DefaultSymbol) == "" {
		config.Display.DefaultSymbol = defaults.Display.DefaultSymbol
	}
	if !Range(config.Display.DefaultRange).Valid() {
		config.Display.DefaultRange = defaults.Display.DefaultRange
	}
	if config.Display.FromCurrency == "" {
		config.Display.FromCurrency = defaults.Display.FromCurrency
	}
	if config.Display.ToCurrency == "" {
		config.Display.ToCurrency = defaults.Display.ToCurrency
	}
	if config.Display.ChartHeight < 6 || config.Display.ChartHeight > 60 {
		config.Display.ChartHeight = defaults.Display.ChartHeight
	}
	if config.Display.MaxLines <= 0 || config.Display.MaxLines > 50 {
		config.Display.MaxLines = defaults.Display.MaxLines
	}
	if config.Display.HighlightColor == "" {
		config.Display.HighlightColor = defaults.Display.HighlightColor
	}

	if config.Update.RefreshInterval < 1 {
		config.Update.RefreshInterval = defaults.Update.RefreshInterval
	}
	if config.Update.DebounceMillis < 50 || config.Update.DebounceMillis > 2000 {
		config.Update.DebounceMillis = defaults.Update.DebounceMillis
	}
}

// saveConfig 保存配置文件
func saveConfig(path string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ============================================================================
// 环境变量覆盖
// ============================================================================

// loadEnvFile 读取 .env 文件，文件不存在不算错误
func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		logWarn("log.config.envFail", path, err)
	}
}

// applyEnvOverrides 环境变量优先于配置文件
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DASHBOARD_API_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("DASHBOARD_STORAGE_DRIVER"); v != "" {
		config.Storage.Driver = v
	}
	if v := os.Getenv("DASHBOARD_STORAGE_PATH"); v != "" {
		config.Storage.Path = v
	}
	if v := os.Getenv("DASHBOARD_REDIS_URL"); v != "" {
		config.Storage.RedisURL = v
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		config.System.LogLevel = v
	}
	if v := os.Getenv("DASHBOARD_METRICS_ADDR"); v != "" {
		config.Metrics.ListenAddr = v
	}
	validateConfig(config)
}
