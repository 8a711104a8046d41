package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yml")

	config := loadConfig(path)
	if config != getDefaultConfig() {
		t.Errorf("missing config = %+v, expected defaults", config)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}

	// 写入的默认配置可以重新读取
	if again := loadConfig(path); again != getDefaultConfig() {
		t.Errorf("reloaded config = %+v", again)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		content string
		check   func(c Config) bool
		desc    string
	}{
		{
			"system: [unterminated",
			func(c Config) bool { return c == getDefaultConfig() },
			"格式错误使用默认配置",
		},
		{
			"display:\n  default_symbol: TSLA\n  default_range: 1y\n",
			func(c Config) bool {
				return c.Display.DefaultSymbol == "TSLA" && c.Display.DefaultRange == "1y" && c.Display.ChartHeight == 14
			},
			"部分字段覆盖，其余保持默认",
		},
		{
			"system:\n  language: fr\n  log_level: verbose\napi:\n  timeout_seconds: 0\n",
			func(c Config) bool {
				return c.System.Language == "en" && c.System.LogLevel == "info" && c.API.TimeoutSeconds == 10
			},
			"非法值被修正",
		},
		{
			"storage:\n  driver: sqlite\n  path: \"\"\n",
			func(c Config) bool { return c.Storage.Driver == storageSQLite && c.Storage.Path == defaultSQLiteDB },
			"SQLite 默认路径",
		},
		{
			"update:\n  refresh_interval: 0\n  debounce_millis: 5\n",
			func(c Config) bool { return c.Update.RefreshInterval == 5 && c.Update.DebounceMillis == 200 },
			"轮询间隔和防抖下限",
		},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.yml")
		if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
			t.Fatal(err)
		}
		if c := loadConfig(path); !tt.check(c) {
			t.Errorf("%s: unexpected config %+v", tt.desc, c)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		mutate func(c *Config)
		check  func(c Config) bool
		desc   string
	}{
		{func(c *Config) { c.Display.ChartHeight = 200 }, func(c Config) bool { return c.Display.ChartHeight == 14 }, "图表过高"},
		{func(c *Config) { c.Display.MaxLines = 0 }, func(c Config) bool { return c.Display.MaxLines == 10 }, "列表行数为 0"},
		{func(c *Config) { c.Display.DefaultRange = "2w" }, func(c Config) bool { return c.Display.DefaultRange == "1mo" }, "未知范围"},
		{func(c *Config) { c.Storage.Driver = "mongo" }, func(c Config) bool { return c.Storage.Driver == storageFile }, "未知存储驱动"},
		{func(c *Config) { c.System.Language = "zh" }, func(c Config) bool { return c.System.Language == "zh" }, "中文保持不变"},
		{func(c *Config) { c.API.BaseURL = "  " }, func(c Config) bool { return c.API.BaseURL == defaultAPIURL }, "空地址"},
	}

	for _, tt := range tests {
		c := getDefaultConfig()
		tt.mutate(&c)
		validateConfig(&c)
		if !tt.check(c) {
			t.Errorf("%s: unexpected config %+v", tt.desc, c)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "http://stocks.internal:8080")
	t.Setenv("DASHBOARD_STORAGE_DRIVER", "sqlite")
	t.Setenv("DASHBOARD_STORAGE_PATH", "/var/lib/dashboard/kv.db")
	t.Setenv("DASHBOARD_LOG_LEVEL", "bogus")
	t.Setenv("DASHBOARD_METRICS_ADDR", ":9102")

	c := getDefaultConfig()
	applyEnvOverrides(&c)

	if c.API.BaseURL != "http://stocks.internal:8080" {
		t.Errorf("base url = %q", c.API.BaseURL)
	}
	if c.Storage.Driver != storageSQLite || c.Storage.Path != "/var/lib/dashboard/kv.db" {
		t.Errorf("storage = %+v", c.Storage)
	}
	if c.System.LogLevel != "info" {
		t.Errorf("invalid log level not reset: %q", c.System.LogLevel)
	}
	if c.Metrics.ListenAddr != ":9102" {
		t.Errorf("metrics addr = %q", c.Metrics.ListenAddr)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DASHBOARD_TEST_ENV_VALUE=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DASHBOARD_TEST_ENV_VALUE", "")
	os.Unsetenv("DASHBOARD_TEST_ENV_VALUE")

	loadEnvFile(path)
	if got := os.Getenv("DASHBOARD_TEST_ENV_VALUE"); got != "from-file" {
		t.Errorf("env value = %q, expected from-file", got)
	}

	// 文件不存在时什么也不做
	loadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}
