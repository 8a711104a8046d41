package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

func main() {
	loadEnvFile(envFile)
	config := loadConfig(configFile)
	applyEnvOverrides(&config)

	setLanguage(Language(config.System.Language))
	enableDebug(config.System.DebugMode)

	level, _ := parseLogLevel(config.System.LogLevel)
	if err := InitLogger(config.System.LogDir, level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	err := run(config, runProgram)
	if globalLogger != nil {
		globalLogger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runProgram 以全屏和鼠标模式运行界面，直到用户退出
func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// run 组装存储、指标和控制器并运行界面，返回前释放全部资源
func run(config Config, program func(tea.Model) error) error {
	logInfoDirect("stock-dashboard starting, api=%s storage=%s", config.API.BaseURL, config.Storage.Driver)

	store, err := openStore(config.Storage)
	if err != nil {
		// 存储不可用时退回本地文件
		logError("log.store.openFail", config.Storage.Driver, err)
		store = newFileStore(defaultStoreFile)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := NewMetrics()
	metrics.Serve(ctx, config.Metrics.ListenAddr)

	backend := NewHTTPBackend(config.API.BaseURL, time.Duration(config.API.TimeoutSeconds)*time.Second)
	screen := NewScreen()
	dash := NewDashboard(backend, store, screen.Sinks(), optionsFromConfig(config, metrics))
	defer dash.Close()

	if err := dash.Start(); err != nil {
		logErrorDirect("start dashboard: %v", err)
		return fmt.Errorf("start dashboard: %w", err)
	}

	zone.NewGlobal()
	defer zone.Close()

	if err := program(newModel(dash, screen, config)); err != nil {
		logErrorDirect("program exited: %v", err)
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
