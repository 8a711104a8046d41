package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed i18n/*.json
var i18nFS embed.FS

var (
	// texts i18n 配置 - 存储各语言的文本映射
	texts       map[Language]TextMap
	textsMu     sync.RWMutex
	currentLang = English
)

func init() {
	if err := loadI18nFiles(); err != nil {
		panic(err)
	}
}

// loadI18nFiles 加载内嵌的 i18n 文件
func loadI18nFiles() error {
	loaded := make(map[Language]TextMap)
	for _, lang := range []Language{Chinese, English} {
		data, err := i18nFS.ReadFile("i18n/" + string(lang) + ".json")
		if err != nil {
			return fmt.Errorf("read i18n/%s.json: %w", lang, err)
		}
		var m TextMap
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("parse i18n/%s.json: %w", lang, err)
		}
		loaded[lang] = m
	}

	textsMu.Lock()
	texts = loaded
	textsMu.Unlock()
	return nil
}

// setLanguage 切换界面语言，未知语言回退到英文
func setLanguage(lang Language) {
	if lang != Chinese {
		lang = English
	}
	textsMu.Lock()
	currentLang = lang
	textsMu.Unlock()
}

// currentLanguage 当前界面语言
func currentLanguage() Language {
	textsMu.RLock()
	defer textsMu.RUnlock()
	return currentLang
}

// getText 获取本地化文本的辅助函数
func getText(key string) string {
	textsMu.RLock()
	defer textsMu.RUnlock()

	if text, exists := texts[currentLang][key]; exists {
		return text
	}
	// 如果找不到文本，返回英文版本作为备用
	if text, exists := texts[English][key]; exists {
		return text
	}
	return key // 最后备用返回key本身
}
