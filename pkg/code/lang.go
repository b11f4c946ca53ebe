package code

import (
	"errors"
	"reflect"
)

// lang holds the message text per language
// lang 保存各语言的消息文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

// Default language is English // 默认语言为英文
var lng = "en"

const FALLBACK_LNG = "en"

// GetMessage returns the message for the currently selected language
// GetMessage 返回当前所选语言的消息
func (l lang) GetMessage() string {
	if lng == "" {
		lng = FALLBACK_LNG
	}
	val := reflect.ValueOf(l)
	field := val.FieldByName(lng)
	if field.IsValid() && field.String() != "" {
		return field.String()
	}
	// Fall back when the selected language has no text
	// 所选语言无文本时回退
	fallbackField := val.FieldByName(FALLBACK_LNG)
	if fallbackField.IsValid() && fallbackField.String() != "" {
		return fallbackField.String()
	}
	return "no message available"
}

// SupportedLanguages lists the languages the lang type carries
// SupportedLanguages 列出 lang 类型支持的语言
func SupportedLanguages() []string {
	var languages []string
	typ := reflect.TypeOf(lang{})
	for i := 0; i < typ.NumField(); i++ {
		languages = append(languages, typ.Field(i).Name)
	}
	return languages
}

// SetGlobalDefaultLang sets the global default language
// SetGlobalDefaultLang 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	for _, l := range SupportedLanguages() {
		if language == l {
			lng = language
			return nil
		}
	}
	return errors.New("unsupported language: " + language)
}
