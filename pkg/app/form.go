package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 拼接全部验证错误信息
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// Maps 以字段名为键返回验证错误
func (v ValidErrors) Maps() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters and validates them
// Validation messages are translated with the translator the lang
// middleware put on the context.
// BindAndValid 绑定并验证请求参数
// 验证消息使用 lang 中间件放入上下文的翻译器进行翻译
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err != nil {
		trans, _ := c.Value("trans").(ut.Translator)
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{
				Key:     key,
				Message: value,
			})
		}
		return false, errs
	}

	return true, nil
}

// ValidateStruct validates an already-decoded value, used by the
// websocket path where binding happens outside gin.
// ValidateStruct 验证已解码的值，供 websocket 路径使用（绑定发生在 gin 之外）
func ValidateStruct(trans ut.Translator, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	if err := binding.Validator.ValidateStruct(v); err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}
		for _, verr := range verrs {
			msg := verr.Error()
			if trans != nil {
				msg = verr.Translate(trans)
			}
			errs = append(errs, &ValidError{
				Key:     verr.Field(),
				Message: msg,
			})
		}
		return false, errs
	}
	return true, nil
}
