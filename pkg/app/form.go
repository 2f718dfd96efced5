package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError single field validation error
// ValidError 单字段校验错误
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

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString returns "key:message" pairs for the response data payload.
// MapsToString 返回 "key:message" 形式的键值对
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string)
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters and translates validation failures
// using the translator installed by the language middleware.
// BindAndValid 绑定请求参数并使用语言中间件安装的翻译器翻译校验错误
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err != nil {
		trans, _ := c.Get("trans")

		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
			return false, errs
		}

		if t, ok := trans.(ut.Translator); ok {
			for key, value := range verrs.Translate(t) {
				errs = append(errs, &ValidError{Key: key, Message: value})
			}
		} else {
			for _, fe := range verrs {
				errs = append(errs, &ValidError{Key: fe.Field(), Message: fe.Error()})
			}
		}
		return false, errs
	}

	return true, nil
}
