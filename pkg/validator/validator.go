package validator

import (
	"reflect"
	"sync"

	"github.com/haierkeys/block-note-service/pkg/util"

	"github.com/gin-gonic/gin/binding"
	validatorV10 "github.com/go-playground/validator/v10"
)

// CustomValidator gin binding validator backed by go-playground/validator
// CustomValidator 基于 go-playground/validator 的 gin 绑定验证器
// Replaces the default so custom tags and translators share one engine
// 替换默认验证器，使自定义标签与翻译器共用同一引擎
type CustomValidator struct {
	once     sync.Once
	validate *validatorV10.Validate
}

var _ binding.StructValidator = &CustomValidator{}

// NewCustomValidator creates CustomValidator instance
// NewCustomValidator 创建 CustomValidator 实例
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct validates the struct bound by gin
// ValidateStruct 验证 gin 绑定的结构体
func (v *CustomValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

// Engine returns the underlying validator engine
// Engine 返回底层验证引擎
func (v *CustomValidator) Engine() any {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validatorV10.New()
		v.validate.SetTagName("binding")
	})
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

// RegisterCustom registers custom validation tags on the gin binding engine
// RegisterCustom 在 gin 绑定引擎上注册自定义验证标签
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if !ok {
		return
	}

	// username: 字母、数字、下划线，长度 3-20
	_ = validate.RegisterValidation("username", func(fl validatorV10.FieldLevel) bool {
		return util.IsValidUsername(fl.Field().String())
	})
}
