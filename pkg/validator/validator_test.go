package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type registerForm struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,username"`
}

func TestCustomValidatorBindingTag(t *testing.T) {
	v := NewCustomValidator()

	type form struct {
		Name string `json:"name" binding:"required"`
	}

	if err := v.ValidateStruct(&form{Name: "ok"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
	if err := v.ValidateStruct(&form{}); err == nil {
		t.Error("expected error for missing required field")
	}
	// 非结构体直接放行
	if err := v.ValidateStruct("plain string"); err != nil {
		t.Errorf("non-struct value rejected: %v", err)
	}
}

func TestRegisterCustomUsernameTag(t *testing.T) {
	prev := binding.Validator
	defer func() { binding.Validator = prev }()

	binding.Validator = NewCustomValidator()
	RegisterCustom()

	valid := &registerForm{Email: "a@b.com", Username: "user_01"}
	if err := binding.Validator.ValidateStruct(valid); err != nil {
		t.Errorf("valid username rejected: %v", err)
	}

	for _, name := range []string{"ab", "has space", "名字", "way_too_long_username_x"} {
		bad := &registerForm{Email: "a@b.com", Username: name}
		if err := binding.Validator.ValidateStruct(bad); err == nil {
			t.Errorf("username %q accepted, want rejection", name)
		}
	}
}
