package dto

// UserRegisterRequest registration parameters
// UserRegisterRequest 用户注册参数
type UserRegisterRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`                 // 邮箱
	Username        string `json:"username" form:"username" binding:"required,username"`        // 用户名
	Password        string `json:"password" form:"password" binding:"required,min=6"`          // 密码
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`   // 确认密码
	Nickname        string `json:"nickname" form:"nickname"`                                    // 昵称
}

// UserLoginRequest login parameters, account accepts email or username
// UserLoginRequest 用户登录参数，account 支持邮箱或用户名
type UserLoginRequest struct {
	Account  string `json:"account" form:"account" binding:"required"`   // 邮箱或用户名
	Password string `json:"password" form:"password" binding:"required"` // 密码
}

// UserChangePasswordRequest password change parameters
// UserChangePasswordRequest 修改密码参数
type UserChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" form:"oldPassword" binding:"required"`         // 旧密码
	Password        string `json:"password" form:"password" binding:"required,min=6"`        // 新密码
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"` // 确认新密码
}
