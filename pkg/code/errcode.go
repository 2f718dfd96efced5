package code

// Common codes
// 通用状态码
var (
	Success = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	Failed  = NewError(1, lang{en: "Failed", zh_cn: "失败"})

	SuccessPasswordUpdate = NewSuss(2, lang{en: "Password updated successfully", zh_cn: "密码修改成功"})
)

// Server-level codes
// 服务级状态码
var (
	ErrorServerInternal  = NewError(10000000, lang{en: "Server internal error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10000001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(10000002, lang{en: "Not found api", zh_cn: "未找到接口"})
	ErrorTooManyRequests = NewError(10000003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout  = NewError(10000004, lang{en: "Request timeout", zh_cn: "请求超时"})
	ErrorDBQuery         = NewError(10000005, lang{en: "Database query error", zh_cn: "数据库查询错误"})

	ErrorInvalidStorageType = NewError(10000006, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
	ErrorUploadFileFailed   = NewError(10000007, lang{en: "Upload file failed", zh_cn: "上传文件失败"})
)

// User codes
// 用户状态码
var (
	ErrorNotUserAuthToken      = NewError(10010000, lang{en: "Missing user authorization token", zh_cn: "缺少用户授权令牌"})
	ErrorInvalidUserAuthToken  = NewError(10010001, lang{en: "Invalid user authorization token", zh_cn: "无效的用户授权令牌"})
	ErrorUserRegisterDisabled  = NewError(10010002, lang{en: "User registration is disabled", zh_cn: "用户注册已关闭"})
	ErrorUserNameInvalid       = NewError(10010003, lang{en: "Username must be 3-20 characters of letters, digits or underscores", zh_cn: "用户名必须是 3-20 位的字母、数字或下划线"})
	ErrorUserEmailExists       = NewError(10010004, lang{en: "Email already registered", zh_cn: "邮箱已被注册"})
	ErrorUserNameExists        = NewError(10010005, lang{en: "Username already taken", zh_cn: "用户名已被占用"})
	ErrorUserPasswordNotMatch  = NewError(10010006, lang{en: "Passwords do not match", zh_cn: "两次输入的密码不一致"})
	ErrorUserLoginFailed       = NewError(10010007, lang{en: "Incorrect account or password", zh_cn: "账号或密码错误"})
	ErrorUserNotExist          = NewError(10010008, lang{en: "User does not exist", zh_cn: "用户不存在"})
	ErrorUserOldPasswordFailed = NewError(10010009, lang{en: "Old password is incorrect", zh_cn: "旧密码不正确"})
	ErrorUserTokenGenerate     = NewError(10010010, lang{en: "Generate user token failed", zh_cn: "生成用户令牌失败"})
)

// Page codes
// 页面状态码
var (
	ErrorPageNotFound        = NewError(10020000, lang{en: "Page not found", zh_cn: "页面不存在"})
	ErrorPageDeleteNotForced = NewError(10020001, lang{en: "Use force=true to permanently delete a page", zh_cn: "永久删除页面需要传入 force=true"})
	ErrorSearchQueryRequired = NewError(10020002, lang{en: "Query is required", zh_cn: "搜索关键词不能为空"})
)

// Block codes
// 内容块状态码
var (
	ErrorBlockNotFound = NewError(10030000, lang{en: "Block not found", zh_cn: "内容块不存在"})
)

// File codes
// 文件状态码
var (
	ErrorFileNotFound = NewError(10050000, lang{en: "File not found", zh_cn: "文件不存在"})
)

// Share codes
// 分享状态码
var (
	ErrorShareUserNotFound = NewError(10060000, lang{en: "User to share with not found", zh_cn: "被分享的用户不存在"})
	ErrorShareSelf         = NewError(10060001, lang{en: "Cannot share a page with yourself", zh_cn: "不能将页面分享给自己"})
	ErrorShareNotFound     = NewError(10060002, lang{en: "Share record not found", zh_cn: "分享记录不存在"})
)

// Revision codes
// 版本状态码
var (
	ErrorRevisionNotFound = NewError(10070000, lang{en: "Revision not found", zh_cn: "页面版本不存在"})
)

// Admin codes
// 管理状态码
var (
	ErrorUserIsNotAdmin   = NewError(10080000, lang{en: "Admin privileges required", zh_cn: "需要管理员权限"})
	ErrorConfigSaveFailed = NewError(10080001, lang{en: "Save configuration failed", zh_cn: "保存配置失败"})
)
