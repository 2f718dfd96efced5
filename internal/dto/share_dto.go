package dto

// ShareCreateRequest share a page with another user by email
// ShareCreateRequest 按邮箱将页面分享给其他用户
type ShareCreateRequest struct {
	PageID int64  `json:"pageId" form:"pageId" binding:"required"` // 页面 ID
	Email  string `json:"email" form:"email" binding:"required,email"` // 被分享用户邮箱
}

// ShareDeleteRequest revoke a share
// ShareDeleteRequest 取消分享
type ShareDeleteRequest struct {
	PageID int64  `json:"pageId" form:"pageId" binding:"required"` // 页面 ID
	Email  string `json:"email" form:"email" binding:"required,email"` // 被分享用户邮箱
}
