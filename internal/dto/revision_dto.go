package dto

// RevisionListRequest page revision listing parameters
// RevisionListRequest 页面版本列表参数
type RevisionListRequest struct {
	PageID int64 `json:"pageId" form:"pageId" binding:"required"` // 页面 ID
	Limit  int   `json:"limit" form:"limit"`                      // 返回数量上限，0 表示不限制
}
