package dto

// PageListRequest owned page listing parameters
// PageListRequest 用户页面列表参数
type PageListRequest struct {
	Status string `json:"status" form:"status" binding:"omitempty,oneof=active deleted"` // 生命周期状态，默认 active
}

// PageGetRequest single page fetch parameters
// PageGetRequest 获取单个页面参数
type PageGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // 页面 ID
}

// PageCreateRequest page creation parameters
// PageCreateRequest 创建页面参数
type PageCreateRequest struct {
	Title      string `json:"title" form:"title"`                                                  // 标题，空则使用 Untitled
	Icon       string `json:"icon" form:"icon"`                                                    // 图标
	Visibility string `json:"visibility" form:"visibility" binding:"omitempty,oneof=private shared"` // 可见性，默认 private
}

// PageUpdateRequest page update parameters
// PageUpdateRequest 更新页面参数
type PageUpdateRequest struct {
	ID         int64   `json:"id" form:"id" binding:"required"`                                       // 页面 ID
	Title      *string `json:"title" form:"title"`                                                    // 标题
	Icon       *string `json:"icon" form:"icon"`                                                      // 图标
	Visibility *string `json:"visibility" form:"visibility" binding:"omitempty,oneof=private shared"` // 可见性
}

// PageDeleteRequest page deletion parameters; Force permits the
// irreversible hard delete.
// PageDeleteRequest 删除页面参数，Force 允许不可逆的物理删除
type PageDeleteRequest struct {
	ID    int64  `json:"id" form:"id" binding:"required"` // 页面 ID
	Force string `json:"force" form:"force"`              // 传 true 时物理删除并级联删除块
}

// PageStatusRequest soft-delete / restore parameters
// PageStatusRequest 软删除/恢复参数
type PageStatusRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // 页面 ID
}

// PageSearchRequest search parameters
// PageSearchRequest 搜索参数
type PageSearchRequest struct {
	Query string `json:"q" form:"q"` // 关键词
}
