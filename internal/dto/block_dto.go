package dto

// BlockListRequest page block listing parameters
// BlockListRequest 页面内容块列表参数
type BlockListRequest struct {
	PageID int64 `json:"pageId" form:"pageId" binding:"required"` // 页面 ID
}

// BlockCreateRequest block creation parameters
// BlockCreateRequest 创建内容块参数
type BlockCreateRequest struct {
	PageID  int64  `json:"pageId" form:"pageId" binding:"required"`                                              // 页面 ID
	Type    string `json:"type" form:"type" binding:"required,oneof=text heading list todo image code quote divider"` // 块类型
	Content string `json:"content" form:"content"`                                                               // 内容，默认空串
	Order   *int   `json:"order" form:"order"`                                                                   // 排序值，默认 0
}

// BlockUpdateRequest block patch parameters; nil fields stay unchanged
// BlockUpdateRequest 更新内容块参数，nil 字段保持不变
type BlockUpdateRequest struct {
	ID        int64   `json:"id" form:"id" binding:"required"`                                                       // 块 ID
	Type      *string `json:"type" form:"type" binding:"omitempty,oneof=text heading list todo image code quote divider"` // 块类型
	Content   *string `json:"content" form:"content"`                                                                // 内容
	Completed *bool   `json:"completed" form:"completed"`                                                            // 完成标记（todo）
}

// BlockDeleteRequest block deletion parameters
// BlockDeleteRequest 删除内容块参数
type BlockDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // 块 ID
}

// BlockOrderItem one reorder assignment entry
// BlockOrderItem 排序分配项
type BlockOrderItem struct {
	ID    int64 `json:"id" binding:"required"` // 块 ID
	Order int   `json:"order"`                 // 新排序值
}

// BlockReorderRequest full reorder assignment for one page
// BlockReorderRequest 页面块重排序参数
type BlockReorderRequest struct {
	PageID      int64             `json:"pageId" binding:"required"`           // 页面 ID
	BlockOrders []*BlockOrderItem `json:"blockOrders" binding:"required,dive"` // 排序分配
}
