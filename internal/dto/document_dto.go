package dto

// DocumentNode is one node of the editable rich-text document tree. The
// shape mirrors the editor's JSON serialization: a doc node contains
// top-level element nodes, element nodes contain nested nodes and text.
// DocumentNode 是可编辑富文本文档树的一个节点
type DocumentNode struct {
	Type    string          `json:"type"`
	Attrs   map[string]any  `json:"attrs,omitempty"`
	Content []*DocumentNode `json:"content,omitempty"`
	Text    string          `json:"text,omitempty"`
}

// DocumentGetRequest composed document fetch parameters
// DocumentGetRequest 获取合成文档参数
type DocumentGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // 页面 ID
}

// DocumentSaveRequest document save parameters; the document replaces the
// page's block set.
// DocumentSaveRequest 文档保存参数，文档将整体替换页面的块集合
type DocumentSaveRequest struct {
	PageID   int64         `json:"pageId" binding:"required"` // 页面 ID
	Document *DocumentNode `json:"document"`                  // 文档树，空文档跳过保存
}
