package dto

// FileUploadRequest plain-text file upload parameters
// FileUploadRequest 纯文本文件上传参数
type FileUploadRequest struct {
	Name    string `json:"name" form:"name" binding:"required"` // 文件名
	Content string `json:"content" form:"content"`              // 文本内容
}

// FileGetRequest single file fetch parameters
// FileGetRequest 获取单个文件参数
type FileGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // 文件 ID
}

// FileDeleteRequest file deletion parameters
// FileDeleteRequest 删除文件参数
type FileDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // 文件 ID
}
