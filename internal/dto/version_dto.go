package dto

// VersionDTO server version response
// VersionDTO 服务端版本响应
type VersionDTO struct {
	Version        string `json:"version"`        // 当前运行版本
	GitTag         string `json:"gitTag"`         // 构建 Git 标签
	BuildTime      string `json:"buildTime"`      // 构建时间
	VersionIsNew   bool   `json:"versionIsNew"`   // 是否存在更新版本
	VersionNewName string `json:"versionNewName"` // 更新版本号
	VersionNewLink string `json:"versionNewLink"` // 更新版本下载链接
}
