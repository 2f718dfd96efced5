package model

import (
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// File is a plain-text attachment searched alongside pages.
// File 是与页面一起参与搜索的纯文本附件
type File struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UID         int64      `gorm:"column:uid;index"`
	Name        string     `gorm:"column:name;size:512;index"`
	Content     string     `gorm:"column:content;type:text"`
	Size        int64      `gorm:"column:size;default:0"`
	SavePath    string     `gorm:"column:save_path;size:1024"`
	StorageType string     `gorm:"column:storage_type;size:16"`
	CreatedAt   timex.Time `gorm:"column:created_at"`
	UpdatedAt   timex.Time `gorm:"column:updated_at"`
}
