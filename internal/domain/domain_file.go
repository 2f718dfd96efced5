package domain

import "time"

// File 文件领域模型
type File struct {
	ID          int64
	UID         int64
	Name        string
	Content     string
	Size        int64
	SavePath    string
	StorageType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
