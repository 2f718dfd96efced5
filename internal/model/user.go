package model

import (
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// User account record
// User 用户账号记录
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement"`
	Email     string     `gorm:"column:email;size:255;uniqueIndex"`
	Username  string     `gorm:"column:username;size:64;uniqueIndex"`
	Nickname  string     `gorm:"column:nickname;size:64"`
	Password  string     `gorm:"column:password;size:255"`
	Avatar    string     `gorm:"column:avatar;size:255"`
	IsDeleted int        `gorm:"column:is_deleted;default:0"`
	CreatedAt timex.Time `gorm:"column:created_at"`
	UpdatedAt timex.Time `gorm:"column:updated_at"`
}
