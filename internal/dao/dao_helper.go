package dao

import "strings"

// likeContains builds a case-insensitive substring LIKE pattern; pair it
// with LOWER() on the column.
// likeContains 构建不区分大小写的子串 LIKE 模式，需与列上的 LOWER() 搭配
func likeContains(keyword string) string {
	return "%" + strings.ToLower(keyword) + "%"
}
