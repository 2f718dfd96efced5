package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "Page":
		return db.AutoMigrate(Page{})

	case "Block":
		return db.AutoMigrate(Block{})

	case "PageShare":
		return db.AutoMigrate(PageShare{})

	case "File":
		return db.AutoMigrate(File{})

	case "PageRevision":
		return db.AutoMigrate(PageRevision{})
	}
	return nil
}

// AutoMigrateAll migrates every table in dependency order.
// AutoMigrateAll 按依赖顺序迁移所有表
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"User", "Page", "Block", "PageShare", "File", "PageRevision"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
