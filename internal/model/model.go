// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Category":
		return db.AutoMigrate(Category{})

	case "Entry":
		return db.AutoMigrate(Entry{})

	case "WorkoutSession":
		return db.AutoMigrate(WorkoutSession{})

	case "WatchTimeDoc":
		return db.AutoMigrate(WatchTimeDoc{})
	}
	return nil
}

// AutoMigrateAll 迁移全部数据表
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Category", "Entry", "WorkoutSession", "WatchTimeDoc"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
