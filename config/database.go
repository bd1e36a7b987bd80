package config

import (
	"fmt"

	"hotel/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB mở kết nối postgres và migrate các bảng.
func ConnectDB(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	if err := store.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("fail to migrate tables: %w", err)
	}

	return db, nil
}
