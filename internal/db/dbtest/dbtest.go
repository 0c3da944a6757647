// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"strings"

	"carsales-service/internal/db"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenMemory returns a migrated, isolated in-memory sqlite database. The
// name keeps parallel callers apart.
func OpenMemory(name string) (*gorm.DB, error) {
	safe := strings.NewReplacer("/", "_", " ", "_").Replace(name)
	gdb, err := db.Connect(db.Config{
		Type:     "sqlite",
		Name:     "file:" + safe + "?mode=memory&cache=shared",
		LogLevel: "silent",
	}, zap.NewNop())
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}
