package connection

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"disasterreport/config"
	"disasterreport/repository"
)

// DBConnection opens the SQL database behind the user directory.
func DBConnection(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch cfg.UserStore {
	case config.UserStoreMySQL:
		return gorm.Open(mysql.Open(cfg.MySQLDSN), gormCfg)
	case config.UserStoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, err
		}
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}
	return nil, fmt.Errorf("user store %q is not backed by a database", cfg.UserStore)
}

// UserRepository picks the user directory backend. The returned close func is never nil.
func UserRepository(cfg config.Config) (repository.UserRepository, func() error, error) {
	if cfg.UserStore == config.UserStoreMemory {
		return repository.NewMemoryUserRepository(), func() error { return nil }, nil
	}

	db, err := DBConnection(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.UserStore, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	repo, err := repository.NewGormUserRepository(db)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate users: %w", err)
	}
	return repo, sqlDB.Close, nil
}
