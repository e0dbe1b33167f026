package db

import (
	"fmt"

	"movein-app-go/internal/config"
	"movein-app-go/internal/domain/categories"
	"movein-app-go/internal/domain/expenses"
	"movein-app-go/internal/domain/projects"
	"movein-app-go/internal/domain/push"
	"movein-app-go/internal/domain/todos"
	"movein-app-go/internal/domain/user"
	"movein-app-go/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPostgres(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	log.Info("db: connected")
	return gormDB, nil
}

// AutoMigrate keeps the relational schema in step with the entity shapes.
func AutoMigrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&user.User{},
		&projects.Project{},
		&projects.Member{},
		&projects.Note{},
		&categories.Category{},
		&todos.Todo{},
		&expenses.Expense{},
		&push.Subscription{},
	)
}
