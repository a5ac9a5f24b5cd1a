package db

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/suivi-dev/suivi/internal/authz"
	"github.com/suivi-dev/suivi/internal/config"
	"github.com/suivi-dev/suivi/internal/models"
)

// Connect opens the database described by cfg. Postgres is the production
// driver; sqlite exists for local setups and tests.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey so handlers can map them to 409
	database, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger, TranslateError: true})

	if err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate creates missing tables for all models.
func Migrate(database *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Session{},
		&models.Project{},
		&models.Partner{},
		&models.Convention{},
		&models.ProjectPartner{},
		&models.ConventionProject{},
		&models.FinancialAdvance{},
		&models.AuditLog{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdmin creates the configured admin account if it does not exist yet.
// With an empty password the seed is skipped entirely.
func SeedAdmin(database *gorm.DB, cfg config.SeedConfig, bcryptCost int) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64

	if err := database.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcryptCost)

	if err != nil {
		return err
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         string(authz.RoleAdmin),
	}

	return database.Create(&admin).Error
}
