package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shootboard/config"
	"shootboard/models"
)

// DefaultCrewTypes is the vocabulary seeded into an empty crew_types table.
var DefaultCrewTypes = []string{
	"Actor",
	"Art Director",
	"Boom Operator",
	"Camera Operator",
	"Director",
	"Director of Photography",
	"Editor",
	"Gaffer",
	"Grip",
	"Hair and Makeup",
	"Producer",
	"Production Assistant",
	"Script Supervisor",
	"Sound Mixer",
	"Wardrobe",
}

// Open connects, migrates the schema and optionally seeds crew types.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg.LogLevel, log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// in-memory databases live and die with a single connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.SeedCrewTypes {
		if err := SeedCrewTypes(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate registers the join models and auto-migrates every table.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "CrewTypes", &models.UserCrewType{}); err != nil {
		return fmt.Errorf("setup user_crew_types: %w", err)
	}
	if err := db.SetupJoinTable(&models.FilmShoot{}, "RequestedCrewTypes", &models.ShootCrewTypeRequested{}); err != nil {
		return fmt.Errorf("setup shoot_crew_types_requested: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.CrewType{},
		&models.FilmProject{},
		&models.FilmShoot{},
		&models.UserCrewType{},
		&models.ShootCrewTypeRequested{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func SeedCrewTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.CrewType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	crewTypes := make([]models.CrewType, 0, len(DefaultCrewTypes))
	for _, name := range DefaultCrewTypes {
		crewTypes = append(crewTypes, models.CrewType{Name: name})
	}
	if err := db.Create(&crewTypes).Error; err != nil {
		return fmt.Errorf("seed crew types: %w", err)
	}
	return nil
}

func newGormLogger(level string, log *zap.Logger) gormlogger.Interface {
	lvl := gormlogger.Warn
	switch level {
	case "silent":
		lvl = gormlogger.Silent
	case "error":
		lvl = gormlogger.Error
	case "info":
		lvl = gormlogger.Info
	}
	return gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
