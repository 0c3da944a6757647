// internal/db/database.go
package db

import (
	"fmt"
	"strings"
	"time"

	"carsales-service/internal/domain/auth"
	"carsales-service/internal/domain/image"
	"carsales-service/internal/domain/message"
	"carsales-service/internal/domain/party"
	"carsales-service/internal/domain/sale"
	"carsales-service/internal/domain/vehicle"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Type     string // postgres, mysql or sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string // database name, or file/URI for sqlite
	SSLMode  string
	// PGDriver selects the database/sql driver behind the postgres dialect:
	// "pgx" (default) or "postgres" for lib/pq.
	PGDriver     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	LogLevel     string
}

// Connect opens the configured database and applies pool settings.
func Connect(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, orDefault(cfg.Port, "5432"), orDefault(cfg.SSLMode, "disable"))
		dialector = postgres.New(postgres.Config{
			DSN:        dsn,
			DriverName: orDefault(cfg.PGDriver, "pgx"),
		})

	case "mysql", "mariadb":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
			cfg.User, cfg.Password, cfg.Host, orDefault(cfg.Port, "3306"), cfg.Name)
		dialector = mysql.Open(dsn)

	case "sqlite":
		dialector = sqlite.Open(cfg.Name)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	if strings.EqualFold(cfg.Type, "sqlite") {
		// a single connection keeps shared in-memory databases consistent
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connected", zap.String("type", cfg.Type), zap.String("name", cfg.Name))
	return gdb, nil
}

// Models lists every table the service owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&party.Address{},
		&party.Client{},
		&party.Employee{},
		&vehicle.MotorVehicle{},
		&vehicle.Car{},
		&vehicle.Motorcycle{},
		&sale.Sale{},
		&message.Message{},
		&image.VehicleImage{},
		&auth.User{},
		&auth.BlacklistedToken{},
	}
}

// AutoMigrate creates or updates the schema for all models
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(log *zap.Logger, level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
