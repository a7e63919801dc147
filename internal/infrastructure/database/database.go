package database

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"koita-chat-api/internal/infrastructure/logger"
)

// Config holds database configuration
type Config struct {
	DatabaseURL string
	ReadReplica string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration
func Connect(cfg Config) (*gorm.DB, error) {
	log := logger.GetLogger()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		Logger:         gormlogger.Default.LogMode(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Error().
			Str("error_code", "5c16fb53-d98c-4fc6-8bb4-9abd3c0b9e88").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	if cfg.ReadReplica != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReadReplica)},
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxIdleConns(cfg.MaxIdle).
			SetMaxOpenConns(cfg.MaxOpen).
			SetConnMaxLifetime(cfg.MaxLifetime))
		if err != nil {
			log.Error().
				Str("error_code", "8a3e4f71-2b9c-4d05-a6e1-7f3c2b8d9e40").
				Err(err).
				Msg("unable to register read replica")
			return nil, err
		}
		log.Info().Msg("read replica registered")
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info().Msg("Successfully connected to database")
	return db, nil
}

// Ping checks the primary connection.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
