package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	symboladapters "stock_compare/internal/feature/symbollist/adapters"
	"stock_compare/internal/feature/symbollist/domain/entity"
)

// Config holds database connection settings.
type Config struct {
	Driver       string // "mysql" (default), "postgres" or "sqlite"
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	Path         string // sqlite file path
	InstanceName string // Cloud SQL instance connection name
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:       os.Getenv("DB_DRIVER"),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		Path:         os.Getenv("DB_PATH"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
	if cfg.Driver == "" {
		cfg.Driver = "mysql"
	}
	if cfg.Path == "" {
		cfg.Path = "./stock_compare.db"
	}
	return cfg
}

// BuildDSN builds a MySQL DSN, preferring a Cloud SQL Unix socket when an
// instance connection name is configured.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// BuildPostgresDSN builds a key/value DSN for the pgx-backed gorm driver.
func BuildPostgresDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// dsnAndOpener はドライバー設定に応じたDSNとオープナーを返します。
func dsnAndOpener(cfg Config) (string, func(dsn string) (*gorm.DB, error)) {
	switch cfg.Driver {
	case "sqlite":
		return cfg.Path, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gsqlite.Open(dsn), &gorm.Config{})
		}
	case "postgres":
		return BuildPostgresDSN(cfg), func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		}
	default:
		return BuildDSN(cfg), func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		}
	}
}

// ConnectWithRetry attempts to connect to the database, retrying every
// 3 seconds until the timeout elapses. The opener is injected so tests
// can exercise the retry loop without a real database.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(dsn string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB opens the configured database, retrying for up to 60 seconds
// so the service survives a database that is still starting up.
// When RUN_MIGRATIONS=true it also migrates and seeds the symbol catalog.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()
	dsn, opener := dsnAndOpener(cfg)

	db, err := ConnectWithRetry(dsn, 60*time.Second, opener)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（Symbol）
		if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
		// 比較画面のプルダウン用に初期銘柄を投入
		if err := symboladapters.SeedDefaults(db); err != nil {
			log.Fatalf("failed to seed symbols: %v", err)
		}
	}

	return db
}
