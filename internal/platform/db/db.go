package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database wraps connectivity to the relational store.
// Keep transaction helpers here to support outbox + state consistency.
type Database struct {
	DB *gorm.DB
}

// Connect opens the store described by dbURL. The URL scheme selects the
// dialect: mysql (deployment default) or postgres.
func Connect(dbURL string) (*Database, error) {
	if dbURL == "" {
		return nil, errors.New("db url is required")
	}

	dialector, err := dialectorFor(dbURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm %s: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", dialector.Name(), err)
	}
	return &Database{DB: db}, nil
}

// Migrate creates or updates the schema for the given row models.
func (d *Database) Migrate(models ...any) error {
	return d.DB.AutoMigrate(models...)
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(dbURL string) (gorm.Dialector, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	switch {
	case strings.HasPrefix(parsed.Scheme, "mysql"):
		return mysql.Open(mysqlDSN(parsed)), nil
	case strings.HasPrefix(parsed.Scheme, "postgres"):
		return postgres.Open(dbURL), nil
	case parsed.Scheme == "":
		// Already in go-sql-driver format.
		return mysql.Open(dbURL), nil
	default:
		return nil, fmt.Errorf("unsupported db url scheme %q", parsed.Scheme)
	}
}

// mysqlDSN rewrites a mysql:// URL into the go-sql-driver format,
// keeping time columns readable as time.Time.
func mysqlDSN(u *url.URL) string {
	auth := u.User.Username()
	if password, ok := u.User.Password(); ok {
		auth += ":" + password
	}

	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}

	name := strings.TrimPrefix(u.Path, "/")
	return fmt.Sprintf("%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", auth, host, name)
}
