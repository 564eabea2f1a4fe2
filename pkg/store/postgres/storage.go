package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type Settings struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	db, err := sql.Open("postgres", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if settings.MaxOpenConns > 0 {
		// a report fans out up to eight queries at once
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}
	return db, nil
}
