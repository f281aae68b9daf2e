package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func Connect(databaseURL string, log *logrus.Logger) (*sql.DB, error) {
	logSafeDatabaseURL(databaseURL, log)

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	log.Info("Database connection established successfully")
	return db, nil
}

// logSafeDatabaseURL logs the database URL without exposing credentials
func logSafeDatabaseURL(databaseURL string, log *logrus.Logger) {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		log.Warn("Database: connecting to database (URL parse error)")
		return
	}

	safeURL := &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
	}
	if parsed.User != nil {
		if username := parsed.User.Username(); username != "" {
			safeURL.User = url.User(username)
		}
	}
	if parsed.RawQuery != "" {
		safeURL.RawQuery = parsed.RawQuery
	}

	log.Infof("Database: connecting to %s", safeURL.String())
}
