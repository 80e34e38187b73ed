package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"

	"github.com/taiwoajasa245/daily-verse-api/pkg/config"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Migrate creates the schema if it does not exist yet.
	Migrate(ctx context.Context) error

	// Close terminates the database connection.
	Close() error

	// DB exposes the underlying handle for repositories.
	DB() *sql.DB
}

type service struct {
	db *sql.DB
}

func New(cfg *config.Config) Service {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSchema)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &service{db: db}
}

// NewWithDB wraps an already-open handle; used by tests that bring their
// own database.
func NewWithDB(db *sql.DB) Service {
	return &service{db: db}
}

// Health checks the health of the database connection by pinging it.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)

	return stats
}

func (s *service) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func (s *service) Close() error {
	log.Println("Disconnected from database")
	return s.db.Close()
}

func (s *service) DB() *sql.DB {
	return s.db
}

// schema is applied idempotently on startup. The unique constraints carry
// the two storage invariants: one verse per (book, chapter, verse) and at
// most one selection per date.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS verses (
		id         SERIAL PRIMARY KEY,
		book       VARCHAR(64) NOT NULL,
		chapter    INTEGER     NOT NULL CHECK (chapter > 0),
		verse      INTEGER     NOT NULL CHECK (verse > 0),
		text_kjv   TEXT        NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_book_chapter_verse UNIQUE (book, chapter, verse)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_selections (
		id         SERIAL PRIMARY KEY,
		date       DATE        NOT NULL,
		verse_id   INTEGER     NOT NULL REFERENCES verses (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_daily_selections_date UNIQUE (date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_selections_date ON daily_selections (date DESC)`,
}
