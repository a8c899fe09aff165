package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"guestgallery/models"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLStore keeps image records in a single table. It serves both SQLite and Postgres;
// queries are written with '?' placeholders and rebound for Postgres.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	return &SQLStore{db: db, driver: "sqlite"}, nil
}

func NewPostgresStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, driver: "postgres"}, nil
}

// CreateSchema is idempotent.
func (s *SQLStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS images (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		asset_id TEXT NOT NULL,
		contributor_name TEXT NOT NULL,
		filename TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create images table: %w", err)
	}
	return nil
}

func (s *SQLStore) Driver() string { return s.driver }

func (s *SQLStore) Insert(ctx context.Context, rec *models.ImageRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO images (id, url, asset_id, contributor_name, filename, created_at) VALUES (?, ?, ?, ?, ?, ?)"),
		rec.ID, rec.URL, rec.AssetID, rec.ContributorName, rec.Filename, rec.CreatedAt.UnixMilli())
	return err
}

func (s *SQLStore) ListDescending(ctx context.Context) ([]models.ImageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, url, asset_id, contributor_name, filename, created_at FROM images ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	images := []models.ImageRecord{}
	for rows.Next() {
		var img models.ImageRecord
		var createdAt int64
		if err := rows.Scan(&img.ID, &img.URL, &img.AssetID, &img.ContributorName, &img.Filename, &createdAt); err != nil {
			return nil, err
		}
		img.CreatedAt = time.UnixMilli(createdAt).UTC()
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *SQLStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images").Scan(&count)
	return count, err
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close(context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
