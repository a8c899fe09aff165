package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"guestgallery/models"
)

// ImageStore is the persistence contract for image records. Implementations assign
// the record ID on Insert.
type ImageStore interface {
	Insert(ctx context.Context, rec *models.ImageRecord) error
	ListDescending(ctx context.Context) ([]models.ImageRecord, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Driver() string
}

// UpstreamError is returned when the backing store is unreachable or rejects a call.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("record store %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type Health struct {
	Driver string
	Count  int64
}

// Records is the append-only repository used by the API layer.
type Records struct {
	store ImageStore
	now   func() time.Time

	mu   sync.Mutex
	last time.Time
}

type RecordsOption func(*Records)

// WithClock replaces time.Now as the source of createdAt.
func WithClock(now func() time.Time) RecordsOption {
	return func(r *Records) { r.now = now }
}

func NewRecords(store ImageStore, opts ...RecordsOption) *Records {
	r := &Records{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create validates the fields, stamps createdAt and persists the record.
func (r *Records) Create(ctx context.Context, url, assetID, contributorName, filename string) (*models.ImageRecord, error) {
	rec, err := models.NewImageRecord(url, assetID, contributorName, filename)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = r.nextCreatedAt()

	if err := r.store.Insert(ctx, rec); err != nil {
		slog.Error("failed to insert image record", "driver", r.store.Driver(), "asset_id", assetID, "error", err)
		return nil, &UpstreamError{Op: "insert", Err: err}
	}
	return rec, nil
}

// ListAllDescending returns every record, newest first. The slice is never nil.
func (r *Records) ListAllDescending(ctx context.Context) ([]models.ImageRecord, error) {
	images, err := r.store.ListDescending(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "list", Err: err}
	}
	if images == nil {
		images = []models.ImageRecord{}
	}
	return images, nil
}

func (r *Records) Health(ctx context.Context) (Health, error) {
	h := Health{Driver: r.store.Driver()}
	if err := r.store.Ping(ctx); err != nil {
		return h, &UpstreamError{Op: "ping", Err: err}
	}
	count, err := r.store.Count(ctx)
	if err != nil {
		return h, &UpstreamError{Op: "count", Err: err}
	}
	h.Count = count
	return h, nil
}

func (r *Records) Close(ctx context.Context) error {
	return r.store.Close(ctx)
}

// nextCreatedAt keeps createdAt strictly increasing at millisecond precision, which is
// what both BSON dates and the SQL column can hold.
func (r *Records) nextCreatedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.now().UTC().Truncate(time.Millisecond)
	if !t.After(r.last) {
		t = r.last.Add(time.Millisecond)
	}
	r.last = t
	return t
}
