package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"guestgallery/cache"
	"guestgallery/database"
	"guestgallery/events"
	"guestgallery/media"
	"guestgallery/models"
	"guestgallery/scan"
)

const requestTimeout = 10 * time.Second

// Gallery holds the stores and optional collaborators the handlers work with.
type Gallery struct {
	records *database.Records
	media   media.Store
	listing *cache.Cache[models.ImageRecord]
	saves   cache.Generation
	events  events.Publisher
	scanner scan.Scanner

	folder        string
	presignTTL    time.Duration
	sessionSecret string
}

type Option func(*Gallery)

// WithListingCache keeps the record listing in c between saves.
func WithListingCache(c *cache.Cache[models.ImageRecord]) Option {
	return func(g *Gallery) { g.listing = c }
}

// WithSaveGeneration shares the save counter that guards the listing cache, so that
// instances behind one cache see each other's saves.
func WithSaveGeneration(gen cache.Generation) Option {
	return func(g *Gallery) { g.saves = gen }
}

func WithPublisher(p events.Publisher) Option {
	return func(g *Gallery) { g.events = p }
}

func WithScanner(s scan.Scanner) Option {
	return func(g *Gallery) { g.scanner = s }
}

func WithFolder(folder string) Option {
	return func(g *Gallery) { g.folder = folder }
}

// WithPresign adds a signed URL valid for ttl to every listed image.
func WithPresign(ttl time.Duration) Option {
	return func(g *Gallery) { g.presignTTL = ttl }
}

func WithSessionSecret(secret string) Option {
	return func(g *Gallery) { g.sessionSecret = secret }
}

func NewGallery(records *database.Records, store media.Store, opts ...Option) *Gallery {
	g := &Gallery{
		records: records,
		media:   store,
		saves:   &cache.LocalGeneration{},
		events:  events.Noop{},
		scanner: scan.Noop{},
		folder:  "wedding-gallery",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ListImages returns every record newest first, with signed URLs when enabled.
func (g *Gallery) ListImages(ctx context.Context) ([]models.ImageResponse, error) {
	records, ok := g.cachedListing(ctx)
	if !ok {
		generation, genErr := g.saves.Current(ctx)
		var err error
		records, err = g.records.ListAllDescending(ctx)
		if err != nil {
			return nil, err
		}
		if g.listing != nil && genErr == nil {
			g.cacheListing(ctx, generation, records)
		}
	}
	return g.responses(ctx, records), nil
}

// cacheListing stores records read at generation unless a save happened since. A save
// that lands between the check and the write is caught by the second check.
func (g *Gallery) cacheListing(ctx context.Context, generation int64, records []models.ImageRecord) {
	if !g.generationIs(ctx, generation) {
		slog.Debug("skipping listing cache, a save happened during the read")
		return
	}
	if err := g.listing.Save(ctx, records); err != nil {
		slog.Warn("failed to cache image listing", "error", err)
		return
	}
	if !g.generationIs(ctx, generation) {
		if err := g.listing.Invalidate(ctx); err != nil {
			slog.Warn("failed to invalidate image listing", "error", err)
		}
	}
}

func (g *Gallery) generationIs(ctx context.Context, generation int64) bool {
	current, err := g.saves.Current(ctx)
	return err == nil && current == generation
}

// StaleImages is the last cached listing regardless of age, for when the store is down.
func (g *Gallery) StaleImages(ctx context.Context) ([]models.ImageResponse, bool) {
	if g.listing == nil {
		return nil, false
	}
	records, ok := g.listing.LoadStale(ctx)
	if !ok {
		return nil, false
	}
	return g.responses(ctx, records), true
}

func (g *Gallery) cachedListing(ctx context.Context) ([]models.ImageRecord, bool) {
	if g.listing == nil {
		return nil, false
	}
	return g.listing.Load(ctx)
}

func (g *Gallery) responses(ctx context.Context, records []models.ImageRecord) []models.ImageResponse {
	out := make([]models.ImageResponse, 0, len(records))
	for _, rec := range records {
		resp := models.ImageResponse{ImageRecord: rec}
		if g.presignTTL > 0 {
			signed, err := g.media.PresignURL(ctx, rec.AssetID, g.presignTTL)
			if err != nil {
				slog.Warn("error generating pre-signed URL", "asset_id", rec.AssetID, "error", err)
			} else {
				resp.SignedURL = signed
			}
		}
		out = append(out, resp)
	}
	return out
}

// CreateRecord persists the metadata of an uploaded asset and announces it.
func (g *Gallery) CreateRecord(ctx context.Context, req models.SaveImageRequest) (*models.ImageRecord, error) {
	rec, err := g.records.Create(ctx, req.URL, req.AssetID, req.ContributorName, req.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := g.saves.Bump(ctx); err != nil {
		slog.Warn("failed to bump listing generation", "error", err)
	}
	if g.listing != nil {
		if err := g.listing.Invalidate(ctx); err != nil {
			slog.Warn("failed to invalidate image listing", "error", err)
		}
	}
	if err := g.events.PublishImageSaved(ctx, *rec); err != nil {
		slog.Warn("[NATS] failed to publish image saved event", "asset_id", rec.AssetID, "error", err)
	}
	return rec, nil
}

// StoreAsset checks, scans and uploads one file to the media store.
func (g *Gallery) StoreAsset(ctx context.Context, filename string, body io.Reader, size int64, contributor, folder string) (*models.AssetInfo, error) {
	if err := media.CheckConstraints(filename, size); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(body, media.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := media.CheckConstraints(filename, int64(len(data))); err != nil {
		return nil, err
	}
	if err := g.scanner.Scan(ctx, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	contributor = strings.TrimSpace(contributor)
	if contributor == "" {
		contributor = models.DefaultContributor
	}
	if folder == "" {
		folder = g.folder
	}
	return g.media.Upload(ctx, media.Asset{
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
		Filename:    filename,
		ContentType: media.ContentTypeFor(filename),
		Context:     map[string]string{media.MetaContributor: contributor},
	}, folder)
}
