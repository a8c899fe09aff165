package database

import (
	"context"
	"fmt"
	"log/slog"

	"guestgallery/media"
)

type Options struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string
	PostgresDSN   string

	// store-only mode
	Media       media.Store
	MediaFolder string
	MaxResults  int
}

// Open builds the record store selected by opts.Driver and makes sure its schema exists.
func Open(ctx context.Context, opts Options) (ImageStore, error) {
	switch opts.Driver {
	case "mongo":
		return Connect(opts.MongoURI, opts.MongoDatabase)
	case "sqlite":
		store, err := NewSQLiteStore(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return withSchema(ctx, store)
	case "postgres":
		store, err := NewPostgresStore(opts.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return withSchema(ctx, store)
	case "media":
		if opts.Media == nil {
			return nil, fmt.Errorf("store-only mode needs a media store")
		}
		return NewMediaStore(opts.Media, opts.MediaFolder, opts.MaxResults), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", opts.Driver)
	}
}

func withSchema(ctx context.Context, store *SQLStore) (ImageStore, error) {
	slog.Info("initializing database schema (ensuring tables exist)", "driver", store.Driver())
	if err := store.CreateSchema(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, err
	}
	return store, nil
}
