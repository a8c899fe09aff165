package database

import (
	"context"
	"slices"

	"guestgallery/media"
	"guestgallery/models"
)

// MediaStore is the store-only mode: records are read straight from the media store
// listing. The contributor is part of the asset context written at upload time, so
// Insert only acknowledges the record.
type MediaStore struct {
	media      media.Store
	prefix     string
	maxResults int
}

func NewMediaStore(store media.Store, folder string, maxResults int) *MediaStore {
	return &MediaStore{media: store, prefix: media.FolderPrefix(folder), maxResults: maxResults}
}

func (m *MediaStore) Driver() string { return "media" }

func (m *MediaStore) Insert(_ context.Context, rec *models.ImageRecord) error {
	if rec.ID == "" {
		rec.ID = rec.AssetID
	}
	return nil
}

func (m *MediaStore) ListDescending(ctx context.Context) ([]models.ImageRecord, error) {
	descriptors, err := m.media.ListByFolder(ctx, m.prefix, m.maxResults)
	if err != nil {
		return nil, err
	}

	images := make([]models.ImageRecord, 0, len(descriptors))
	for _, d := range descriptors {
		images = append(images, RecordFromDescriptor(d))
	}
	slices.SortStableFunc(images, func(a, b models.ImageRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return images, nil
}

func (m *MediaStore) Count(ctx context.Context) (int64, error) {
	descriptors, err := m.media.ListByFolder(ctx, m.prefix, m.maxResults)
	if err != nil {
		return 0, err
	}
	return int64(len(descriptors)), nil
}

func (m *MediaStore) Ping(ctx context.Context) error {
	return m.media.Ping(ctx)
}

func (m *MediaStore) Close(context.Context) error { return nil }

// RecordFromDescriptor maps a raw media listing entry onto the record shape.
func RecordFromDescriptor(d media.Descriptor) models.ImageRecord {
	contributor := d.Context[media.MetaContributor]
	if contributor == "" {
		contributor = models.DefaultContributor
	}
	return models.ImageRecord{
		ID:              d.AssetID,
		URL:             d.URL,
		AssetID:         d.AssetID,
		ContributorName: contributor,
		Filename:        d.Filename,
		CreatedAt:       d.CreatedAt.UTC(),
	}
}
