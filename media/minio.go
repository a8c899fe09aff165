package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guestgallery/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type MinioStore struct {
	client *minio.Client
	bucket string
	useSSL bool
}

func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinioStore{client: client, bucket: opts.Bucket, useSSL: opts.UseSSL}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	slog.Info("[media] connected to MinIO", "endpoint", opts.Endpoint, "bucket", opts.Bucket)
	return store, nil
}

func (m *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		slog.Info("[media] created bucket", "bucket", m.bucket)
	}
	return nil
}

func (m *MinioStore) Driver() string { return "minio" }

func (m *MinioStore) Upload(ctx context.Context, asset Asset, folder string) (*models.AssetInfo, error) {
	if err := CheckConstraints(asset.Filename, asset.Size); err != nil {
		return nil, err
	}
	key := NewAssetID(folder, asset.Filename)

	contentType := asset.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(asset.Filename)
	}

	_, err := m.client.PutObject(ctx, m.bucket, key, asset.Body, asset.Size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: headerMetadata(asset),
	})
	if err != nil {
		slog.Error("[media] minio put object failed", "key", key, "error", err)
		return nil, rejected(err)
	}

	return &models.AssetInfo{
		URL:              m.publicURL(key),
		AssetID:          key,
		OriginalFilename: asset.Filename,
	}, nil
}

func (m *MinioStore) ListByFolder(ctx context.Context, prefix string, maxResults int) ([]Descriptor, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	// cancelling stops the listing goroutine once enough objects were read
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objectsCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	descriptors := []Descriptor{}
	for object := range objectsCh {
		if object.Err != nil {
			return nil, object.Err
		}
		if object.Key == "" || strings.HasSuffix(object.Key, "/") {
			continue
		}

		info, err := m.client.StatObject(ctx, m.bucket, object.Key, minio.StatObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata of %s: %w", object.Key, err)
		}
		meta := lowerKeys(info.UserMetadata)

		descriptors = append(descriptors, Descriptor{
			AssetID:   object.Key,
			URL:       m.publicURL(object.Key),
			Filename:  descriptorFilename(object.Key, meta),
			CreatedAt: object.LastModified,
			Context:   meta,
		})
		if len(descriptors) >= maxResults {
			break
		}
	}
	return descriptors, nil
}

func (m *MinioStore) PresignURL(ctx context.Context, assetID string, ttl time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, assetID, ttl, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (m *MinioStore) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}

func (m *MinioStore) publicURL(key string) string {
	scheme := "http"
	if m.useSSL {
		scheme = "https"
	}
	endpoint := strings.TrimPrefix(m.client.EndpointURL().String(), scheme+"://")
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, m.bucket, key)
}
