package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guestgallery/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Options struct {
	Bucket string
	Region string
	// Endpoint overrides the AWS endpoint (S3 compatible services); enables path style.
	Endpoint string
	// PublicBaseURL replaces the default https://<bucket>.s3.<region>.amazonaws.com prefix.
	PublicBaseURL string
}

type S3Store struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	publicBaseURL string
}

func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &S3Store{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        opts.Bucket,
		region:        opts.Region,
		publicBaseURL: base,
	}, nil
}

func (s *S3Store) Driver() string { return "s3" }

func (s *S3Store) Upload(ctx context.Context, asset Asset, folder string) (*models.AssetInfo, error) {
	if err := CheckConstraints(asset.Filename, asset.Size); err != nil {
		return nil, err
	}
	key := NewAssetID(folder, asset.Filename)

	contentType := asset.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(asset.Filename)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          asset.Body,
		ContentLength: aws.Int64(asset.Size),
		ContentType:   aws.String(contentType),
		Metadata:      headerMetadata(asset),
	})
	if err != nil {
		slog.Error("[media] s3 put object failed", "key", key, "error", err)
		return nil, rejected(err)
	}

	return &models.AssetInfo{
		URL:              s.publicURL(key),
		AssetID:          key,
		OriginalFilename: asset.Filename,
	}, nil
}

func (s *S3Store) ListByFolder(ctx context.Context, prefix string, maxResults int) ([]Descriptor, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(int32(min(maxResults, 1000))),
	})

	descriptors := []Descriptor{}
	for paginator.HasMorePages() && len(descriptors) < maxResults {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if len(descriptors) >= maxResults {
				break
			}
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}

			head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to read metadata of %s: %w", key, err)
			}
			meta := lowerKeys(head.Metadata)

			descriptors = append(descriptors, Descriptor{
				AssetID:   key,
				URL:       s.publicURL(key),
				Filename:  descriptorFilename(key, meta),
				CreatedAt: aws.ToTime(obj.LastModified),
				Context:   meta,
			})
		}
	}
	return descriptors, nil
}

func (s *S3Store) PresignURL(ctx context.Context, assetID string, ttl time.Duration) (string, error) {
	request, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(assetID),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", err
	}
	return request.URL, nil
}

func (s *S3Store) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func (s *S3Store) publicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
