package media

import (
	"context"
	"fmt"
)

type Options struct {
	Driver string
	S3     S3Options
	Minio  MinioOptions
}

// Open builds the media store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "s3":
		return NewS3Store(ctx, opts.S3)
	case "minio":
		return NewMinioStore(ctx, opts.Minio)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}
