package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"slices"
	"strings"
	"time"

	"guestgallery/models"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is the ceiling the hosted upload widget enforces (10MB).
	MaxFileSize int64 = 10_000_000
	// DefaultMaxResults bounds folder listings in store-only mode.
	DefaultMaxResults = 500

	MetaContributor      = "contributor"
	MetaOriginalFilename = "original-filename"
)

var AllowedFormats = []string{"jpg", "jpeg", "png", "heic", "heif"}

// Asset is a single file handed to the media store.
type Asset struct {
	Body        io.Reader
	Size        int64
	Filename    string
	ContentType string
	Context     map[string]string
}

// Descriptor is the raw listing entry returned by the media store.
type Descriptor struct {
	AssetID   string            `json:"assetId"`
	URL       string            `json:"url"`
	Filename  string            `json:"filename"`
	CreatedAt time.Time         `json:"createdAt"`
	Context   map[string]string `json:"context,omitempty"`
}

// Store is the adapter over the external media service. Uploads are attempted once.
type Store interface {
	Upload(ctx context.Context, asset Asset, folder string) (*models.AssetInfo, error)
	ListByFolder(ctx context.Context, prefix string, maxResults int) ([]Descriptor, error)
	PresignURL(ctx context.Context, assetID string, ttl time.Duration) (string, error)
	Ping(ctx context.Context) error
	Driver() string
}

type Reason string

const (
	ReasonTooLarge    Reason = "too_large"
	ReasonUnsupported Reason = "unsupported_format"
	ReasonRejected    Reason = "rejected"
)

// UploadError covers every way an upload can fail: constraint violations before the
// call and transport or service errors during it.
type UploadError struct {
	Reason Reason
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (%s): %v", e.Reason, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func rejected(err error) error {
	return &UploadError{Reason: ReasonRejected, Err: err}
}

// CheckConstraints applies the size ceiling and the allowed format list.
func CheckConstraints(filename string, size int64) error {
	if size > MaxFileSize {
		return &UploadError{Reason: ReasonTooLarge, Err: fmt.Errorf("%s is %d bytes, limit is %d", filename, size, MaxFileSize)}
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if !slices.Contains(AllowedFormats, ext) {
		return &UploadError{Reason: ReasonUnsupported, Err: fmt.Errorf("format %q is not allowed", ext)}
	}
	return nil
}

// NewAssetID builds the object key: <folder>/<uuid><ext>.
func NewAssetID(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.NewString() + ext
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ContentTypeFor maps the allowed extensions to a MIME type.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// FolderPrefix returns the listing prefix for a folder name.
func FolderPrefix(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}

func objectMetadata(asset Asset) map[string]string {
	meta := make(map[string]string, len(asset.Context)+1)
	for k, v := range asset.Context {
		meta[strings.ToLower(k)] = v
	}
	meta[MetaOriginalFilename] = asset.Filename
	return meta
}

func descriptorFilename(assetID string, meta map[string]string) string {
	if name := meta[MetaOriginalFilename]; name != "" {
		return name
	}
	return path.Base(assetID)
}

// headerMetadata is objectMetadata for stores that carry metadata in HTTP headers.
// Non-ASCII values are RFC 2047 encoded, the form S3 and MinIO hand them back in.
func headerMetadata(asset Asset) map[string]string {
	meta := objectMetadata(asset)
	for k, v := range meta {
		meta[k] = mime.QEncoding.Encode("utf-8", v)
	}
	return meta
}

var wordDecoder = new(mime.WordDecoder)

// lowerKeys normalizes listed metadata: lower-case keys and decoded values.
func lowerKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if decoded, err := wordDecoder.DecodeHeader(v); err == nil {
			v = decoded
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

var ErrUnknownDriver = errors.New("unknown media driver")
