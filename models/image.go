package models

import (
	"time"
)

// DefaultContributor labels uploads that came without a contributor name.
const DefaultContributor = "Guest"

// ImageRecord is the metadata stored for every guest upload. The binary lives in the media store.
type ImageRecord struct {
	ID              string    `json:"id" bson:"_id"`
	URL             string    `json:"url" bson:"url"`
	AssetID         string    `json:"assetId" bson:"asset_id"`
	ContributorName string    `json:"contributorName" bson:"contributor_name"`
	Filename        string    `json:"filename" bson:"filename"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}

// SaveImageRequest is the body of POST /save-image.
type SaveImageRequest struct {
	URL             string `json:"url" validate:"required,notblank"`
	AssetID         string `json:"assetId" validate:"required,notblank"`
	ContributorName string `json:"contributorName" validate:"required,notblank"`
	Filename        string `json:"filename" validate:"required,notblank"`
}

// ImageResponse is what the listing endpoint returns. SignedURL is only set when the
// media bucket is private and presigning is enabled.
type ImageResponse struct {
	ImageRecord
	SignedURL string `json:"signedUrl,omitempty"`
}

// DisplayURL prefers the signed URL when one was issued.
func (r ImageResponse) DisplayURL() string {
	if r.SignedURL != "" {
		return r.SignedURL
	}
	return r.URL
}

// AssetInfo is returned by the upload proxy once the media store accepted a file.
type AssetInfo struct {
	URL              string `json:"url"`
	AssetID          string `json:"assetId"`
	OriginalFilename string `json:"originalFilename"`
}

type ConnectionStatus struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	ImagesCount int64  `json:"imagesCount,omitempty"`
	Driver      string `json:"driver,omitempty"`
	Error       string `json:"error,omitempty"`
}
