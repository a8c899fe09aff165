package models

import (
	"errors"
	"testing"
)

func TestNewImageRecord_Valid(t *testing.T) {
	rec, err := NewImageRecord("https://x/a.jpg", "id1", " Alex ", "a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ContributorName != "Alex" {
		t.Errorf("expected trimmed contributor name, got %q", rec.ContributorName)
	}
	if rec.ID != "" || !rec.CreatedAt.IsZero() {
		t.Errorf("id and createdAt must be assigned by the store, got %q %v", rec.ID, rec.CreatedAt)
	}
}

func TestNewImageRecord_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		args  [4]string
		field string
	}{
		{"url", [4]string{"", "id1", "Alex", "a.jpg"}, "URL"},
		{"asset id", [4]string{"https://x/a.jpg", "", "Alex", "a.jpg"}, "AssetID"},
		{"contributor", [4]string{"https://x/a.jpg", "id1", "", "a.jpg"}, "ContributorName"},
		{"blank contributor", [4]string{"https://x/a.jpg", "id1", "   ", "a.jpg"}, "ContributorName"},
		{"filename", [4]string{"https://x/a.jpg", "id1", "Alex", ""}, "Filename"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageRecord(tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0] != tt.field {
				t.Errorf("expected field %s, got %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestImageResponse_DisplayURL(t *testing.T) {
	r := ImageResponse{ImageRecord: ImageRecord{URL: "https://x/a.jpg"}}
	if r.DisplayURL() != "https://x/a.jpg" {
		t.Errorf("expected plain url, got %s", r.DisplayURL())
	}
	r.SignedURL = "https://x/a.jpg?sig=1"
	if r.DisplayURL() != "https://x/a.jpg?sig=1" {
		t.Errorf("expected signed url, got %s", r.DisplayURL())
	}
}

func TestValidate_StoredRecordHasNoTagRules(t *testing.T) {
	// records read back from a store are trusted; only requests are validated
	if err := Validate(ImageRecord{ID: "1"}); err != nil {
		t.Errorf("expected no validation rules on ImageRecord, got %v", err)
	}
	if err := Validate(SaveImageRequest{}); err == nil {
		t.Error("expected SaveImageRequest to be validated")
	}
}
