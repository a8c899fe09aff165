package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"guestgallery/models"
)

func TestNewImageSaved(t *testing.T) {
	created := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := models.ImageRecord{ID: "1", URL: "https://x/a.jpg", AssetID: "id1", ContributorName: "Alex", Filename: "a.jpg", CreatedAt: created}

	a, b := NewImageSaved(rec), NewImageSaved(rec)
	if a.EventID == "" || a.EventID == b.EventID {
		t.Errorf("expected unique event ids, got %q and %q", a.EventID, b.EventID)
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"eventId", "assetId", "contributorName", "createdAt"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing %s in %s", key, data)
		}
	}
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.PublishImageSaved(context.Background(), models.ImageRecord{}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	p.Close()
}

func TestConnectNATS_Unreachable(t *testing.T) {
	if _, err := ConnectNATS("nats://127.0.0.1:1"); err == nil {
		t.Fatal("expected connection error")
	}
}
