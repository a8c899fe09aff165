package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"guestgallery/models"
	"guestgallery/upload"
)

type fakeAPI struct {
	mu     sync.Mutex
	images []models.ImageResponse
	saved  []models.SaveImageRequest
}

func (f *fakeAPI) ListImages(context.Context) ([]models.ImageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.images, nil
}

func (f *fakeAPI) SaveImage(_ context.Context, req models.SaveImageRequest) (*models.ImageRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, req)
	return &models.ImageRecord{ID: "new"}, nil
}

type staticWidget struct{ info models.AssetInfo }

func (w staticWidget) Open(context.Context, string) upload.Result {
	return upload.Succeeded(&w.info)
}

type noPrompt struct{}

func (noPrompt) PromptName(context.Context) (string, error) {
	panic("name should already be known")
}

func TestSession_UploadShowsUpInGallery(t *testing.T) {
	api := &fakeAPI{images: []models.ImageResponse{{ImageRecord: models.ImageRecord{
		ID: "1", URL: "https://x/old.jpg", ContributorName: "Bo", Filename: "old.jpg", CreatedAt: time.Now().Add(-time.Hour),
	}}}}
	var acks []string
	s := New(Options{
		API:         api,
		Prompter:    noPrompt{},
		Widget:      staticWidget{info: models.AssetInfo{URL: "https://x/new.jpg", AssetID: "id2", OriginalFilename: "new.jpg"}},
		GuestName:   "Alex",
		Acknowledge: func(msg string) { acks = append(acks, msg) },
	})
	ctx := context.Background()

	if err := s.Renderer.Load(ctx); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := s.Uploads.Start(ctx); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	view := s.Renderer.Snapshot().View
	if view.Count != 2 || view.Items[0].Meta.Name != "Alex" {
		t.Errorf("expected the new upload first, got %+v", view.Items)
	}
	if len(api.saved) != 1 || api.saved[0].ContributorName != "Alex" {
		t.Errorf("expected one save for Alex, got %+v", api.saved)
	}
	if len(acks) != 1 || s.GuestName() != "Alex" {
		t.Errorf("unexpected acks %v / name %q", acks, s.GuestName())
	}
	if _, ok := s.Cache.Load(ctx); !ok {
		t.Error("expected listing to be cached")
	}
}
