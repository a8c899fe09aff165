package session

import (
	"guestgallery/cache"
	"guestgallery/gallery"
	"guestgallery/models"
	"guestgallery/upload"
)

// API is the part of the gallery API a session needs.
type API interface {
	gallery.Source
	upload.Saver
}

type Options struct {
	API         API
	CacheSlot   cache.Slot
	Painter     gallery.Painter
	Prompter    upload.NamePrompter
	Widget      upload.Widget
	GuestName   string
	Acknowledge func(string)
}

// Session holds everything one guest visit owns: the listing cache, the rendered
// gallery and the upload flow with the captured name.
type Session struct {
	Cache    *cache.Cache[models.ImageResponse]
	Renderer *gallery.Renderer
	Uploads  *upload.Flow
}

func New(opts Options) *Session {
	slot := opts.CacheSlot
	if slot == nil {
		slot = cache.NewMemorySlot()
	}
	c := cache.New[models.ImageResponse](slot)
	renderer := gallery.NewRenderer(opts.API, c, opts.Painter)

	flowOpts := []upload.FlowOption{upload.WithGuestName(opts.GuestName)}
	if opts.Acknowledge != nil {
		flowOpts = append(flowOpts, upload.WithAcknowledge(opts.Acknowledge))
	}

	return &Session{
		Cache:    c,
		Renderer: renderer,
		Uploads:  upload.NewFlow(opts.Prompter, opts.Widget, opts.API, renderer, flowOpts...),
	}
}

func (s *Session) GuestName() string {
	return s.Uploads.GuestName()
}

// Close waits for background saves and reports the ones that failed.
func (s *Session) Close() error {
	return s.Uploads.Wait()
}
