package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"guestgallery/cache"
	"guestgallery/models"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Errored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Source fetches the gallery listing from the API.
type Source interface {
	ListImages(ctx context.Context) ([]models.ImageResponse, error)
}

// Painter draws renderer output. Calls happen outside the renderer lock.
type Painter interface {
	Loading()
	Paint(view View)
	Error(err error)
}

// Snapshot is a consistent read of the renderer.
type Snapshot struct {
	Phase Phase
	View  View
	// Stale is set when the view comes from an expired cache entry after a failed fetch.
	Stale bool
	Err   error
}

// Renderer drives Idle -> Loading -> Loaded|Errored for one session. A fetch that
// finishes after an Append replaces the item list, so that append can disappear until
// the next load.
type Renderer struct {
	source  Source
	cache   *cache.Cache[models.ImageResponse]
	painter Painter

	mu    sync.Mutex
	phase Phase
	state State
	stale bool
	err   error
}

func NewRenderer(source Source, c *cache.Cache[models.ImageResponse], painter Painter) *Renderer {
	if painter == nil {
		painter = NopPainter{}
	}
	return &Renderer{
		source:  source,
		cache:   c,
		painter: painter,
		state:   State{Sort: SortNewest},
	}
}

// Load fills the gallery from the fresh cache or the API. When the API fails the last
// cached snapshot is shown instead; only without one does the renderer end up Errored.
func (r *Renderer) Load(ctx context.Context) error {
	r.mu.Lock()
	r.phase = Loading
	r.err = nil
	r.mu.Unlock()
	r.painter.Loading()

	images, err := r.fetch(ctx)
	stale := false
	if err != nil {
		slog.Warn("gallery: failed to load images", "error", err)
		var ok bool
		images, ok = r.cache.LoadStale(ctx)
		if !ok {
			r.mu.Lock()
			r.phase = Errored
			r.err = err
			r.mu.Unlock()
			r.painter.Error(err)
			return err
		}
		stale = true
	}

	items := SortItems(ItemsFromImages(images), SortNewest)

	r.mu.Lock()
	r.phase = Loaded
	r.state.Items = items
	r.stale = stale
	r.err = err
	view := Project(r.state)
	r.mu.Unlock()

	r.painter.Paint(view)
	return nil
}

// Retry is the manual retry offered by the error panel.
func (r *Renderer) Retry(ctx context.Context) error {
	return r.Load(ctx)
}

func (r *Renderer) fetch(ctx context.Context) ([]models.ImageResponse, error) {
	if images, ok := r.cache.Load(ctx); ok {
		return images, nil
	}
	images, err := r.source.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Save(ctx, images); err != nil {
		slog.Warn("gallery: failed to cache listing", "error", err)
	}
	return images, nil
}

// Append adds an item without waiting for it to be persisted.
func (r *Renderer) Append(item Item) View {
	r.mu.Lock()
	r.state.Items = append(slices.Clip(r.state.Items), item)
	if r.phase != Loading {
		r.phase = Loaded
	}
	view := Project(r.state)
	r.mu.Unlock()

	r.painter.Paint(view)
	return view
}

func (r *Renderer) SetSort(mode SortMode) View {
	r.mu.Lock()
	r.state.Sort = mode
	view := Project(r.state)
	r.mu.Unlock()

	r.painter.Paint(view)
	return view
}

func (r *Renderer) SetFilter(term string) View {
	r.mu.Lock()
	r.state.Filter = term
	view := Project(r.state)
	r.mu.Unlock()

	r.painter.Paint(view)
	return view
}

func (r *Renderer) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{Phase: r.phase, View: Project(r.state), Stale: r.stale, Err: r.err}
}

// NopPainter discards all output.
type NopPainter struct{}

func (NopPainter) Loading() {}
func (NopPainter) Paint(View) {}
func (NopPainter) Error(error) {}
