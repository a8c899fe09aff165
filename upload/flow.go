package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"guestgallery/gallery"
	"guestgallery/models"
)

const (
	MaxNameLength   = 50
	Acknowledgement = "Thank You!"
	SaveTimeout     = 10 * time.Second
)

var ErrNoName = errors.New("a guest name is required before uploading")

type State int

const (
	NoName State = iota
	NamePrompted
	NameCaptured
	WidgetOpen
	UploadSucceeded
	UploadCancelled
	UploadErrored
)

var stateNames = map[State]string{
	NoName:          "no-name",
	NamePrompted:    "name-prompted",
	NameCaptured:    "name-captured",
	WidgetOpen:      "widget-open",
	UploadSucceeded: "upload-succeeded",
	UploadCancelled: "upload-cancelled",
	UploadErrored:   "upload-errored",
}

func (s State) String() string { return stateNames[s] }

// Widget is the hosted upload widget: it runs until the guest finishes, cancels or hits
// an error.
type Widget interface {
	Open(ctx context.Context, guestName string) Result
}

// NamePrompter blocks until the guest submits a name. Cancelling returns an error.
type NamePrompter interface {
	PromptName(ctx context.Context) (string, error)
}

type Saver interface {
	SaveImage(ctx context.Context, req models.SaveImageRequest) (*models.ImageRecord, error)
}

type Appender interface {
	Append(item gallery.Item) gallery.View
}

// NormalizeName trims the input and caps it at MaxNameLength runes. ok is false for
// blank input.
func NormalizeName(raw string) (name string, ok bool) {
	name = strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name, name != ""
}

// Flow runs one upload per Start call. The guest name is asked once and reused.
// A save that fails after the optimistic append is reported through Wait but the
// appended item stays in the gallery.
type Flow struct {
	prompter NamePrompter
	widget   Widget
	saver    Saver
	gallery  Appender
	ack      func(string)
	now      func() time.Time

	mu      sync.Mutex
	state   State
	name    string
	saveErr []error
	pending sync.WaitGroup
}

type FlowOption func(*Flow)

// WithAcknowledge sets the callback that shows the transient acknowledgement.
func WithAcknowledge(fn func(string)) FlowOption {
	return func(f *Flow) { f.ack = fn }
}

func WithGuestName(name string) FlowOption {
	return func(f *Flow) {
		if n, ok := NormalizeName(name); ok {
			f.name = n
			f.state = NameCaptured
		}
	}
}

func withClock(now func() time.Time) FlowOption {
	return func(f *Flow) { f.now = now }
}

func NewFlow(prompter NamePrompter, widget Widget, saver Saver, g Appender, opts ...FlowOption) *Flow {
	f := &Flow{
		prompter: prompter,
		widget:   widget,
		saver:    saver,
		gallery:  g,
		ack:      func(string) {},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) GuestName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name
}

// Start asks for the name if needed, opens the widget and handles its result. The
// record is saved in the background; call Wait to collect the outcome.
func (f *Flow) Start(ctx context.Context) (Result, error) {
	name, err := f.ensureName(ctx)
	if err != nil {
		return Cancelled(), err
	}

	f.setState(WidgetOpen)
	res := f.widget.Open(ctx, name)

	switch res.Outcome {
	case OutcomeSuccess:
		if res.Info == nil {
			f.setState(UploadErrored)
			return Failed(errors.New("widget reported success without asset info")), nil
		}
		f.setState(UploadSucceeded)
		f.accept(ctx, name, *res.Info)
	case OutcomeCancelled:
		f.setState(UploadCancelled)
	default:
		slog.Warn("upload: widget failed", "error", res.Err)
		f.setState(UploadErrored)
	}
	return res, nil
}

func (f *Flow) ensureName(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.name != "" {
		name := f.name
		f.mu.Unlock()
		return name, nil
	}
	f.state = NamePrompted
	f.mu.Unlock()

	raw, err := f.prompter.PromptName(ctx)
	name, ok := NormalizeName(raw)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil || !ok {
		f.state = NoName
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoName, err)
		}
		return "", ErrNoName
	}
	f.name = name
	f.state = NameCaptured
	return name, nil
}

func (f *Flow) accept(ctx context.Context, name string, info models.AssetInfo) {
	meta := gallery.Meta{Name: name, Filename: info.OriginalFilename}
	f.gallery.Append(gallery.NewItem(info.URL, meta, f.now()))
	f.ack(Acknowledgement)

	req := models.SaveImageRequest{
		URL:             info.URL,
		AssetID:         info.AssetID,
		ContributorName: name,
		Filename:        info.OriginalFilename,
	}

	f.pending.Add(1)
	go func() {
		defer f.pending.Done()
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SaveTimeout)
		defer cancel()

		if _, err := f.saver.SaveImage(saveCtx, req); err != nil {
			slog.Error("upload: failed to save image record", "asset_id", info.AssetID, "error", err)
			f.mu.Lock()
			f.saveErr = append(f.saveErr, fmt.Errorf("save %s: %w", info.AssetID, err))
			f.mu.Unlock()
		}
	}()
}

// Wait blocks until every background save finished and returns their failures.
func (f *Flow) Wait() error {
	f.pending.Wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	err := errors.Join(f.saveErr...)
	f.saveErr = nil
	return err
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
