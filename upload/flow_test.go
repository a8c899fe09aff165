package upload

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"guestgallery/gallery"
	"guestgallery/models"
)

type fakePrompter struct {
	names []string
	err   error
	calls int
}

func (p *fakePrompter) PromptName(context.Context) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	name := p.names[0]
	if len(p.names) > 1 {
		p.names = p.names[1:]
	}
	return name, nil
}

type fakeWidget struct {
	result Result
	names  []string
}

func (w *fakeWidget) Open(_ context.Context, guestName string) Result {
	w.names = append(w.names, guestName)
	return w.result
}

type fakeSaver struct {
	mu   sync.Mutex
	reqs []models.SaveImageRequest
	err  error
	gate chan struct{}
}

func (s *fakeSaver) SaveImage(_ context.Context, req models.SaveImageRequest) (*models.ImageRecord, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &models.ImageRecord{ID: "1", URL: req.URL}, nil
}

type fakeGallery struct {
	items []gallery.Item
}

func (g *fakeGallery) Append(item gallery.Item) gallery.View {
	g.items = append(g.items, item)
	return gallery.View{Items: g.items, Count: len(g.items)}
}

var asset = &models.AssetInfo{URL: "https://x/a.jpg", AssetID: "id1", OriginalFilename: "a.jpg"}

func newTestFlow(p NamePrompter, w Widget, s Saver, g Appender, acks *[]string) *Flow {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	return NewFlow(p, w, s, g,
		WithAcknowledge(func(msg string) { *acks = append(*acks, msg) }),
		withClock(func() time.Time { return now }),
	)
}

func TestFlow_SuccessAppendsAcksAndSaves(t *testing.T) {
	prompter := &fakePrompter{names: []string{"  Alex  "}}
	widget := &fakeWidget{result: Succeeded(asset)}
	saver := &fakeSaver{gate: make(chan struct{})}
	g := &fakeGallery{}
	var acks []string
	flow := newTestFlow(prompter, widget, saver, g, &acks)

	if flow.State() != NoName {
		t.Fatalf("expected NoName, got %s", flow.State())
	}
	res, err := flow.Start(context.Background())
	if err != nil || res.Outcome != OutcomeSuccess {
		t.Fatalf("unexpected result %+v %v", res, err)
	}

	// the item is visible before the save finished
	if len(g.items) != 1 || g.items[0].Meta.Name != "Alex" || g.items[0].Meta.Filename != "a.jpg" {
		t.Fatalf("expected optimistic append, got %+v", g.items)
	}
	if len(acks) != 1 || acks[0] != "Thank You!" {
		t.Errorf("expected acknowledgement, got %v", acks)
	}
	if flow.State() != UploadSucceeded {
		t.Errorf("expected UploadSucceeded, got %s", flow.State())
	}

	close(saver.gate)
	if err := flow.Wait(); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	want := models.SaveImageRequest{URL: "https://x/a.jpg", AssetID: "id1", ContributorName: "Alex", Filename: "a.jpg"}
	if len(saver.reqs) != 1 || saver.reqs[0] != want {
		t.Errorf("expected save %+v, got %+v", want, saver.reqs)
	}
}

func TestFlow_NameAskedOnce(t *testing.T) {
	prompter := &fakePrompter{names: []string{"Alex", "Someone Else"}}
	widget := &fakeWidget{result: Cancelled()}
	var acks []string
	flow := newTestFlow(prompter, widget, &fakeSaver{}, &fakeGallery{}, &acks)

	for range 3 {
		if _, err := flow.Start(context.Background()); err != nil {
			t.Fatalf("Start error: %v", err)
		}
	}
	if prompter.calls != 1 {
		t.Errorf("expected a single prompt, got %d", prompter.calls)
	}
	for _, n := range widget.names {
		if n != "Alex" {
			t.Errorf("widget opened with %q", n)
		}
	}
}

func TestFlow_CancelAndErrorLeaveGalleryAlone(t *testing.T) {
	tests := []struct {
		name  string
		res   Result
		state State
	}{
		{"cancelled", Cancelled(), UploadCancelled},
		{"failed", Failed(errors.New("too big")), UploadErrored},
		{"success without info", Result{Outcome: OutcomeSuccess}, UploadErrored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &fakeSaver{}
			g := &fakeGallery{}
			var acks []string
			flow := newTestFlow(&fakePrompter{names: []string{"Bo"}}, &fakeWidget{result: tt.res}, saver, g, &acks)

			if _, err := flow.Start(context.Background()); err != nil {
				t.Fatalf("Start error: %v", err)
			}
			if err := flow.Wait(); err != nil {
				t.Fatalf("Wait error: %v", err)
			}
			if flow.State() != tt.state {
				t.Errorf("expected %s, got %s", tt.state, flow.State())
			}
			if len(g.items) != 0 || len(saver.reqs) != 0 || len(acks) != 0 {
				t.Errorf("expected no side effects, got items=%d saves=%d acks=%d", len(g.items), len(saver.reqs), len(acks))
			}
		})
	}
}

func TestFlow_BlankOrCancelledNameStopsFlow(t *testing.T) {
	for _, p := range []*fakePrompter{{names: []string{"   "}}, {err: errors.New("esc")}} {
		widget := &fakeWidget{result: Succeeded(asset)}
		var acks []string
		flow := newTestFlow(p, widget, &fakeSaver{}, &fakeGallery{}, &acks)

		_, err := flow.Start(context.Background())
		if !errors.Is(err, ErrNoName) {
			t.Errorf("expected ErrNoName, got %v", err)
		}
		if flow.State() != NoName || len(widget.names) != 0 {
			t.Errorf("widget must not open without a name, state=%s", flow.State())
		}
	}
}

func TestFlow_FailedSaveIsReportedButNotRolledBack(t *testing.T) {
	saver := &fakeSaver{err: errors.New("500")}
	g := &fakeGallery{}
	var acks []string
	flow := newTestFlow(&fakePrompter{}, &fakeWidget{result: Succeeded(asset)}, saver, g, &acks)
	flow.name = "Alex"

	if _, err := flow.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if err := flow.Wait(); err == nil {
		t.Fatal("expected save failure from Wait")
	}
	if len(g.items) != 1 {
		t.Errorf("optimistic item should stay, got %d items", len(g.items))
	}
	if err := flow.Wait(); err != nil {
		t.Errorf("errors should be drained after Wait, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	long := ""
	for range 60 {
		long += "é"
	}
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"  Alex ", "Alex", true},
		{"\t\n", "", false},
		{long, long[:100], true},
	}
	for _, tt := range tests {
		got, ok := NormalizeName(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeName(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestWithGuestName(t *testing.T) {
	var acks []string
	prompter := &fakePrompter{names: []string{"ignored"}}
	flow := newTestFlow(prompter, &fakeWidget{result: Cancelled()}, &fakeSaver{}, &fakeGallery{}, &acks)
	WithGuestName(" Sam ")(flow)

	if _, err := flow.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if prompter.calls != 0 || flow.GuestName() != "Sam" {
		t.Errorf("preset name should skip the prompt, calls=%d name=%q", prompter.calls, flow.GuestName())
	}
}
