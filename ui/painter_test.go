package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"guestgallery/gallery"
)

func TestRenderGallery(t *testing.T) {
	ts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	view := gallery.View{
		Items: []gallery.Item{
			gallery.NewItem("https://x/a.jpg", gallery.Meta{Name: "Alex", Filename: "a.jpg"}, ts),
			gallery.NewItem("https://x/b.jpg", gallery.Meta{Name: "Bo", Filename: "b.jpg"}, ts),
		},
		Count: 2,
	}
	out := RenderGallery(view)
	for _, want := range []string{"Shared by", "Alex", "b.jpg", "https://x/a.jpg", "2 photos"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if out := RenderGallery(gallery.View{}); !strings.Contains(out, "No photos yet") {
		t.Errorf("unexpected empty output %q", out)
	}
}

func TestTerminalPainter_Error(t *testing.T) {
	var buf bytes.Buffer
	p := &TerminalPainter{Out: &buf, RetryHint: "run guestbook list --refresh to retry"}
	p.Loading()
	p.Error(errors.New("connection refused"))
	out := buf.String()
	if !strings.Contains(out, "Loading wedding memories") || !strings.Contains(out, "connection refused") || !strings.Contains(out, "--refresh") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTableTruncates(t *testing.T) {
	tbl := NewTable(Column{Header: "Name", MaxWidth: 6})
	tbl.AddRow("abcdefghij")
	if out := tbl.Render(); !strings.Contains(out, "abc...") {
		t.Errorf("expected truncated cell, got %q", out)
	}
}
