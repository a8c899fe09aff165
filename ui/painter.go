package ui

import (
	"fmt"
	"io"
	"strconv"

	"guestgallery/gallery"
)

// TerminalPainter draws the gallery as a table.
type TerminalPainter struct {
	Out       io.Writer
	RetryHint string
}

func (p *TerminalPainter) Loading() {
	fmt.Fprintln(p.Out, FormatMuted("Loading wedding memories..."))
}

func (p *TerminalPainter) Paint(view gallery.View) {
	fmt.Fprintln(p.Out, RenderGallery(view))
}

func (p *TerminalPainter) Error(err error) {
	fmt.Fprintln(p.Out, FormatError("Could not load the gallery: "+err.Error()))
	if p.RetryHint != "" {
		fmt.Fprintln(p.Out, FormatMuted(p.RetryHint))
	}
}

// RenderGallery lays out a view with its photo count.
func RenderGallery(view gallery.View) string {
	if view.Count == 0 {
		return FormatInfo("No photos yet. Be the first to share one!")
	}
	t := NewTable(
		Column{Header: "#"},
		Column{Header: "Shared by", MaxWidth: 24},
		Column{Header: "File", MaxWidth: 28},
		Column{Header: "Uploaded"},
		Column{Header: "URL", MaxWidth: 60},
	)
	for i, item := range view.Items {
		t.AddRow(
			strconv.Itoa(i+1),
			item.Meta.Name,
			item.Meta.Filename,
			item.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			item.Src,
		)
	}
	return t.Render() + "\n" + StyleBold.Render(view.CountLabel())
}
