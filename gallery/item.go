package gallery

import (
	"fmt"
	"html"
	"time"

	"guestgallery/models"
)

type Meta struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

// Item is one rendered photo. Items are rebuilt from the listing on every fetch.
type Item struct {
	Src       string    `json:"src"`
	Thumb     string    `json:"thumb"`
	Timestamp time.Time `json:"timestamp"`
	Meta      Meta      `json:"metadata"`
	Caption   string    `json:"subHtml"`
}

// NewItem builds an item for a URL; the thumbnail is the display URL itself.
func NewItem(url string, meta Meta, timestamp time.Time) Item {
	return Item{
		Src:       url,
		Thumb:     url,
		Timestamp: timestamp,
		Meta:      meta,
		Caption:   caption(meta.Name, timestamp),
	}
}

func ItemFromImage(img models.ImageResponse) Item {
	name := img.ContributorName
	if name == "" {
		name = models.DefaultContributor
	}
	return NewItem(img.DisplayURL(), Meta{Name: name, Filename: img.Filename}, img.CreatedAt)
}

func ItemsFromImages(images []models.ImageResponse) []Item {
	items := make([]Item, 0, len(images))
	for _, img := range images {
		items = append(items, ItemFromImage(img))
	}
	return items
}

// caption is the lightbox sub-html block shown under the full-screen photo.
func caption(name string, ts time.Time) string {
	shared := ""
	if name != "" {
		shared = fmt.Sprintf("<p>Shared by: %s</p>", html.EscapeString(name))
	}
	return fmt.Sprintf(`<div class="lightGallery-captions">%s<p>Uploaded: %s</p></div>`,
		shared, ts.Local().Format("Jan 2, 2006"))
}
