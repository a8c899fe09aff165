package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"guestgallery/gallery"
	"guestgallery/media"
	"guestgallery/models"
	"guestgallery/scan"
	"guestgallery/upload"
	"guestgallery/utils"
	"guestgallery/web"

	"github.com/gin-gonic/gin"
)

var flashMessages = map[string]string{
	"name":      "Please share your name so we can credit your beautiful photos.",
	"file":      "Please choose a photo to upload.",
	"too_large": "That photo is larger than 10MB.",
	"format":    "Only jpg, jpeg, png, heic and heif photos are supported.",
	"infected":  "That file was rejected by the virus scan.",
	"upload":    "The upload failed, please try again.",
	"save":      "Your photo was uploaded but could not be added to the gallery.",
}

type pageData struct {
	View          gallery.View
	Sorts         []gallery.SortMode
	Sort          string
	Filter        string
	GuestName     string
	Notice        string
	Flash         string
	Error         string
	Stale         bool
	RetryURL      string
	UploadAction  string
	MaxNameLength int
	Accept        string
}

// GalleryPage renders the gallery with the sort and filter from the query string.
func (g *Gallery) GalleryPage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	sortMode, err := gallery.ParseSortMode(c.Query("sort"))
	if err != nil {
		sortMode = gallery.SortNewest
	}
	filter := strings.TrimSpace(c.Query("filter"))

	data := pageData{
		Sorts:         []gallery.SortMode{gallery.SortNewest, gallery.SortOldest, gallery.SortName},
		Sort:          string(sortMode),
		Filter:        filter,
		GuestName:     g.guestName(c),
		Flash:         flashMessages[c.Query("error")],
		RetryURL:      "/?" + url.Values{"sort": {string(sortMode)}, "filter": {filter}}.Encode(),
		UploadAction:  "/guest-upload",
		MaxNameLength: upload.MaxNameLength,
		Accept:        "." + strings.Join(media.AllowedFormats, ",."),
	}
	if c.Query("uploaded") != "" {
		data.Notice = upload.Acknowledgement
	}

	status := http.StatusOK
	images, err := g.ListImages(ctx)
	if err != nil {
		_ = c.Error(err)
		if stale, ok := g.StaleImages(ctx); ok {
			images, data.Stale = stale, true
		} else {
			data.Error = "We couldn't load the wedding memories right now."
			status = http.StatusServiceUnavailable
		}
	}

	items := gallery.SortItems(gallery.ItemsFromImages(images), gallery.SortNewest)
	data.View = gallery.Project(gallery.State{Items: items, Sort: sortMode, Filter: filter})
	c.HTML(status, web.GalleryPage, data)
}

// GuestUpload handles the upload form of the gallery page and remembers the guest name
// in a signed cookie.
func (g *Gallery) GuestUpload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	name, ok := upload.NormalizeName(c.PostForm("name"))
	if !ok {
		name = g.guestName(c)
	}
	if name == "" {
		redirectWithError(c, "name")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		redirectWithError(c, "file")
		return
	}
	f, err := file.Open()
	if err != nil {
		redirectWithError(c, "file")
		return
	}
	defer f.Close()

	info, err := g.StoreAsset(ctx, file.Filename, f, file.Size, name, "")
	if err != nil {
		_ = c.Error(err)
		redirectWithError(c, uploadErrorCode(err))
		return
	}
	if _, err := g.CreateRecord(ctx, models.SaveImageRequest{
		URL:             info.URL,
		AssetID:         info.AssetID,
		ContributorName: name,
		Filename:        info.OriginalFilename,
	}); err != nil {
		_ = c.Error(err)
		redirectWithError(c, "save")
		return
	}

	g.rememberGuest(c, name)
	c.Redirect(http.StatusSeeOther, "/?uploaded=1")
}

func (g *Gallery) guestName(c *gin.Context) string {
	if g.sessionSecret == "" {
		return ""
	}
	cookie, err := c.Cookie(utils.GuestCookieName)
	if err != nil || cookie == "" {
		return ""
	}
	name, err := utils.ParseGuestToken(g.sessionSecret, cookie)
	if err != nil {
		slog.Debug("ignoring guest cookie", "error", err)
		return ""
	}
	return name
}

func (g *Gallery) rememberGuest(c *gin.Context, name string) {
	if g.sessionSecret == "" {
		return
	}
	token, err := utils.SignedGuestToken(g.sessionSecret, name, utils.GuestTokenTTL)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.GuestCookieName, token, int(utils.GuestTokenTTL.Seconds()), "/", "", false, true)
}

func redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusSeeOther, "/?error="+url.QueryEscape(code))
}

func uploadErrorCode(err error) string {
	var uerr *media.UploadError
	switch {
	case errors.Is(err, scan.ErrInfected):
		return "infected"
	case errors.As(err, &uerr) && uerr.Reason == media.ReasonTooLarge:
		return "too_large"
	case errors.As(err, &uerr) && uerr.Reason == media.ReasonUnsupported:
		return "format"
	default:
		return "upload"
	}
}
