package controller

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"guestgallery/media"
	"guestgallery/models"
	"guestgallery/scan"

	"github.com/gin-gonic/gin"
)

func (g *Gallery) GetGalleryImages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	images, err := g.ListImages(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

func (g *Gallery) SaveImage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var req models.SaveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	rec, err := g.CreateRecord(ctx, req)
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image", "details": err.Error()})
	default:
		c.JSON(http.StatusCreated, rec)
	}
}

func (g *Gallery) TestConnection(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	health, err := g.records.Health(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ConnectionStatus{
			Status:  "error",
			Message: "Database connection failed",
			Driver:  health.Driver,
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, models.ConnectionStatus{
		Status:      "success",
		Message:     "Database connection successful",
		ImagesCount: health.Count,
		Driver:      health.Driver,
	})
}

// UploadAsset is the upload widget backend: it stores the file and returns the asset
// info. The record is saved separately through SaveImage.
func (g *Gallery) UploadAsset(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	fileContent, err := file.Open()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded file"})
		return
	}
	defer fileContent.Close()

	info, err := g.StoreAsset(ctx, file.Filename, fileContent, file.Size, c.PostForm("contributorName"), c.PostForm("folder"))
	if err != nil {
		_ = c.Error(err)
		status, message := uploadStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(http.StatusCreated, info)
}

type legacyUploadRequest struct {
	Data        string `json:"data"`
	Contributor string `json:"contributor"`
	Filename    string `json:"filename"`
}

// LegacyUpload is the one-shot route: upload the file and save the record in one call.
// It accepts a multipart file or a JSON body with base64 (or data URL) encoded bytes.
func (g *Gallery) LegacyUpload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var (
		info        *models.AssetInfo
		contributor string
		err         error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		contributor = c.PostForm("contributor")
		file, ferr := c.FormFile("file")
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image data provided"})
			return
		}
		f, ferr := file.Open()
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image data provided"})
			return
		}
		defer f.Close()
		info, err = g.StoreAsset(ctx, file.Filename, f, file.Size, contributor, "")
	} else {
		var req legacyUploadRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.Data == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image data provided"})
			return
		}
		contributor = req.Contributor
		filename, data, decodeErr := decodePayload(req.Data, req.Filename)
		if decodeErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image data is not valid base64"})
			return
		}
		info, err = g.StoreAsset(ctx, filename, bytes.NewReader(data), int64(len(data)), contributor, "")
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
		return
	}

	contributor = strings.TrimSpace(contributor)
	if contributor == "" {
		contributor = models.DefaultContributor
	}
	rec, err := g.CreateRecord(ctx, models.SaveImageRequest{
		URL:             info.URL,
		AssetID:         info.AssetID,
		ContributorName: contributor,
		Filename:        info.OriginalFilename,
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "image": rec})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// uploadStatus maps upload failures to the status the widget expects.
func uploadStatus(err error) (int, string) {
	var uerr *media.UploadError
	switch {
	case errors.Is(err, scan.ErrInfected):
		return http.StatusUnprocessableEntity, "File rejected by virus scan"
	case errors.As(err, &uerr) && uerr.Reason == media.ReasonTooLarge:
		return http.StatusRequestEntityTooLarge, "File is larger than 10MB"
	case errors.As(err, &uerr) && uerr.Reason == media.ReasonUnsupported:
		return http.StatusUnsupportedMediaType, "Only jpg, jpeg, png, heic and heif images are allowed"
	default:
		return http.StatusBadGateway, "Media store rejected the upload"
	}
}

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

// decodePayload accepts raw base64 or a data URL and picks a filename when none is given.
func decodePayload(payload, filename string) (string, []byte, error) {
	mime := ""
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, encoded, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, errors.New("malformed data URL")
		}
		mime, _, _ = strings.Cut(header, ";")
		payload = encoded
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	if filename == "" {
		if mime == "" {
			mime = http.DetectContentType(data)
		}
		ext, ok := mimeExtensions[mime]
		if !ok {
			ext = ".bin"
		}
		filename = "upload" + ext
	}
	return filename, data, nil
}
