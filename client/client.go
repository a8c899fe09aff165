package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"guestgallery/models"
)

const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the gallery API.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api %d: %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// Client talks to the gallery API. BaseURL includes the mount prefix, e.g.
// http://localhost:8007/api.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) ListImages(ctx context.Context) ([]models.ImageResponse, error) {
	var images []models.ImageResponse
	if err := c.do(ctx, http.MethodGet, "/gallery-images", nil, "", &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.ImageResponse{}
	}
	return images, nil
}

func (c *Client) SaveImage(ctx context.Context, req models.SaveImageRequest) (*models.ImageRecord, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var rec models.ImageRecord
	if err := c.do(ctx, http.MethodPost, "/save-image", bytes.NewReader(body), "application/json", &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) UploadAsset(ctx context.Context, filename string, body io.Reader, contributorName, folder string) (*models.AssetInfo, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("contributorName", contributorName); err != nil {
		return nil, err
	}
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			return nil, err
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var info models.AssetInfo
	if err := c.do(ctx, http.MethodPost, "/upload-asset", &buf, mw.FormDataContentType(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TestConnection returns the diagnostic status. A 500 still carries a status body, so
// it is returned together with the error.
func (c *Client) TestConnection(ctx context.Context) (*models.ConnectionStatus, error) {
	var status models.ConnectionStatus
	err := c.do(ctx, http.MethodGet, "/test-connection", nil, "", &status)
	var apiErr *APIError
	if err != nil && !errors.As(err, &apiErr) {
		return nil, err
	}
	return &status, err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data, out)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func decodeError(status int, data []byte, out any) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Details string `json:"details"`
	}
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}
	if json.Unmarshal(data, &body) == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
		apiErr.Details = body.Details
		if out != nil {
			_ = json.Unmarshal(data, out)
		}
	}
	return apiErr
}
