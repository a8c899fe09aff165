package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"guestgallery/media"
	"guestgallery/models"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// ErrPickCancelled is returned by a Picker when the guest closes it without choosing.
var ErrPickCancelled = errors.New("selection cancelled")

type Picker interface {
	Pick(ctx context.Context) (string, error)
}

// AssetUploader sends a file to the upload proxy.
type AssetUploader interface {
	UploadAsset(ctx context.Context, filename string, body io.Reader, contributorName, folder string) (*models.AssetInfo, error)
}

// FileWidget is the terminal stand-in for the hosted widget: pick a local image, check
// the widget constraints and post it to the upload proxy.
type FileWidget struct {
	Picker   Picker
	Uploader AssetUploader
	Folder   string
}

func (w *FileWidget) Open(ctx context.Context, guestName string) Result {
	path, err := w.Picker.Pick(ctx)
	if errors.Is(err, ErrPickCancelled) {
		return Cancelled()
	}
	if err != nil {
		return Failed(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Failed(err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Failed(err)
	}
	if err := media.CheckConstraints(st.Name(), st.Size()); err != nil {
		return Failed(err)
	}

	info, err := w.Uploader.UploadAsset(ctx, st.Name(), f, guestName, w.Folder)
	if err != nil {
		return Failed(err)
	}
	return Succeeded(info)
}

// PathPicker returns a fixed path, used when the file is given on the command line.
type PathPicker string

func (p PathPicker) Pick(context.Context) (string, error) {
	if p == "" {
		return "", ErrPickCancelled
	}
	return string(p), nil
}

// FuzzyPicker lets the guest choose an image below Root with a fuzzy finder.
type FuzzyPicker struct {
	Root string
}

func (p FuzzyPicker) Pick(ctx context.Context) (string, error) {
	files, err := ImageFiles(p.Root)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no %s images found in %s", strings.Join(media.AllowedFormats, "/"), p.Root)
	}

	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string { return files[i] },
		fuzzyfinder.WithContext(ctx),
		fuzzyfinder.WithHeader("Choose a photo to share"),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			st, err := os.Stat(files[i])
			if err != nil {
				return err.Error()
			}
			return fmt.Sprintf("File: %s\nSize: %.1f MB\nModified: %s",
				filepath.Base(files[i]), float64(st.Size())/1_000_000, st.ModTime().Format("Jan 02, 2006 15:04"))
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", ErrPickCancelled
	}
	if err != nil {
		return "", err
	}
	return files[idx], nil
}

// ImageFiles walks root and returns the files with an allowed image extension.
func ImageFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if slices.Contains(media.AllowedFormats, ext) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
