package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	clamd "github.com/dutchcoders/go-clamd"
)

var ErrInfected = errors.New("file is infected")

// Scanner checks uploaded bytes before they are handed to the media store.
type Scanner interface {
	Scan(ctx context.Context, r io.Reader) error
}

type ClamdScanner struct {
	client *clamd.Clamd
}

// NewClamdScanner takes a clamd address such as tcp://clamav:3310.
func NewClamdScanner(url string) *ClamdScanner {
	return &ClamdScanner{client: clamd.NewClamd(url)}
}

func (s *ClamdScanner) Ping() error {
	return s.client.Ping()
}

// Scan streams r to clamd. It returns an error wrapping ErrInfected when a signature
// matched.
func (s *ClamdScanner) Scan(ctx context.Context, r io.Reader) error {
	abort := make(chan bool)
	defer close(abort)

	results, err := s.client.ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("clamd scan: %w", err)
	}

	var found []string
	var scanErr error
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				if len(found) > 0 {
					slog.Warn("[clamd] infected upload rejected", "signatures", found)
					return fmt.Errorf("%w: %s", ErrInfected, strings.Join(found, ", "))
				}
				return scanErr
			}
			switch res.Status {
			case clamd.RES_FOUND:
				found = append(found, res.Description)
			case clamd.RES_ERROR, clamd.RES_PARSE_ERROR:
				scanErr = fmt.Errorf("clamd scan: %s", res.Raw)
			}
		}
	}
}

// Noop accepts every file. It is used when CLAMAV_URL is empty.
type Noop struct{}

func (Noop) Scan(context.Context, io.Reader) error { return nil }
