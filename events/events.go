package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"guestgallery/models"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const SubjectImageSaved = "gallery.image.saved"

// Publisher announces gallery changes to other services.
type Publisher interface {
	PublishImageSaved(ctx context.Context, rec models.ImageRecord) error
	Close()
}

type ImageSaved struct {
	EventID         string    `json:"eventId"`
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	AssetID         string    `json:"assetId"`
	ContributorName string    `json:"contributorName"`
	Filename        string    `json:"filename"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewImageSaved(rec models.ImageRecord) ImageSaved {
	return ImageSaved{
		EventID:         uuid.NewString(),
		ID:              rec.ID,
		URL:             rec.URL,
		AssetID:         rec.AssetID,
		ContributorName: rec.ContributorName,
		Filename:        rec.Filename,
		CreatedAt:       rec.CreatedAt,
	}
}

type NATSPublisher struct {
	conn *nats.Conn
}

// ConnectNATS dials the server and keeps reconnecting in the background.
func ConnectNATS(url string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("guest-gallery"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("[NATS] disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("[NATS] reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			slog.Info("[NATS] connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	slog.Info("[NATS] connected", "url", conn.ConnectedUrl())
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) PublishImageSaved(_ context.Context, rec models.ImageRecord) error {
	event := NewImageSaved(rec)
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := nats.NewMsg(SubjectImageSaved)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, event.EventID)
	return p.conn.PublishMsg(msg)
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		slog.Warn("[NATS] drain failed", "error", err)
		p.conn.Close()
	}
}

// Noop drops every event. It is used when NATS_URL is empty.
type Noop struct{}

func (Noop) PublishImageSaved(context.Context, models.ImageRecord) error { return nil }

func (Noop) Close() {}
