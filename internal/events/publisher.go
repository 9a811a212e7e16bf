package events

import (
	"blog-service/internal/model"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectPostCreated = "post.created"
	SubjectPostUpdated = "post.updated"
	SubjectPostDeleted = "post.deleted"
)

type EventPublisher interface {
	PublishPostCreated(post *model.Post) error
	PublishPostUpdated(post *model.Post, actorID int64) error
	PublishPostDeleted(postID, actorID int64) error
}

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

type NatsPublisher struct {
	conn Conn
	now  func() time.Time
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, *nats.Conn, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, nil, err
	}

	return NewPublisher(nc), nc, nil
}

func NewPublisher(conn Conn) *NatsPublisher {
	return &NatsPublisher{conn: conn, now: time.Now}
}

type PostEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType string    `json:"event_type"`
	PostID    int64     `json:"post_id"`
	OwnerID   int64     `json:"owner_id,omitempty"`
	ActorID   int64     `json:"actor_id"`
	Title     string    `json:"title,omitempty"`
	At        time.Time `json:"at"`
}

func (p *NatsPublisher) PublishPostCreated(post *model.Post) error {
	return p.publish(SubjectPostCreated, PostEvent{
		PostID:  post.ID,
		OwnerID: post.OwnerID,
		ActorID: post.OwnerID,
		Title:   post.Title,
	})
}

func (p *NatsPublisher) PublishPostUpdated(post *model.Post, actorID int64) error {
	return p.publish(SubjectPostUpdated, PostEvent{
		PostID:  post.ID,
		OwnerID: post.OwnerID,
		ActorID: actorID,
		Title:   post.Title,
	})
}

func (p *NatsPublisher) PublishPostDeleted(postID, actorID int64) error {
	return p.publish(SubjectPostDeleted, PostEvent{
		PostID:  postID,
		ActorID: actorID,
	})
}

func (p *NatsPublisher) publish(subject string, event PostEvent) error {
	event.EventID = uuid.New()
	event.EventType = subject
	event.At = p.now()

	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", slog.String("error", err.Error()))
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		slog.Error("Error publishing to NATS", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	slog.Debug("Published event to NATS", slog.String("subject", subject), slog.Int64("post_id", event.PostID))

	return nil
}

// NoopPublisher drops every event. Used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPostCreated(*model.Post) error        { return nil }
func (NoopPublisher) PublishPostUpdated(*model.Post, int64) error { return nil }
func (NoopPublisher) PublishPostDeleted(int64, int64) error       { return nil }
