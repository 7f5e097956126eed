package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type stubNotificationRepo struct {
	insertErr error
	inserted  []domain.Notification
}

func (r *stubNotificationRepo) Insert(_ context.Context, userID, message string) (*domain.Notification, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	n := domain.Notification{
		ID:        "n1",
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	r.inserted = append(r.inserted, n)
	return &n, nil
}

func (r *stubNotificationRepo) FindByUser(_ context.Context, _ string) ([]domain.Notification, error) {
	return nil, nil
}

func (r *stubNotificationRepo) FindOne(_ context.Context, _, _ string) (*domain.Notification, error) {
	return nil, domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, _, _ string) error {
	return nil
}

type stubPublisher struct {
	publishErr error
	published  []string // topic user IDs
}

func (p *stubPublisher) Publish(_ context.Context, userID string, _ *domain.Notification) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.published = append(p.published, userID)
	return nil
}

func TestDispatcher_PersistsThenPublishes(t *testing.T) {
	repo := &stubNotificationRepo{}
	pub := &stubPublisher{}
	d := NewDispatcher(repo, pub, zerolog.Nop())

	n, err := d.Notify(context.Background(), "u42", "hello")
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if n == nil || n.Message != "hello" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected exactly one persisted record, got %d", len(repo.inserted))
	}
	if len(pub.published) != 1 || pub.published[0] != "u42" {
		t.Fatalf("expected exactly one publish to topic u42, got %v", pub.published)
	}
}

func TestDispatcher_PersistenceFailureSkipsPublish(t *testing.T) {
	repo := &stubNotificationRepo{insertErr: errors.New("connection reset")}
	pub := &stubPublisher{}
	d := NewDispatcher(repo, pub, zerolog.Nop())

	_, err := d.Notify(context.Background(), "u42", "hello")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatalf("publish must not happen when persistence fails")
	}
}

func TestDispatcher_PublishFailureIsBestEffort(t *testing.T) {
	repo := &stubNotificationRepo{}
	pub := &stubPublisher{publishErr: errors.New("no subscribers")}
	d := NewDispatcher(repo, pub, zerolog.Nop())

	n, err := d.Notify(context.Background(), "u42", "hello")
	if err != nil {
		t.Fatalf("publish failure must not surface as error, got %v", err)
	}
	if n == nil {
		t.Fatalf("expected the persisted record back")
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected the record to be persisted")
	}
}
