package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/events"
)

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	users     map[string]*domain.User // keyed by ID
	createErr error
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = "u" + strconv.Itoa(len(r.users)+1)
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	return r.seed(cloneUser(user)), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByRole(_ context.Context, role string) ([]domain.UserContact, error) {
	var out []domain.UserContact
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, domain.UserContact{UserID: u.ID, Email: u.Email, Username: u.Username})
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateEmail(_ context.Context, userID, email string) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	comments  []*domain.Comment
	createErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *task
	clone.ID = "t" + strconv.Itoa(len(r.tasks)+1)
	r.tasks[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if t, ok := r.tasks[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) InsertComment(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	clone := *comment
	clone.ID = "c" + strconv.Itoa(len(r.comments)+1)
	r.comments = append(r.comments, &clone)
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindUncompletedWithAssignee(_ context.Context) ([]domain.DueTask, error) {
	return nil, nil
}

type stubNotificationRepo struct {
	notifications map[string]*domain.Notification
	insertErr     error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{notifications: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Insert(_ context.Context, userID, message string) (*domain.Notification, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	n := &domain.Notification{
		ID:        "n" + strconv.Itoa(len(r.notifications)+1),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	r.notifications[n.ID] = n
	clone := *n
	return &clone, nil
}

func (r *stubNotificationRepo) FindByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) FindOne(_ context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, ok := r.notifications[notificationID]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNotificationNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, userID, notificationID string) error {
	n, ok := r.notifications[notificationID]
	if !ok || n.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

type recordedNotify struct {
	UserID  string
	Message string
}

type stubNotifier struct {
	notifyErr error
	notified  []recordedNotify
}

func (n *stubNotifier) Notify(_ context.Context, userID, message string) (*domain.Notification, error) {
	if n.notifyErr != nil {
		return nil, n.notifyErr
	}
	n.notified = append(n.notified, recordedNotify{UserID: userID, Message: message})
	return &domain.Notification{ID: "n", UserID: userID, Message: message}, nil
}

// eventRecorder captures emitted events by subscribing to every event name
// the services produce.
type eventRecorder struct {
	events []events.Event
}

func newRecordingBus() (*events.Bus, *eventRecorder) {
	rec := &eventRecorder{}
	bus := events.NewBus(zerolog.Nop())
	capture := func(_ context.Context, e events.Event) error {
		rec.events = append(rec.events, e)
		return nil
	}
	for _, name := range []string{
		domain.EventUserRegistered,
		domain.EventEmailUpdated,
		domain.EventPasswordUpdated,
		domain.EventTaskAssigned,
	} {
		bus.Subscribe(name, capture)
	}
	return bus, rec
}

func (r *eventRecorder) single(name string) (events.Event, bool) {
	var found events.Event
	count := 0
	for _, e := range r.events {
		if e.Name == name {
			found = e
			count++
		}
	}
	return found, count == 1
}
