package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	bus, rec := newRecordingBus()
	svc := NewAuthService(repo, bus, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "alice", "pass123", "alice@example.com", domain.RoleTeamMember)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleTeamMember {
		t.Fatalf("unexpected role: %s", user.Role)
	}

	e, ok := rec.single(domain.EventUserRegistered)
	if !ok {
		t.Fatalf("expected exactly one userRegistered event, got %d events", len(rec.events))
	}
	payload, ok := e.Payload.(domain.UserEventPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", e.Payload)
	}
	if payload.Username != "alice" || payload.Email != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	bus, rec := newRecordingBus()
	svc := NewAuthService(repo, bus, "secret", time.Hour)

	cases := []struct {
		name     string
		username string
		password string
		email    string
		role     string
	}{
		{"empty username", "", "pass", "a@b.c", domain.RoleTeamMember},
		{"empty password", "alice", "", "a@b.c", domain.RoleTeamMember},
		{"empty email", "alice", "pass", "", domain.RoleTeamMember},
		{"unknown role", "alice", "pass", "a@b.c", "superuser"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.username, tc.password, tc.email, tc.role); err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	if len(rec.events) != 0 {
		t.Fatalf("no events expected on rejected registrations, got %d", len(rec.events))
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	bus, _ := newRecordingBus()
	svc := NewAuthService(repo, bus, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "pass", "a@b.c", domain.RoleTeamMember); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "other", "a2@b.c", domain.RoleGuestUser); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	bus, _ := newRecordingBus()
	svc := NewAuthService(repo, bus, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "bob", "hunter2", "bob@example.com", domain.RoleProjectManager); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "bob", "hunter2")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("unexpected user: %+v", user)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "bob" {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}
	if claims["role"] != domain.RoleProjectManager {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["user_id"] != user.ID {
		t.Fatalf("unexpected user_id claim: %v", claims["user_id"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	bus, _ := newRecordingBus()
	svc := NewAuthService(repo, bus, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "bob", "hunter2", "bob@example.com", domain.RoleTeamMember); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "bob", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	bus, _ := newRecordingBus()
	svc := NewAuthService(repo, bus, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
