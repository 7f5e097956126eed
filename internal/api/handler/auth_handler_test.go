package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api"
	"github.com/taskboard/taskboard-api/internal/api/handler"
	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// newTestEcho builds an echo instance with the production validator and
// error handler so tests observe the same status mapping clients do.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// serve runs the handler and, when it returns an error, routes it through
// the central error handler the way the framework would.
func serve(e *echo.Echo, c echo.Context, fn echo.HandlerFunc) {
	if err := fn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, email, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, email, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			if username != "alice" || role != domain.RoleTeamMember {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return &domain.User{ID: "u1", Username: username, Email: email, Role: role}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"secret1","email":"a@example.com","role":"team_member"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	serve(e, c, h.Register)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != domain.RoleTeamMember {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"bob","password":"secret1","email":"b@example.com","role":"team_member"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	serve(e, c, h.Register)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	})

	// Password too short, email malformed.
	body := strings.NewReader(`{"username":"bob","password":"x","email":"nope","role":"team_member"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	serve(e, c, h.Register)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "tok123", &domain.User{ID: "u1", Username: username, Role: domain.RoleAdmin}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	serve(e, c, h.Login)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok123" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	serve(e, c, h.Login)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
