package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/wanderplan/travel-api/internal/core/domain"
	"github.com/wanderplan/travel-api/internal/core/service"
)

// memUserRepo is an in-memory UserRepository for end-to-end route tests.
type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == user.Name {
			return nil, domain.ErrNameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("id-%d", r.nextID)
	r.users[clone.ID] = &clone
	return &clone, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByNameOrEmail(_ context.Context, name, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == name || u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id, name, email string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = name
	u.Email = email
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) SetResetOTP(_ context.Context, id string, otp int, expires time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetOTP = &otp
	u.ResetOTPExpires = &expires
	return nil
}

func (r *memUserRepo) ResetPassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetOTP = nil
	u.ResetOTPExpires = nil
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, _, _, _ string) error { return nil }

func newTestRouter() *echo.Echo {
	users := service.NewUserService(
		newMemUserRepo(), noopMailer{}, nil,
		"test-secret", 24*time.Hour, 10*time.Minute,
		zerolog.Nop(),
	)
	// Mongo/Redis stay nil: the health probes are not exercised here.
	return NewRouter(Dependencies{
		Users:     users,
		JWTSecret: "test-secret",
		Log:       zerolog.Nop(),
		Metrics:   prometheus.NewRegistry(),
	})
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RegisterLoginInfoFlow(t *testing.T) {
	e := newTestRouter()

	// Register.
	rec := doJSON(e, http.MethodPost, "/users", `{"name":"ana","email":"ana@x.com","password":"Abc12345!"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Login with the same credentials.
	rec = doJSON(e, http.MethodPost, "/users/login", `{"email":"ana@x.com","password":"Abc12345!"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("login: invalid json: %v", err)
	}
	if !loginResp.Success || loginResp.Token == "" {
		t.Fatalf("login: expected token, got %s", rec.Body.String())
	}

	// Info with the issued token.
	rec = doJSON(e, http.MethodGet, "/users/info", "", loginResp.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("info: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var infoResp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &infoResp); err != nil {
		t.Fatalf("info: invalid json: %v", err)
	}
	user, ok := infoResp["user"].(map[string]any)
	if !ok || user["email"] != "ana@x.com" {
		t.Fatalf("info: unexpected payload: %s", rec.Body.String())
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("info: password field in response")
	}
}

func TestRouter_DuplicateEmailConflict(t *testing.T) {
	e := newTestRouter()

	rec := doJSON(e, http.MethodPost, "/users", `{"name":"ana","email":"ana@x.com","password":"Abc12345!"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}

	// Second registration with the same email fails regardless of name.
	rec = doJSON(e, http.MethodPost, "/users", `{"name":"bea","email":"ana@x.com","password":"Xyz98765!"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.ErrEmailTaken.Error()) {
		t.Fatalf("duplicate register: unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	e := newTestRouter()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/info"},
		{http.MethodPut, "/users/update"},
		{http.MethodPut, "/users/change-password"},
	} {
		rec := doJSON(e, route.method, route.path, "{}", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRouter_LoginErrorsAreUniform(t *testing.T) {
	e := newTestRouter()

	rec := doJSON(e, http.MethodPost, "/users", `{"name":"ana","email":"ana@x.com","password":"Abc12345!"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	wrongPass := doJSON(e, http.MethodPost, "/users/login", `{"email":"ana@x.com","password":"Wrong123!"}`, "")
	noUser := doJSON(e, http.MethodPost, "/users/login", `{"email":"ghost@x.com","password":"Abc12345!"}`, "")

	if wrongPass.Code != http.StatusUnauthorized || noUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, noUser.Code)
	}
	if wrongPass.Body.String() != noUser.Body.String() {
		t.Fatalf("login errors must be indistinguishable: %s vs %s", wrongPass.Body.String(), noUser.Body.String())
	}
}
