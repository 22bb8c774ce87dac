package adapthttp

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xivind/gas-gauge/internal/app"
	"github.com/xivind/gas-gauge/internal/domain"
)

func TestLoggingMiddleware(t *testing.T) {
	s := &Server{}
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	handler := s.loggingMiddleware(nextHandler)

	var buf bytes.Buffer
	originalOutput := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(originalOutput)

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status %d, got %d", http.StatusTeapot, w.Code)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "GET") || !strings.Contains(logOutput, "/test-path") || !strings.Contains(logOutput, "418") {
		t.Errorf("Log output missing expected fields. Got: %s", logOutput)
	}
}

type stubSessionRepo struct {
	session *domain.Session
}

func (r *stubSessionRepo) CreateSession(context.Context, int64, string, time.Time) error {
	return nil
}

func (r *stubSessionRepo) GetSession(context.Context, string) (*domain.Session, error) {
	return r.session, nil
}

func (r *stubSessionRepo) DeleteSession(context.Context, string) error { return nil }

func (r *stubSessionRepo) DeleteExpiredSessions(context.Context) error { return nil }

type stubUserRepo struct {
	user *domain.User
}

func (r *stubUserRepo) GetUserByName(context.Context, string) (*domain.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) GetUserByID(context.Context, int64) (*domain.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) CreateUser(context.Context, string, string) (*domain.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) CountUsers(context.Context) (int, error) { return 1, nil }

func TestAuthMiddleware(t *testing.T) {
	user := &domain.User{ID: 1, Username: "alex"}

	tests := []struct {
		name       string
		session    *domain.Session
		cookie     *http.Cookie
		wantStatus int
	}{
		{
			"valid session",
			&domain.Session{Token: "tok", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)},
			&http.Cookie{Name: "session", Value: "tok"},
			http.StatusOK,
		},
		{
			"no cookie",
			nil,
			nil,
			http.StatusUnauthorized,
		},
		{
			"unknown token",
			nil,
			&http.Cookie{Name: "session", Value: "bogus"},
			http.StatusUnauthorized,
		},
		{
			"expired session",
			&domain.Session{Token: "tok", UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)},
			&http.Cookie{Name: "session", Value: "tok"},
			http.StatusUnauthorized,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &Server{auth: app.NewAuthService(&stubUserRepo{user: user}, &stubSessionRepo{session: tc.session})}

			var gotUser *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = r.Context().Value(userContextKey).(*domain.User)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/dashboard", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			w := httptest.NewRecorder()
			s.authMiddleware(next).ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus == http.StatusOK && (gotUser == nil || gotUser.Username != "alex") {
				t.Fatalf("expected user in request context, got %+v", gotUser)
			}
		})
	}
}
