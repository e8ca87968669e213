package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authCtx := GetAuthContext(r.Context())
		if authCtx == nil {
			t.Error("expected auth context in request")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	auth := &mockAuthService{
		validateTokenFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
			if token != "valid-token" {
				return nil, domain.ErrTokenInvalid
			}
			return &domain.AuthContext{PatientName: "Rajesh Kumar", SessionID: "sess-1"}, nil
		},
	}
	middleware := NewAuthMiddleware(auth)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	middleware.Authenticate(okHandler(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	middleware := NewAuthMiddleware(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_TokenErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"expired", domain.ErrTokenExpired, "token expired"},
		{"session gone", domain.ErrSessionNotFound, "session not found"},
		{"garbage", domain.ErrTokenInvalid, "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				validateTokenFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
					return nil, tt.err
				},
			}
			middleware := NewAuthMiddleware(auth)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			rec := httptest.NewRecorder()

			middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			})).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if got := rec.Body.String(); !strings.Contains(got, tt.want) {
				t.Errorf("expected message %q in %q", tt.want, got)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGetAuthContext_Missing(t *testing.T) {
	if GetAuthContext(context.Background()) != nil {
		t.Error("expected nil for context without auth")
	}
	if GetAuthContext(nil) != nil {
		t.Error("expected nil for nil context")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	recovery := NewRecoveryMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	recovery.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
