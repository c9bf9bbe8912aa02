package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/auth"
	"github.com/Mystick682/ExTremeData/internal/domain"
)

type stubResolver struct {
	user  *domain.User
	err   error
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func authedEndpoint(t *testing.T, resolver auth.IdentityResolver) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := auth.UserFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	m := auth.NewMiddleware(resolver, nil, time.Minute, zap.NewNop())
	return m.Authenticate(next)
}

func TestAuthenticate_ResolvesUser(t *testing.T) {
	resolver := &stubResolver{user: &domain.User{ID: "user-1", Email: "user@example.com"}}

	var gotUser *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	m := auth.NewMiddleware(resolver, nil, time.Minute, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, "user-1", gotUser.ID)
	assert.Equal(t, 1, resolver.calls)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	handler := authedEndpoint(t, &stubResolver{user: &domain.User{ID: "user-1"}})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.ErrUnauthenticated.Error(), resp["error"])
}

func TestAuthenticate_RejectedCredential(t *testing.T) {
	handler := authedEndpoint(t, &stubResolver{err: domain.ErrUnauthenticated})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	resolver := &stubResolver{user: &domain.User{ID: "user-1"}}
	handler := authedEndpoint(t, resolver)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, resolver.calls)
}
