package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/domain"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// UserFromContext returns the resolved wallet holder, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// WithUser is used by tests and by the middleware to attach the caller.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// Middleware resolves the bearer token on each request, consulting redis
// before the identity service so hot tokens cost one round trip, not two.
// Unresolvable callers get the uniform 400 error envelope.
type Middleware struct {
	resolver IdentityResolver
	cache    *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
}

func NewMiddleware(resolver IdentityResolver, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *Middleware {
	return &Middleware{
		resolver: resolver,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			m.reject(w)
			return
		}

		ctx := r.Context()

		user := m.cachedUser(ctx, token)
		if user == nil {
			resolved, err := m.resolver.Resolve(ctx, token)
			if err != nil {
				m.reject(w)
				return
			}
			user = resolved
			m.cacheUser(ctx, token, user)
		}

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
	})
}

func (m *Middleware) cachedUser(ctx context.Context, token string) *domain.User {
	if m.cache == nil {
		return nil
	}

	data, err := m.cache.Get(ctx, cacheKey(token)).Bytes()
	if err != nil {
		if err != redis.Nil {
			m.logger.Warn("identity cache read failed", zap.Error(err))
		}
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		return nil
	}

	return &user
}

func (m *Middleware) cacheUser(ctx context.Context, token string, user *domain.User) {
	if m.cache == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		return
	}

	if err := m.cache.Set(ctx, cacheKey(token), data, m.ttl).Err(); err != nil {
		m.logger.Warn("identity cache write failed", zap.Error(err))
	}
}

func (m *Middleware) reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{
		"error": domain.ErrUnauthenticated.Error(),
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// cacheKey hashes the token so raw credentials never land in redis.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "identity:" + hex.EncodeToString(sum[:])
}
