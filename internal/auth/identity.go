package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/config"
	"github.com/Mystick682/ExTremeData/internal/domain"
)

// IdentityResolver maps a bearer credential to the user it belongs to.
// Identity is owned by an external service; this client only reads it.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

type IdentityClient struct {
	config     config.IdentityConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewIdentityClient(cfg config.IdentityConfig, logger *zap.Logger) *IdentityClient {
	return &IdentityClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type identityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Resolve calls the identity service with the caller's bearer token. Any
// failure to produce a user id collapses into ErrUnauthenticated; the caller
// never learns why the credential was rejected.
func (c *IdentityClient) Resolve(ctx context.Context, token string) (*domain.User, error) {
	url := c.config.BaseURL + "/auth/v1/user"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("identity service unreachable", zap.Error(err))
		return nil, domain.ErrUnauthenticated
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("identity resolution rejected",
			zap.Int("status_code", resp.StatusCode))
		return nil, domain.ErrUnauthenticated
	}

	var result identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("failed to decode identity response", zap.Error(err))
		return nil, domain.ErrUnauthenticated
	}

	if result.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.User{ID: result.ID, Email: result.Email}, nil
}
