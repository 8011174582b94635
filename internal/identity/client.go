package identity

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/metrics"
)

// Client answers whether a user id is known to the identity service.
type Client interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient constructs a new HTTP-backed identity client.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse identity url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("identity url %q must be absolute", baseURL)
	}
	return &HTTPClient{
		baseURL: parsed,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger.Named("identity"),
	}, nil
}

// Exists calls GET /internal/users/{id}; 200 means known, 404 unknown.
func (c *HTTPClient) Exists(ctx context.Context, userID int64) (bool, error) {
	endpoint := c.baseURL.JoinPath("internal", "users", strconv.FormatInt(userID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.IdentityLookups.WithLabelValues("error").Inc()
		return false, fmt.Errorf("identity lookup: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		metrics.IdentityLookups.WithLabelValues("found").Inc()
		return true, nil
	case http.StatusNotFound:
		metrics.IdentityLookups.WithLabelValues("missing").Inc()
		return false, nil
	default:
		metrics.IdentityLookups.WithLabelValues("error").Inc()
		c.logger.Warn("unexpected identity status",
			zap.Int("status", resp.StatusCode),
			zap.Int64("user_id", userID))
		return false, fmt.Errorf("identity: upstream returned %d", resp.StatusCode)
	}
}

// Static answers from a fixed set of ids. It stands in for the identity
// service in local development.
type Static struct {
	ids map[int64]struct{}
}

// NewStatic builds a Static client knowing exactly ids.
func NewStatic(ids ...int64) *Static {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &Static{ids: set}
}

// Exists reports whether userID is in the configured set.
func (s *Static) Exists(_ context.Context, userID int64) (bool, error) {
	_, ok := s.ids[userID]
	return ok, nil
}
