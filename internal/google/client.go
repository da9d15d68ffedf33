package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/alexisbeaulieu97/keysmith/internal/logger"
)

const defaultTimeout = 30 * time.Second

// APIClient issues authenticated GET requests. Response bodies are returned
// whatever the status code, since error payloads carry the information the
// classifiers need.
type APIClient struct {
	http      *http.Client
	userAgent string
	log       *logger.Logger
}

// NewAPIClient builds a client sending userAgent. A nil base client uses a
// default with a timeout.
func NewAPIClient(base *http.Client, userAgent string, log *logger.Logger) *APIClient {
	if base == nil {
		base = &http.Client{Timeout: defaultTimeout}
	}
	return &APIClient{http: base, userAgent: userAgent, log: log}
}

// Get fetches url with token as bearer credentials.
func (c *APIClient) Get(ctx context.Context, url, token string) ([]byte, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	client.Timeout = c.http.Timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log := c.log.WithFields(map[string]any{"url": url})
	log.Debug("executing API request")

	resp, err := client.Do(req)
	if err != nil {
		log.Error(err, "failed to execute API request")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "failed to read API response")
		return nil, err
	}

	log.WithFields(map[string]any{"status": resp.StatusCode, "body": string(body)}).Debug("API response")
	return body, nil
}
