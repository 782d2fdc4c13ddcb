package control

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/smykla-skalski/ccbridge/pkg/config"
	"github.com/smykla-skalski/ccbridge/pkg/hook"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

const (
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 64 << 10

	headerRequestID = "X-Request-Id"
	headerUserAgent = "User-Agent"

	sessionsPath = "/api/sessions/"
	pingPath     = "/api/auth/check"
)

var (
	// ErrUnexpectedStatus is returned when the server answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrInvalidResponse is returned when the response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response body")
)

// Client implements Notifier and OverrideQuerier over HTTP.
type Client struct {
	httpClient      *http.Client
	logger          logger.Logger
	baseURL         string
	token           string
	userAgent       string
	notifyTimeout   time.Duration
	overrideTimeout time.Duration
	newRequestID    func() string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL replaces the http://localhost:{port} base URL.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRequestIDFunc sets the request id generator.
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.newRequestID = fn
		}
	}
}

// NewClient creates a Client from the server config section.
func NewClient(cfg *config.ServerConfig, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:      &http.Client{},
		logger:          logger.NewNoOpLogger(),
		baseURL:         cfg.BaseURL(),
		token:           cfg.GetAuthToken(),
		userAgent:       "ccbridge",
		notifyTimeout:   cfg.GetNotifyTimeout(),
		overrideTimeout: cfg.GetOverrideTimeout(),
		newRequestID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NotifyURL returns the notify endpoint for a session.
func (c *Client) NotifyURL(sessionID string) string {
	return c.sessionURL(sessionID, "notify")
}

// OverrideURL returns the rocket mode endpoint for a session.
func (c *Client) OverrideURL(sessionID string) string {
	return c.sessionURL(sessionID, "rocket")
}

func (c *Client) sessionURL(sessionID, action string) string {
	query := url.Values{"token": []string{c.token}}

	return c.baseURL + sessionsPath + url.PathEscape(sessionID) + "/" + action + "?" + query.Encode()
}

// Notify implements Notifier.
func (c *Client) Notify(ctx context.Context, sessionID string, inv hook.ToolInvocation) {
	reqID := c.newRequestID()
	log := c.logger.With("request_id", reqID, "session", sessionID)

	body, err := NotifyPayload(inv)
	if err != nil {
		log.Info("notify payload encoding failed", "error", err)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.notifyTimeout)
	defer cancel()

	status, _, err := c.do(ctx, http.MethodPost, c.NotifyURL(sessionID), reqID, body)
	if err != nil {
		log.Info("notify failed", "tool", inv.Name, "status", status, "error", err)

		return
	}

	log.Debug("notify sent", "tool", inv.Name, "status", status)
}

// NotifyPayload encodes the notify request body. An empty invocation becomes {}.
func NotifyPayload(inv hook.ToolInvocation) ([]byte, error) {
	if inv.IsEmpty() {
		return []byte("{}"), nil
	}

	if inv.Input == nil {
		inv.Input = map[string]any{}
	}

	return json.Marshal(inv)
}

// QueryOverride implements OverrideQuerier.
func (c *Client) QueryOverride(ctx context.Context, sessionID string) bool {
	override, err := c.Query(ctx, sessionID)
	if err != nil {
		c.logger.Info("rocket mode query failed", "session", sessionID, "error", err)

		return false
	}

	return override.RocketMode
}

// Query fetches the override state of a session.
func (c *Client) Query(ctx context.Context, sessionID string) (Override, error) {
	reqID := c.newRequestID()

	ctx, cancel := context.WithTimeout(ctx, c.overrideTimeout)
	defer cancel()

	status, body, err := c.do(ctx, http.MethodGet, c.OverrideURL(sessionID), reqID, nil)
	if err != nil {
		return Override{}, err
	}

	on, err := decodeRocketMode(body)
	if err != nil {
		return Override{}, err
	}

	c.logger.Debug("rocket mode queried",
		"request_id", reqID,
		"session", sessionID,
		"status", status,
		"rocket_mode", on,
	)

	override := Override{RocketMode: on}
	if on {
		override.Reason = RocketModeReason
	}

	return override, nil
}

// decodeRocketMode accepts only a JSON object whose rocket_mode is the
// boolean true; anything else, including "true" or 1, is false.
func decodeRocketMode(body []byte) (bool, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, errors.CombineErrors(ErrInvalidResponse, err)
	}

	if payload == nil {
		return false, errors.Wrap(ErrInvalidResponse, "body is null")
	}

	raw, ok := payload["rocket_mode"]
	if !ok {
		return false, nil
	}

	return string(bytes.TrimSpace(raw)) == "true", nil
}

// Ping checks that something answers HTTP on the control port. Any HTTP
// response counts as reachable; the status is returned for display.
func (c *Client) Ping(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.overrideTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+pingPath, c.newRequestID(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrap(stripURL(err), "control server unreachable")
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	return resp.StatusCode, nil
}

// do sends one request and returns the status and a capped body. Non-2xx
// statuses are returned as ErrUnexpectedStatus.
func (c *Client) do(
	ctx context.Context,
	method, target, reqID string,
	body []byte,
) (int, []byte, error) {
	req, err := c.newRequest(ctx, method, target, reqID, body)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(stripURL(err), "%s %s", method, redact(req.URL))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, data, errors.Wrapf(ErrUnexpectedStatus, "%d", resp.StatusCode)
	}

	return resp.StatusCode, data, nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method, target, reqID string,
	body []byte,
) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set(headerUserAgent, c.userAgent)
	req.Header.Set(headerRequestID, reqID)

	return req, nil
}

// redact drops the token from a URL before it is logged.
func redact(u *url.URL) string {
	clean := *u
	clean.RawQuery = ""

	return clean.String()
}

// stripURL unwraps *url.Error so the token in the request URL never reaches
// the log.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}

	return err
}
