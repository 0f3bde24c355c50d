// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "business-dashboard/internal/common/errors"
	httpclient "business-dashboard/internal/common/http"
	"business-dashboard/internal/common/logger"
	"business-dashboard/internal/common/metrics"
	"business-dashboard/internal/common/validation"
	"business-dashboard/internal/models"
)

// Endpoint paths, relative to the configured base URL.
const (
	PathAuthStatus  = "/api/auth/status"
	PathAuthStart   = "/api/auth/google"
	PathAuthLogout  = "/api/auth/logout"
	PathData        = "/api/data"
	PathProfile     = "/api/profile"
	PathPosts       = "/api/posts"
	PathReviewReply = "/api/reviews/%d/reply"
)

// Operation names used for logging, metrics and StandardError.Operation.
const (
	OpAuthStatus    = "auth_status"
	OpStartAuth     = "start_auth"
	OpLogout        = "logout"
	OpFetchSnapshot = "fetch_snapshot"
	OpUpdateProfile = "update_profile"
	OpCreatePost    = "create_post"
	OpReplyToReview = "reply_to_review"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

type Config struct {
	BaseURL           string
	SessionCookieName string
	// SessionCookie, when set, is preloaded into the cookie jar.
	SessionCookie string
}

// Client talks to the dashboard REST API. Every call carries the session
// cookie held in the underlying cookie jar.
type Client struct {
	base    string
	baseURL *url.URL
	cfg     Config
	http    *httpclient.Client
	logger  logger.Logger
}

func NewClient(cfg Config, hc *httpclient.Client, log logger.Logger) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "connect.sid"
	}
	if hc == nil {
		hc = httpclient.NewClient(0)
	}

	c := &Client{
		base:    base,
		baseURL: u,
		cfg:     cfg,
		http:    hc,
		logger:  logger.Component(log, "api"),
	}
	if cfg.SessionCookie != "" {
		c.SetSessionCookie(cfg.SessionCookie)
	}
	return c, nil
}

// Endpoint returns the absolute URL for path.
func (c *Client) Endpoint(path string) string {
	return c.base + path
}

// LoginURL is where a browser starts the sign-in redirect flow.
func (c *Client) LoginURL() string {
	return c.Endpoint(PathAuthStart)
}

// LogoutURL is where a browser ends the session.
func (c *Client) LogoutURL() string {
	return c.Endpoint(PathAuthLogout)
}

// SessionCookie returns the session cookie value currently held, or "".
func (c *Client) SessionCookie() string {
	for _, ck := range c.http.Cookies(c.baseURL) {
		if ck.Name == c.cfg.SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) SetSessionCookie(value string) {
	c.http.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  c.cfg.SessionCookieName,
		Value: value,
		Path:  "/",
	}})
}

// AuthStatus calls GET /api/auth/status.
func (c *Client) AuthStatus(ctx context.Context) (models.AuthStatus, error) {
	var out models.AuthStatus
	err := c.doJSON(ctx, OpAuthStatus, http.MethodGet, PathAuthStatus, nil, &out, authStatusSchema)
	return out, err
}

// FetchSnapshot calls GET /api/data. Collections absent from the body come back empty.
func (c *Client) FetchSnapshot(ctx context.Context) (models.Snapshot, error) {
	var out models.Snapshot
	if err := c.doJSON(ctx, OpFetchSnapshot, http.MethodGet, PathData, nil, &out, snapshotSchema); err != nil {
		return models.Snapshot{}, err
	}
	out.Normalize()
	return out, nil
}

// UpdateProfile calls PUT /api/profile and returns the server's representation.
func (c *Client) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var out models.Profile
	err := c.doJSON(ctx, OpUpdateProfile, http.MethodPut, PathProfile, profile, &out, profileSchema)
	return out, err
}

type createPostRequest struct {
	Content string `json:"content"`
}

// CreatePost calls POST /api/posts.
func (c *Client) CreatePost(ctx context.Context, content string) (models.Post, error) {
	var out models.Post
	err := c.doJSON(ctx, OpCreatePost, http.MethodPost, PathPosts, createPostRequest{Content: content}, &out, postSchema)
	return out, err
}

type replyRequest struct {
	Reply string `json:"reply"`
}

// ReplyToReview calls POST /api/reviews/{id}/reply and returns the updated review.
func (c *Client) ReplyToReview(ctx context.Context, reviewID int, reply string) (models.Review, error) {
	var out models.Review
	path := fmt.Sprintf(PathReviewReply, reviewID)
	err := c.doJSON(ctx, OpReplyToReview, http.MethodPost, path, replyRequest{Reply: reply}, &out, reviewSchema)
	return out, err
}

// Logout calls GET /api/auth/logout. The server answers with a redirect, which counts as success.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.send(ctx, OpLogout, http.MethodGet, PathAuthLogout, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return c.fail(OpLogout, apperrors.NewUnexpectedStatusError(OpLogout, resp.StatusCode, truncate(resp.body)))
	}
	c.succeed(OpLogout, resp.elapsed)
	return nil
}

// AuthRedirect is the outcome of starting the sign-in flow.
type AuthRedirect struct {
	Location      string
	SessionCookie string
}

// StartAuth calls GET /api/auth/google without following the redirect. Against
// a backend that issues the session directly (the dev server) the returned
// cookie is already authenticated.
func (c *Client) StartAuth(ctx context.Context) (AuthRedirect, error) {
	resp, err := c.send(ctx, OpStartAuth, http.MethodGet, PathAuthStart, nil)
	if err != nil {
		return AuthRedirect{}, err
	}
	if resp.StatusCode >= 400 {
		return AuthRedirect{}, c.fail(OpStartAuth, apperrors.NewUnexpectedStatusError(OpStartAuth, resp.StatusCode, truncate(resp.body)))
	}
	c.succeed(OpStartAuth, resp.elapsed)
	return AuthRedirect{
		Location:      resp.Header.Get("Location"),
		SessionCookie: c.SessionCookie(),
	}, nil
}

type response struct {
	*http.Response
	body    []byte
	elapsed time.Duration
}

// send performs one round-trip and reads the whole body. Only transport failures are errors here.
func (c *Client) send(ctx context.Context, op, method, path string, in interface{}) (*response, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, c.fail(op, apperrors.Normalize(fmt.Errorf("encode %s request: %w", op, err)))
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Endpoint(path), body)
	if err != nil {
		return nil, c.fail(op, apperrors.NewTransportError(op, err))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("calling dashboard API", map[string]interface{}{
		"operation": op,
		"method":    method,
		"path":      path,
	})

	start := time.Now()
	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, c.fail(op, apperrors.NewTransportError(op, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.fail(op, apperrors.NewTransportError(op, err))
	}

	metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return &response{Response: resp, body: data, elapsed: time.Since(start)}, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out interface{}, schema *validation.Schema) error {
	resp, err := c.send(ctx, op, method, path, in)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(op, apperrors.NewUnexpectedStatusError(op, resp.StatusCode, truncate(resp.body)))
	}

	if schema != nil {
		result, err := schema.ValidateDocument(resp.body)
		if err != nil {
			return c.fail(op, apperrors.NewMalformedResponseError(op, err))
		}
		if verr := result.Error(); verr != nil {
			return c.fail(op, apperrors.NewMalformedResponseError(op, verr))
		}
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		return c.fail(op, apperrors.NewMalformedResponseError(op, err))
	}

	c.succeed(op, resp.elapsed)
	return nil
}

func (c *Client) succeed(op string, elapsed time.Duration) {
	metrics.APIRequestsTotal.WithLabelValues(op, metrics.OutcomeSuccess).Inc()
	c.logger.Debug("dashboard API call succeeded", map[string]interface{}{
		"operation":  op,
		"durationMs": elapsed.Milliseconds(),
	})
}

func (c *Client) fail(op string, stdErr *apperrors.StandardError) error {
	metrics.APIRequestsTotal.WithLabelValues(op, metrics.OutcomeFailure).Inc()
	c.logger.Debug("dashboard API call failed", map[string]interface{}{
		"operation": op,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})
	return stdErr
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
