package blibsend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	userAgent = "wi_motos/1.0"

	// tokenSafetyMargin is subtracted from the reported token lifetime so a
	// token is never used right at its expiry edge.
	tokenSafetyMargin = 60 * time.Second

	// defaultTokenLifetime applies when the signin response carries no
	// usable expiry, per vendor docs.
	defaultTokenLifetime = 86400 * time.Second

	maxErrorBody = 300
)

// Client talks to the Blibsend messaging API. It is safe for concurrent use;
// the bearer token is shared and renewed under a mutex.
type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Option overrides parts of the client, primarily for testing.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Blibsend client. Base URL and client credentials are
// required; everything else has workable defaults.
func New(cfg Config, opts ...Option) (*Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: set BLIBSEND_BASE_URL, BLIBSEND_CLIENT_ID and BLIBSEND_CLIENT_SECRET", ErrNotConfigured)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 25 * time.Second
	}
	if cfg.FileTimeout <= 0 {
		cfg.FileTimeout = 60 * time.Second
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type textMessage struct {
	To   []string `json:"to"`
	Body string   `json:"body"`
}

// SendText sends a text message. Recipients fall back to the configured
// default when none are given.
func (c *Client) SendText(ctx context.Context, body string, to ...string) error {
	recipients := make([]string, 0, len(to)+1)
	for _, r := range to {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	if len(recipients) == 0 && c.cfg.DefaultTo != "" {
		recipients = append(recipients, c.cfg.DefaultTo)
	}
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	return c.post(ctx, "/messages/send", textMessage{To: recipients, Body: body}, c.cfg.SendTimeout)
}

// GroupFile describes a file message for a group.
type GroupFile struct {
	// Type is one of image, document, video, audio, sticker or text.
	Type  string
	Title string
	// DataURI carries the content inline as data:<mime>;base64,<payload>.
	DataURI string
}

type groupFileMessage struct {
	To    string `json:"to"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SendGroupFile sends a file to a group. The group falls back to the
// configured default; group IDs must end in @g.us.
func (c *Client) SendGroupFile(ctx context.Context, group string, file GroupFile) error {
	if group == "" {
		group = c.cfg.GroupTo
	}
	if !strings.HasSuffix(group, "@g.us") {
		return fmt.Errorf("%w: %q", ErrInvalidGroupID, group)
	}

	msg := groupFileMessage{
		To:    group,
		Type:  file.Type,
		Title: file.Title,
		Body:  file.DataURI,
	}
	return c.post(ctx, "/messages/groups/send/file", msg, c.cfg.FileTimeout)
}

// Healthcheck verifies the API is reachable and credentials are accepted by
// ensuring a valid bearer token.
func (c *Client) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.bearerToken(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrHealthcheckFailed, err)
	}
	return nil
}

// DataURI encodes content for SendGroupFile.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// bearerToken returns the cached token or signs in for a fresh one.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	return c.signin(ctx)
}

type signinResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresIn json.RawMessage `json:"expires_in"`
	// The vendor docs misspell the field; live deployments still return it.
	ExpiresInTypo json.RawMessage `json:"exires_in"`
}

func (c *Client) signin(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.SendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/auth/signin", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigninFailed, err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigninFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrSigninFailed, resp.StatusCode, readErrorBody(resp.Body))
	}

	var payload signinResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigninFailed, err)
	}
	if payload.Token == "" {
		return "", ErrMissingToken
	}

	lifetime := parseExpiresIn(payload.ExpiresIn, payload.ExpiresInTypo) - tokenSafetyMargin
	if lifetime < tokenSafetyMargin {
		lifetime = tokenSafetyMargin
	}

	c.mu.Lock()
	c.token = payload.Token
	c.expiresAt = c.now().Add(lifetime)
	c.mu.Unlock()

	return payload.Token, nil
}

// parseExpiresIn extracts the token lifetime from whichever expiry field the
// API returned, tolerating both numeric and quoted values.
func parseExpiresIn(candidates ...json.RawMessage) time.Duration {
	for _, raw := range candidates {
		s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
		if s == "" || s == "null" {
			continue
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return defaultTokenLifetime
}

// post sends an authenticated JSON request, renewing the token once on 401.
func (c *Client) post(ctx context.Context, path string, payload any, timeout time.Duration) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, path, body, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		token, err = c.signin(ctx)
		if err != nil {
			return err
		}
		resp, err = c.do(ctx, path, body, token)
		if err != nil {
			return err
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, readErrorBody(resp.Body))
}

func (c *Client) do(ctx context.Context, path string, body []byte, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.cfg.SessionToken != "" {
		// The vendor matches this header name case-sensitively.
		req.Header["session_token"] = []string{c.cfg.SessionToken}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return resp, nil
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
