// Package api is a small client for the Azyrnyx HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
)

// Error is a failure reported by the server.
type Error struct {
	Status     int
	Kind       common.Kind
	Message    string
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type Session struct {
	Token        string `json:"token"`
	ShardBalance int64  `json:"shardBalance"`
}

type Grant struct {
	Message      string `json:"message"`
	ShardBalance int64  `json:"shardBalance"`
}

type Code struct {
	Code       string     `json:"code"`
	Amount     int64      `json:"amount"`
	Mode       string     `json:"mode"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	ConsumedBy string     `json:"consumedBy,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// NewCode is the body of an admin add-code request.
type NewCode struct {
	Code      string     `json:"code"`
	Amount    int64      `json:"amount"`
	Mode      string     `json:"mode,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (c *Client) Signup(ctx context.Context, username, secret string) (*Session, error) {
	var out Session
	body := map[string]string{"username": username, "secret": secret}
	if err := c.do(ctx, http.MethodPost, "/signup", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, username, secret string) (*Session, error) {
	var out Session
	body := map[string]string{"username": username, "secret": secret}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Balance(ctx context.Context, username, token string) (int64, error) {
	var out struct {
		ShardBalance int64 `json:"shardBalance"`
	}
	h := http.Header{"Authorization": {"Bearer " + token}}
	if err := c.do(ctx, http.MethodGet, "/balance/"+url.PathEscape(username), h, nil, &out); err != nil {
		return 0, err
	}
	return out.ShardBalance, nil
}

func (c *Client) Redeem(ctx context.Context, username, token, code string) (*Grant, error) {
	var out Grant
	body := map[string]string{"username": username, "token": token, "code": code}
	if err := c.do(ctx, http.MethodPost, "/redeem", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClaimQuest(ctx context.Context, username, token, questID string, reward int64) (*Grant, error) {
	var out Grant
	body := map[string]any{"username": username, "token": token, "questId": questID, "reward": reward}
	if err := c.do(ctx, http.MethodPost, "/quests/claim", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddCode(ctx context.Context, adminSecret string, nc NewCode) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	h := http.Header{common.AdminSecretHeaderName: {adminSecret}}
	if err := c.do(ctx, http.MethodPost, "/admin/codes", h, nc, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ListCodes(ctx context.Context, adminSecret string) ([]Code, error) {
	var out struct {
		Codes []Code `json:"codes"`
	}
	h := http.Header{common.AdminSecretHeaderName: {adminSecret}}
	if err := c.do(ctx, http.MethodGet, "/admin/codes", h, nil, &out); err != nil {
		return nil, err
	}
	return out.Codes, nil
}

// Ping checks that the server answers its health probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, headers http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error             string      `json:"error"`
		Kind              common.Kind `json:"kind"`
		RetryAfterSeconds int64       `json:"retryAfterSeconds"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	e := &Error{Status: resp.StatusCode, Kind: body.Kind, Message: body.Error}
	if body.RetryAfterSeconds > 0 {
		e.RetryAfter = time.Duration(body.RetryAfterSeconds) * time.Second
	} else if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		e.RetryAfter = time.Duration(s) * time.Second
	}
	return e
}
