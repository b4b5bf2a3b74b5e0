package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
)

const apiPrefix = "/api"

type tokenKey struct{}

// WithToken attaches the backend bearer token for calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the college fee backend. Every response is expected in the
// {success, data, error} envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Backend.URL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.GetBackendTimeout(),
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send performs the request and returns the status, headers and full body.
func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, body interface{}) (int, http.Header, []byte, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return 0, nil, nil, newError(KindShape, op, 0, "failed to build request", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, newError(KindTransport, op, 0, "request failed", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn(ctx, "failed to close backend response body", zap.String("op", op), zap.Error(cerr))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, resp.Header, nil, newError(KindTransport, op, resp.StatusCode, "failed to read response", err)
	}

	logger.Debug(ctx, "backend call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp.StatusCode, resp.Header, raw, nil
}

// do sends a request and decodes the envelope's data into out. out may be nil
// when the caller only cares about success.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	status, _, raw, err := c.send(ctx, op, method, path, query, body)
	if err != nil {
		return err
	}
	return decodeEnvelope(op, status, raw, out)
}

func decodeEnvelope(op string, status int, raw []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		switch {
		case status >= http.StatusInternalServerError:
			return newError(KindTransport, op, status, http.StatusText(status), err)
		case status >= http.StatusBadRequest:
			return newError(KindRejection, op, status, http.StatusText(status), err)
		default:
			return newError(KindShape, op, status, "response is not a JSON envelope", err)
		}
	}

	if !env.Success || status >= http.StatusBadRequest {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		return newError(KindRejection, op, status, msg, errors.New(msg))
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return newError(KindShape, op, status, "envelope has no data", nil)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return newError(KindShape, op, status, "unexpected data shape", err)
	}
	return nil
}

// Ping checks that the backend answers HTTP at all. Any status counts.
func (c *Client) Ping(ctx context.Context) error {
	_, _, _, err := c.send(ctx, "ping", http.MethodGet, "/health", nil, nil)
	return err
}
