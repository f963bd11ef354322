package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amnotwallas/estudiantes-frontend/pkg/config"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// TokenSource supplies the bearer credential and is told when the backend
// rejects it.
type TokenSource interface {
	Credential() string
	Invalidate()
}

// Client dispatches authenticated requests against the backend. Every call
// is independent: no retries, no caching, no deduplication.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

// New constructs a gateway client. The base URL comes from configuration;
// screens never carry their own URL literals.
func New(cfg config.APIConfig, httpClient *http.Client, tokens TokenSource, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: cfg.BaseURL, http: httpClient, tokens: tokens, logger: logger}
}

// Options carries per-call overrides. Caller-supplied headers take
// precedence over the defaults on conflict.
type Options struct {
	Headers http.Header
}

// Do issues one authenticated request. It fails with UNAUTHENTICATED before
// sending anything when no credential is present, and never hands a non-2xx
// response back to the caller: those become REQUEST_FAILED errors carrying
// the backend message and status. The caller owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, opts *Options) (*http.Response, error) {
	token := c.tokens.Credential()
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "no hay token de autenticación")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if opts != nil {
		for key, values := range opts.Headers {
			req.Header.Del(key)
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "error en la petición")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		return nil, c.errorFromResponse(resp)
	}

	return resp, nil
}

// GetJSON fetches path and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// PostJSON sends body and decodes the response into out when non-nil.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// PutJSON sends body and decodes the response into out when non-nil.
func (c *Client) PutJSON(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodPut, path, body, nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// Delete issues a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.Do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var errBody struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&errBody); err == nil {
		msg = errBody.Message
	}
	return appErrors.Request(resp.StatusCode, msg)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close() //nolint:errcheck
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrRequest.Code, resp.StatusCode, "respuesta inválida del servidor")
	}
	return nil
}
