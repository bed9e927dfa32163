package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fsp-platform/console-bff/internal/logger"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/middleware"
)

var (
	ErrTimeout      = errors.New("upstream_timeout")
	ErrUnavailable  = errors.New("upstream_unavailable")
	ErrNotFound     = errors.New("resource_not_found")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError carries a non-2xx upstream response in the uniform error
// shape, so callers never have to parse bodies themselves.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream error [%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

// TokenSource is the one accessor for the session's bearer token. The
// gateway reads it at call time, so a login or logout mid-flight is picked
// up by the next request.
type TokenSource interface {
	Token() string
}

// ClientConfig holds the gateway timeouts, split by method class.
type ClientConfig struct {
	// ReadTimeout bounds GET requests.
	ReadTimeout time.Duration
	// WriteTimeout bounds POST, PUT, PATCH, DELETE — uploads included.
	WriteTimeout time.Duration
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Client is the single HTTP gateway to the federation API. It owns auth
// header injection, per-method timeouts, request-id propagation, error
// mapping and request logging; feature clients stay thin on top of it.
type Client struct {
	baseURL string
	tokens  TokenSource
	config  ClientConfig
	base    *http.Client
}

func NewClient(baseURL string, tokens TokenSource, config ClientConfig) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		config:  config,
		// Per-request timeouts via context, no global one.
		base: &http.Client{Timeout: 0},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	timeout := c.config.ReadTimeout
	if isWriteMethod(method) {
		timeout = c.config.WriteTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := middleware.GetRequestID(ctx); reqID != "" {
		req.Header.Set(middleware.HeaderXRequestID, reqID)
	}

	log := logger.Ctx(ctx).With().
		Str("method", method).
		Str("url", u).
		Logger()

	start := time.Now()
	resp, err := c.base.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Dur("duration", duration).Msg("upstream_request_failed")
		return nil, c.mapError(err)
	}

	log.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Msg("upstream_request_completed")
	return resp, nil
}

func (c *Client) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}
	return ErrUnavailable
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return decodeError(resp)
	}
}

func decodeError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		// Some endpoints answer with a flat {"message": ...} shape instead.
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Code != "" {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.Error.Code,
			Message:    apiErr.Error.Message,
		}
	} else if err == nil && apiErr.Message != "" {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Code:       "upstream_error",
			Message:    apiErr.Message,
		}
	}
	return &StatusError{
		StatusCode: resp.StatusCode,
		Code:       "upstream_error",
		Message:    fmt.Sprintf("unexpected status: %d", resp.StatusCode),
	}
}

// getJSON fetches path and decodes the response into T.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T

	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return out, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// writeJSON performs a JSON write request and decodes the response into T.
// Pass a nil body for body-less mutations; T may be struct{} when the
// response body does not matter.
func writeJSON[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return out, err
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, nil, reader, contentType)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return out, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// getText fetches path and returns the raw body as a string, unquoting a
// JSON string body when the server sends one. Used for the base64 protocol
// payload, which is not a JSON document.
func (c *Client) getText(ctx context.Context, path string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	text := string(bytes.TrimSpace(raw))
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		if unquoted, err := strconv.Unquote(text); err == nil {
			return unquoted, nil
		}
	}
	return text, nil
}

// postFile uploads one file as multipart/form-data under the "file" field.
func (c *Client) postFile(ctx context.Context, path, filename string, content []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// pageQuery turns a cache page request into the API's pagination params.
func pageQuery(req querycache.PageRequest) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	if req.Size > 0 {
		q.Set("size", strconv.Itoa(req.Size))
	}
	if req.Direction != "" {
		q.Set("direction", req.Direction)
	}
	for k, v := range req.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}
