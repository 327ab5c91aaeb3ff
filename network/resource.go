package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Caller issues one JSON request against the color service.
type Caller interface {
	Call(ctx context.Context, method, path string, body any) (*Response, error)
}

// Error reports that a request could not complete: DNS, connection or context failures.
// HTTP error statuses are never reported as Error.
type Error struct {
	Method string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is, or wraps, a transport failure.
func IsNetworkError(err error) bool {
	var netErr *Error
	return errors.As(err, &netErr)
}

// Response is the outcome of a completed request.
type Response struct {
	// OK is true for statuses 200-299.
	OK     bool
	Status int
	// Body holds the response JSON, or nil when the body was empty or not JSON.
	Body json.RawMessage
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if r.Body == nil {
		return errors.New("response has no json body")
	}
	return json.Unmarshal(r.Body, v)
}

// Error returns the server supplied "error" message, if the body carries one.
func (r *Response) Error() string {
	var payload struct {
		Error string `json:"error"`
	}
	if r.Decode(&payload) != nil {
		return ""
	}
	return payload.Error
}

// Resource sends JSON requests to paths below a base URL.
type Resource struct {
	base   string
	client *http.Client
}

// NewResource creates a resource client for base. A nil client selects the shared Client.
func NewResource(base string, client *http.Client) *Resource {
	if client == nil {
		client = Client
	}
	return &Resource{
		base:   strings.TrimSuffix(base, "/"),
		client: client,
	}
}

// Default returns a resource client for the configured api.base_url.
func Default() *Resource {
	return NewResource(viper.GetString(key.APIBaseURL), nil)
}

// Call sends body (JSON encoded when non-nil) to path with the given method.
// The content type is always application/json. A non-2xx status is not an error:
// the parsed body is still returned so callers can show the server's message.
func (r *Resource) Call(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)

	entry := log.With(logrus.Fields{"method": method, "path": path})

	resp, err := r.client.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return nil, &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Warn("reading response failed")
		return nil, &Error{Method: method, Path: path, Err: err}
	}

	result := &Response{
		OK:     resp.StatusCode >= 200 && resp.StatusCode <= 299,
		Status: resp.StatusCode,
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && json.Valid(trimmed) {
		result.Body = trimmed
	}

	entry.WithField("status", resp.StatusCode).Debug("request completed")
	return result, nil
}
