// Package upstream is the typed client for the tracker API. Every call goes
// through a single request helper that attaches the session's bearer token,
// turns 401/403 into ErrUnauthorized after invalidating the session, and
// surfaces any other non-2xx as an APIError carrying the status code. No
// retries: a failed call is terminal for the view that issued it.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized is returned for any upstream 401 or 403. By the time a
// caller sees it the session has already been invalidated; the error still
// propagates so in-flight callers abort their own state updates.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is any non-2xx upstream response other than an auth failure.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker api error: status %d", e.Status)
}

const apiPrefix = "/api"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnUnauthorized runs before ErrUnauthorized is returned, for every
	// endpoint. The session layer hooks it to clear the persisted session,
	// so individual views never have to handle auth failure themselves.
	OnUnauthorized func(ctx context.Context)
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do issues one request against the tracker API. token may be empty (the
// auth-verify exchange is the only unauthenticated call). out may be nil for
// calls whose body the caller does not need.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	u := c.BaseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s payload: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute %s %s request: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// The body of an auth-failed response is never surfaced.
		io.Copy(io.Discard, resp.Body)
		if c.OnUnauthorized != nil {
			c.OnUnauthorized(ctx)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &APIError{Status: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func rangeQuery(rng string) url.Values {
	// Range strings like "7d" are composed and forwarded, never validated.
	return url.Values{"range": {rng}}
}
