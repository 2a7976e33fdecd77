package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxNetworkRetries = 1

// Client is a typed caller for the RevTrack API. It owns the session, the
// read cache and the 0-to-1 page index translation; callers never see the
// wire shape directly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session
	cache      *readCache
}

type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    &session{},
		cache:      newReadCache(cacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one API call and decodes the response body into out. Network
// failures get a single retry; HTTP error statuses never do.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return validationError("encoding request: %v", err)
		}
	}

	resp, err := c.dispatch(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "decoding response: " + err.Error()}
	}
	return nil
}

// doEnvelope is do for endpoints that wrap their payload in {"data": ...}.
func (c *Client) doEnvelope(ctx context.Context, method, path string, body, out any) error {
	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	return c.do(ctx, method, path, body, &envelope)
}

func (c *Client) dispatch(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxNetworkRetries; attempt++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, validationError("building request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if token := c.session.accessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return nil, &Error{Kind: KindNetwork, Message: lastErr.Error()}
}

// errorFromResponse maps the server's {success,message,status} envelope onto
// an error kind. A 401 additionally closes the session: the token pair the
// session holds is no longer good for anything.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
	}
	json.NewDecoder(resp.Body).Decode(&envelope)
	if envelope.Message == "" {
		envelope.Message = http.StatusText(resp.StatusCode)
	}

	kind := KindServer
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = KindUnauthorized
		c.session.clear()
	case resp.StatusCode == http.StatusForbidden:
		kind = KindUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		kind = KindNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		kind = KindValidation
	}

	return &Error{Kind: kind, Status: resp.StatusCode, Message: envelope.Message}
}
