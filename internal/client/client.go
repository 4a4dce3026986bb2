// Package client posts widget messages to a chat endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/expertsoft/softchat/internal/model/chat"
)

// DefaultEndpoint is where the widget page posts messages.
const DefaultEndpoint = "http://localhost:8080/api/chat"

// ErrMalformedReply is returned when the reply body is not a JSON value.
var ErrMalformedReply = errors.New("malformed chat reply")

// Client sends one request per message. It applies no timeout or retry of its
// own; the supplied http.Client decides both.
type Client struct {
	endpoint   string
	httpClient *http.Client
	headers    http.Header
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// New returns a client for endpoint, or DefaultEndpoint when empty.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		headers:    make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL messages are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Send posts text and decodes the reply. The HTTP status is not inspected:
// error statuses carry an {"error": ...} body that the widget renders.
func (c *Client) Send(ctx context.Context, text string) (chat.Reply, error) {
	payload, err := json.Marshal(chat.Request{Message: text})
	if err != nil {
		return chat.Reply{}, errors.Wrap(err, "encode chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return chat.Reply{}, errors.Wrap(err, "build chat request")
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return chat.Reply{}, errors.Wrap(err, "post chat request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chat.Reply{}, errors.Wrap(err, "read chat reply")
	}

	reply, err := chat.DecodeReply(body)
	if err != nil {
		return chat.Reply{}, errors.Wrapf(ErrMalformedReply, "status %d: %v", resp.StatusCode, err)
	}
	return reply, nil
}
