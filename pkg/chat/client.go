package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the chat endpoint the widget talks to when none is configured.
const DefaultEndpoint = "https://gorgia-rag-chat-3.onrender.com/api/chat"

const maxBodyBytes = 4 << 20

// Request is the JSON body posted to the chat endpoint.
type Request struct {
	Message string `json:"message"`
}

// TransportError reports that a call could not complete or its body
// could not be decoded. Error() is the bare failure description.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPClient posts user text to the chat endpoint and decodes the reply.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient) error

// WithHTTPClient replaces the pooled default transport client.
func WithHTTPClient(c *http.Client) HTTPClientOption {
	return func(h *HTTPClient) error {
		if c == nil {
			return errors.New("nil http client")
		}
		h.client = c
		return nil
	}
}

// WithTimeout bounds a whole call. Zero keeps calls unbounded.
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(h *HTTPClient) error {
		if d < 0 {
			return errors.Errorf("negative timeout %s", d)
		}
		h.client.Timeout = d
		return nil
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) HTTPClientOption {
	return func(h *HTTPClient) error {
		h.logger = l
		return nil
	}
}

// NewHTTPClient returns a client for endpoint, or DefaultEndpoint when empty.
func NewHTTPClient(endpoint string, options ...HTTPClientOption) (*HTTPClient, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	h := &HTTPClient{
		endpoint: endpoint,
		client:   cleanhttp.DefaultPooledClient(),
		logger:   log.Logger.With().Str("component", "chat-client").Logger(),
	}
	for _, opt := range options {
		if err := opt(h); err != nil {
			return nil, errors.Wrap(err, "failed to apply client option")
		}
	}
	return h, nil
}

func (h *HTTPClient) Endpoint() string { return h.endpoint }

// Send performs one POST carrying text. Every failure is a *TransportError.
// Non-2xx statuses are not failures: the body is decoded regardless.
func (h *HTTPClient) Send(ctx context.Context, text string) (Reply, error) {
	body, err := json.Marshal(Request{Message: text})
	if err != nil {
		return nil, &TransportError{Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn().Err(err).Str("endpoint", h.endpoint).Msg("chat request failed")
		return nil, &TransportError{Op: "post", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}

	h.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("chat response received")

	reply, err := DecodeReply(data)
	if err != nil {
		return nil, &TransportError{Op: "decode", Err: err}
	}
	return reply, nil
}
