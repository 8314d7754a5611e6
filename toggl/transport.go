package toggl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
)

const (
	// Domain is the host serving both API generations.
	Domain = "api.track.toggl.com"
	// DefaultBaseURL is the scheme and host requests are sent to.
	DefaultBaseURL = "https://" + Domain
	// TokenPassword is the fixed Basic auth password paired with an API token.
	TokenPassword = "api_token"
	// DefaultTimeout bounds each HTTP exchange of the default transport.
	DefaultTimeout = 30 * time.Second
)

// Transport executes HTTP requests. *starr.Config satisfies it, and so does
// any other client exposing the same four verbs; non-2xx answers may be
// reported either as a response or as a *starr.ReqError.
type Transport interface {
	Get(ctx context.Context, req starr.Request) (*http.Response, error)
	Post(ctx context.Context, req starr.Request) (*http.Response, error)
	Put(ctx context.Context, req starr.Request) (*http.Response, error)
	Delete(ctx context.Context, req starr.Request) (*http.Response, error)
}

// Option configures the service and its default transport.
type Option func(*clientOptions)

// clientOptions holds configuration options for the service.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
}

// WithBaseURL points the default transport at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client of the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewTransport builds the default transport for an API token: a starr.Config
// that sends the token as the Basic auth user with the fixed password.
func NewTransport(token string, opts ...Option) (*starr.Config, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("toggl API token is required: %w", ErrNilArgument)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newTransport(token, o), nil
}

func newTransport(token string, o clientOptions) *starr.Config {
	cfg := starr.New("", strings.TrimRight(o.baseURL, "/"), o.timeout)
	cfg.HTTPUser = token
	cfg.HTTPPass = TokenPassword
	if o.httpClient != nil {
		cfg.Client = o.httpClient
	}
	return cfg
}

// exchange sends req and returns the status code and the full body.
func exchange(ctx context.Context, t Transport, req Request) (int, []byte, error) {
	sreq := starr.Request{URI: req.Path, Query: req.Query}
	if req.Body != nil {
		sreq.Body = bytes.NewReader(req.Body)
	}

	var (
		resp *http.Response
		err  error
	)
	switch req.Method {
	case http.MethodGet:
		resp, err = t.Get(ctx, sreq)
	case http.MethodPost:
		resp, err = t.Post(ctx, sreq)
	case http.MethodPut:
		resp, err = t.Put(ctx, sreq)
	case http.MethodDelete:
		resp, err = t.Delete(ctx, sreq)
	default:
		return 0, nil, fmt.Errorf("toggl: unsupported method %q", req.Method)
	}
	if err != nil {
		var reqErr *starr.ReqError
		if errors.As(err, &reqErr) {
			return 0, nil, &APIError{
				StatusCode: reqErr.Code,
				Method:     req.Method,
				Path:       req.Path,
				Body:       reqErr.Body,
			}
		}
		return 0, nil, fmt.Errorf("request failed: %s: %w", req, err)
	}
	if resp == nil {
		return 0, nil, fmt.Errorf("request failed: %s: %w", req, ErrNilArgument)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
