package toggl

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// resource executes requests for one model type under one API version. Every
// endpoint method, synchronous or not, ends up here.
type resource[T any] struct {
	transport Transport
	api       Version
	logger    zerolog.Logger
	parse     func(Object) (*T, error)
}

func newResource[T any](t Transport, api Version, logger zerolog.Logger, parse func(Object) (*T, error)) resource[T] {
	return resource[T]{transport: t, api: api, logger: logger, parse: parse}
}

func (r resource[T]) send(ctx context.Context, opts Options) (Request, int, []byte, error) {
	req, err := opts.Request(r.api)
	if err != nil {
		return req, 0, nil, err
	}
	started := time.Now()
	status, raw, err := exchange(ctx, r.transport, req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
	}
	r.logger.Debug().
		Str("api", r.api.Name).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", status).
		Dur("took", time.Since(started)).
		Msg("Toggl API request")
	return req, status, raw, err
}

func (r resource[T]) one(ctx context.Context, opts Options) (*Response[T], error) {
	req, status, raw, err := r.send(ctx, opts)
	if err != nil {
		return nil, err
	}
	resp, err := NewResponse(status, raw, r.api.DataEnvelope, r.parse)
	return resp, annotate(err, req)
}

func (r resource[T]) many(ctx context.Context, opts Options) (*ListResponse[T], error) {
	req, status, raw, err := r.send(ctx, opts)
	if err != nil {
		return nil, err
	}
	resp, err := NewListResponse(status, raw, r.api.DataEnvelope, r.parse)
	return resp, annotate(err, req)
}

func annotate(err error, req Request) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		apiErr.Method = req.Method
		apiErr.Path = req.Path
	}
	return err
}
