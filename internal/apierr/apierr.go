// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apierr defines the collaborator error type and maps pipeline
// errors to HTTP status codes and stable kind strings.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"blogsmith/internal/draft"
)

// UpstreamError reports a failed call to an external collaborator: a
// non-2xx response (Status set) or a transport failure (Status zero).
type UpstreamError struct {
	Service string
	Status  int
	Reason  string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s upstream error: status %d: %s", e.Service, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s upstream error: %s", e.Service, e.Reason)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream builds an UpstreamError for a non-2xx response.
func Upstream(service string, status int, reason string) *UpstreamError {
	return &UpstreamError{Service: service, Status: status, Reason: reason}
}

// Transport wraps a network-level failure talking to service.
func Transport(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Reason: err.Error(), Err: err}
}

// ErrInvalidInput marks request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// ErrNoResearch is returned when research produced no documents; the text
// generator is never called in that case.
var ErrNoResearch = errors.New("research returned no results for the provided keywords")

// ErrNotFound marks a missing archived article.
var ErrNotFound = errors.New("not found")

// ErrUnavailable marks an optional backend (archive, storage) that is not
// configured.
var ErrUnavailable = errors.New("service unavailable")

// Invalid wraps a validation message so that Status maps it to 400.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Error kinds, used as JSON error codes and metric labels.
const (
	KindInvalidInput = "invalid_input"
	KindNoResearch   = "no_research"
	KindParse        = "draft_parse"
	KindValidation   = "draft_validation"
	KindUpstream     = "upstream"
	KindTimeout      = "timeout"
	KindNotFound     = "not_found"
	KindUnavailable  = "unavailable"
	KindInternal     = "internal"
)

// Kind classifies err.
func Kind(err error) string {
	var (
		upstream *UpstreamError
		parse    *draft.ParseError
		invalid  *draft.ValidationError
	)
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNoResearch):
		return KindNoResearch
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	case errors.As(err, &parse):
		return KindParse
	case errors.As(err, &invalid):
		return KindValidation
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &upstream):
		return KindUpstream
	default:
		return KindInternal
	}
}

// Status maps err to the HTTP status a handler should respond with.
func Status(err error) int {
	switch Kind(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNoResearch:
		return http.StatusUnprocessableEntity
	case KindParse, KindValidation, KindUpstream:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
