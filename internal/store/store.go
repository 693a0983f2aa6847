// Package store talks to the CouchDB-style document store over HTTP, with
// abstraction for testing.
package store

import (
	"context"
	"fmt"
)

// Response is the part of an HTTP exchange the reporting loop consumes.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Date is the response's Date header, or "" when absent. Every
	// successful exchange is a clock sync opportunity.
	Date string

	// Body is the full response body (error detail on rejection).
	Body []byte
}

// Client issues the store requests. Exactly one request is ever in flight;
// the reporting loop is strictly sequential.
type Client interface {
	// Get performs the one-time startup GET that seeds the clock.
	Get(ctx context.Context) (Response, error)

	// Post transmits one report document.
	Post(ctx context.Context, body []byte) (Response, error)
}

// BootstrapError is a non-200 status on the startup GET.
type BootstrapError struct {
	Status int
	Body   string
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("clock retrieve failed: %d %s", e.Status, e.Body)
}

// RejectedError is a non-200/201 status on a report POST.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("failed to post state, %d: %s", e.Status, e.Body)
}

// TransportError is a network-level failure on any request.
type TransportError struct {
	Op  string // "get" or "post"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
