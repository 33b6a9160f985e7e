// Package testkit provides small helpers for testing code that talks to
// external HTTP services without touching the network.
package testkit

import (
	"io"
	"net/http"
	"strings"
)

// RoundTripFunc adapts a function into an http.RoundTripper.
type RoundTripFunc func(req *http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Client returns an *http.Client whose every request is served by fn.
func Client(fn RoundTripFunc) *http.Client {
	return &http.Client{Transport: fn}
}

// JSONResponse builds a synthetic JSON response for the given request.
func JSONResponse(req *http.Request, status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}
