package client

import (
	"fmt"
	"strings"
)

// TransportError means the endpoint could not be reached at all.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError means the endpoint answered with a status of 400 or above.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	status := strings.TrimSpace(e.Status)
	if status == "" {
		return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("HTTP %s from %s", status, e.Endpoint)
}

// EmptyBodyError means the endpoint answered successfully without a usable JSON body.
type EmptyBodyError struct {
	Endpoint string
}

func (e *EmptyBodyError) Error() string {
	return fmt.Sprintf("no data returned from %s", e.Endpoint)
}

// RemoteError carries the API's own error message.
type RemoteError struct {
	Endpoint string
	Message  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("AnimeApi error from %s: %s", e.Endpoint, e.Message)
}
