// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned when the API answered with a non-2xx status.
// Data holds the raw response body.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Data    json.RawMessage
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// DataString returns the body when the API replied with a bare JSON string.
func (e *APIError) DataString() (string, bool) {
	var s string
	if err := json.Unmarshal(e.Data, &s); err != nil {
		return "", false
	}
	return s, true
}

// FieldErrors returns the raw "errors" member of the body, if present.
func (e *APIError) FieldErrors() (json.RawMessage, bool) {
	var body struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(e.Data, &body); err != nil || len(body.Errors) == 0 || string(body.Errors) == "null" {
		return nil, false
	}
	return body.Errors, true
}

// NetworkError is returned when no response was received.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newAPIError builds an APIError, extracting a human readable message from
// a {"message": ...} or {"error": ...} body, or a bare JSON string.
func newAPIError(method, path string, status int, raw []byte) *APIError {
	e := &APIError{Method: method, Path: path, Status: status}
	if len(raw) > 0 && json.Valid(raw) {
		e.Data = json.RawMessage(raw)
	} else if len(raw) > 0 {
		e.Data, _ = json.Marshal(strings.TrimSpace(string(raw)))
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Data, &body); err == nil {
		e.Message = body.Message
		if e.Message == "" {
			e.Message = body.Error
		}
	} else if s, ok := e.DataString(); ok {
		e.Message = s
	}
	return e
}

// MessageOf returns the remote message of an API error, or fallback when
// err carries none (including network errors).
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNetwork reports whether err means no response was received.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
