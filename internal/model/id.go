// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the blog entities exchanged with the remote API
// and the request payloads sent to it.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a remote identifier. The blog API emits numeric ids, while tokens
// and route parameters carry them as strings, so ID accepts both forms and
// always holds the decimal string.
type ID string

// String returns the identifier as a string.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// MarshalJSON writes numeric identifiers as JSON numbers and anything else
// as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// IDFromAny converts a decoded JSON value (as found in token claims) into an
// ID. Unsupported types yield an empty ID.
func IDFromAny(v any) ID {
	switch t := v.(type) {
	case string:
		return ID(t)
	case float64:
		return ID(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return ID(strconv.Itoa(t))
	case int64:
		return ID(strconv.FormatInt(t, 10))
	case json.Number:
		return ID(t.String())
	default:
		return ""
	}
}

// ParseIDs converts form values into identifiers, skipping blanks.
func ParseIDs(values []string) []ID {
	ids := make([]ID, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		ids = append(ids, ID(v))
	}
	return ids
}
