// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinSearchQueryLength is the minimum number of characters a search query needs.
const MinSearchQueryLength = 3

// NormalizeQuery trims a search query and composes it to NFC so that the
// length check counts what the user sees, not combining marks.
func NormalizeQuery(q string) string {
	return norm.NFC.String(strings.TrimSpace(q))
}

// IsSearchableQuery reports whether a normalized query is long enough to search.
func IsSearchableQuery(q string) bool {
	return utf8.RuneCountInString(NormalizeQuery(q)) >= MinSearchQueryLength
}
