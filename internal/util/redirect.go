// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"strings"
)

// IsLocalPath reports whether target is a path on this site.
// Used before redirecting to prevent open redirects (CWE-601).
func IsLocalPath(target string) bool {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return false
	}
	u, err := url.Parse(strings.ReplaceAll(target, "\\", "/"))
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
