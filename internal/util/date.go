// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "time"

// DisplayDateLayout renders dates as "Jan 02, 2006".
const DisplayDateLayout = "Jan 02, 2006"

// timestampLayouts lists the formats the remote API is known to emit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate converts a remote timestamp into a short display date.
// Unparseable values are returned unchanged so the page still shows something.
func FormatDate(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.Format(DisplayDateLayout)
		}
	}
	return timestamp
}
