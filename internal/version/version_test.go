// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfo_String(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc1234",
		BuildTime: "2025-01-30T12:00:00Z",
	}

	want := "blogfront v1.0.0 (commit: abc1234, built: 2025-01-30T12:00:00Z)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInfo_ZeroValue(t *testing.T) {
	// Zero value before ldflags injection
	var info Info

	if got, want := info.String(), "blogfront unknown (commit: unknown, built: unknown)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := info.UserAgent(), "blogfront/unknown"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}

func TestInfo_UserAgent(t *testing.T) {
	info := Info{Version: "v2.3.4"}
	if got, want := info.UserAgent(), "blogfront/v2.3.4"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
