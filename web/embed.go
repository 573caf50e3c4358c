// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the page templates and static assets.
package web

import "embed"

// Templates holds layouts/, partials/ and pages/.
//
//go:embed all:templates
var Templates embed.FS

// Static holds the stylesheet and other assets served under /static/.
//
//go:embed all:static
var Static embed.FS
