// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/util"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	// htmlSanitizer allows the safe HTML subset produced from post content.
	htmlSanitizer = bluemonday.UGCPolicy()

	// textSanitizer strips all markup.
	textSanitizer = bluemonday.StrictPolicy()
)

// Markdown renders post content to sanitized HTML. Content that fails to
// render is shown escaped.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}

// Excerpt returns the plain text of post content cut to max runes.
func Excerpt(src string, max int) string {
	var buf bytes.Buffer
	text := src
	if err := markdown.Convert([]byte(src), &buf); err == nil {
		text = html.UnescapeString(textSanitizer.Sanitize(buf.String()))
	}
	text = strings.Join(strings.Fields(text), " ")
	return Truncate(text, max)
}

// Truncate cuts s to max runes, appending an ellipsis when shortened.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": util.FormatDate,
		"truncate":   Truncate,
		"excerpt":    Excerpt,
		"markdown":   Markdown,
		"hasID": func(ids []model.ID, id model.ID) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
	}
}
