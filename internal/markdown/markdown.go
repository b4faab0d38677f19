// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts guide bodies from Markdown into HTML using
// goldmark. Guides are written by admins in the console, so raw HTML
// embedded in the Markdown is trusted and passed through.
package markdown

import (
	"bytes"

	chroma "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var engine = newEngine()

func newEngine() goldmark.Markdown {
	// Fenced code blocks carry most of a guide's value; highlight them
	// server-side so the front-end ships no highlighter.
	highlighter := highlighting.NewHighlighting(
		highlighting.WithStyle("monokai"),
		highlighting.WithFormatOptions(
			chroma.TabWidth(4),
		),
	)

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // tables, strikethrough, autolinks, task lists
			extension.Typographer, // smart quotes and dashes
			highlighter,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // heading anchors for in-guide navigation
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // admin-authored content only
		),
	)
}

// ToHTML renders Markdown source to HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
