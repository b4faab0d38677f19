// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasics(t *testing.T) {
	html, err := ToHTML("# Getting Started\n\nLearn **React** step by step.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, "<h1 id=\"getting-started\">Getting Started</h1>") {
		t.Errorf("heading with auto ID missing:\n%s", html)
	}
	if !strings.Contains(html, "<strong>React</strong>") {
		t.Errorf("bold missing:\n%s", html)
	}
}

func TestToHTMLGFMTable(t *testing.T) {
	src := "| Tool | Pricing |\n| --- | --- |\n| Hugo | Open Source |"
	html, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM table not rendered:\n%s", html)
	}
}

func TestToHTMLHighlightsCode(t *testing.T) {
	src := "```go\nfunc main() {}\n```"
	html, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	// The highlighter emits inline-styled pre blocks instead of a bare <pre><code>.
	if !strings.Contains(html, "<pre") || !strings.Contains(html, "style=") {
		t.Errorf("code block not highlighted:\n%s", html)
	}
}

func TestToHTMLPassesRawHTML(t *testing.T) {
	html, err := ToHTML("intro\n\n<div class=\"callout\">note</div>")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, `<div class="callout">note</div>`) {
		t.Errorf("raw HTML should pass through:\n%s", html)
	}
}
