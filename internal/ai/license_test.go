// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"testing"
)

func TestNormalizeLicense(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"MIT License", "MIT"},
		{"mit license", "MIT"},
		{"Apache", "Apache-2.0"},
		{"GPLv3+", "GPL-3.0"},
		{"  Simplified BSD  ", "BSD-2-Clause"},
		{"The Unlicense", "Unlicense"},
		{"WTFPL", "WTFPL"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeLicense(c.in); got != c.want {
			t.Errorf("NormalizeLicense(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLicenseCheckerParsesProviderReply(t *testing.T) {
	mock := &mockProvider{name: "test", response: "```json\n" +
		`{"detectedLicense": "MIT", "correctedLicense": "Apache License 2.0", "confidence": 150, "reason": "the repository carries an Apache 2.0 LICENSE file"}` +
		"\n```"}
	reg := &Registry{
		providers: map[string]Provider{"test": mock},
		active:    "test",
	}

	result := NewLicenseChecker(reg).Check(context.Background(), "acme-cli", "MIT", "a command line tool")
	if result.Detected != "MIT" {
		t.Errorf("Detected: got %q, want MIT", result.Detected)
	}
	if result.Corrected != "Apache-2.0" {
		t.Errorf("Corrected: got %q, want Apache-2.0 (normalized)", result.Corrected)
	}
	if !result.NeedsCorrection {
		t.Error("expected NeedsCorrection when the corrected license differs")
	}
	if result.Confidence != 100 {
		t.Errorf("Confidence: got %d, want clamped 100", result.Confidence)
	}

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.callCount != 1 {
		t.Errorf("provider callCount: got %d, want 1", mock.callCount)
	}
}

func TestLicenseCheckerClearsMatchingCorrection(t *testing.T) {
	mock := &mockProvider{name: "test", response: `{"detectedLicense": "MIT", "correctedLicense": "MIT License", "confidence": 90, "reason": "declared license matches"}`}
	reg := &Registry{
		providers: map[string]Provider{"test": mock},
		active:    "test",
	}

	result := NewLicenseChecker(reg).Check(context.Background(), "acme-cli", "MIT", "")
	if result.Corrected != "" {
		t.Errorf("Corrected: got %q, want empty when it normalizes to the detected license", result.Corrected)
	}
	if result.NeedsCorrection {
		t.Error("NeedsCorrection must be false when nothing differs")
	}
}

func TestLicenseCheckerFallsBackWithoutProvider(t *testing.T) {
	reg := NewRegistry("gemini", nil)

	result := NewLicenseChecker(reg).Check(context.Background(), "ffwrap", "MIT", "A thin wrapper around FFmpeg, distributed under GPLv3.")
	if result.Corrected != "GPL-3.0" {
		t.Errorf("Corrected: got %q, want GPL-3.0 from the description keywords", result.Corrected)
	}
	if !result.NeedsCorrection {
		t.Error("expected NeedsCorrection from the keyword fallback")
	}
	if result.Confidence != 75 {
		t.Errorf("Confidence: got %d, want 75", result.Confidence)
	}
}

func TestLicenseCheckerFallsBackOnGarbageReply(t *testing.T) {
	mock := &mockProvider{name: "test", response: "I cannot answer that in JSON, sorry."}
	reg := &Registry{
		providers: map[string]Provider{"test": mock},
		active:    "test",
	}

	result := NewLicenseChecker(reg).Check(context.Background(), "quietlib", "ISC", "A small logging library.")
	if result.NeedsCorrection {
		t.Error("no keyword evidence: fallback must not flag a correction")
	}
	if result.Detected != "ISC" {
		t.Errorf("Detected: got %q, want the declared license", result.Detected)
	}
	if result.Confidence != 50 {
		t.Errorf("Confidence: got %d, want 50", result.Confidence)
	}
}
