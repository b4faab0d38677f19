// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"strings"
)

// knownLicenses maps canonical SPDX identifiers to the variations that
// show up in the wild.
var knownLicenses = map[string][]string{
	"MIT":          {"MIT", "MIT License"},
	"Apache-2.0":   {"Apache 2.0", "Apache License 2.0", "Apache", "Apache-2.0"},
	"GPL-3.0":      {"GPLv3", "GPL 3.0", "GNU GPL 3.0", "GPL-3.0", "GPLv3+"},
	"BSD-3-Clause": {"BSD 3-Clause", "BSD-3-Clause", "3-clause BSD", "BSD 3 Clause"},
	"BSD-2-Clause": {"BSD 2-Clause", "BSD-2-Clause", "2-clause BSD", "Simplified BSD"},
	"ISC":          {"ISC", "ISC License"},
	"LGPL-3.0":     {"LGPLv3", "LGPL 3.0", "LGPL-3.0"},
	"Unlicense":    {"Unlicense", "The Unlicense"},
	"MPL-2.0":      {"Mozilla Public License 2.0", "MPL 2.0", "MPL-2.0"},
	"AGPL-3.0":     {"AGPLv3", "AGPL 3.0", "AGPL-3.0"},
}

// licenseVariations is the lowercased reverse index of knownLicenses.
var licenseVariations = func() map[string]string {
	m := make(map[string]string)
	for canonical, variations := range knownLicenses {
		for _, v := range variations {
			m[strings.ToLower(v)] = canonical
		}
	}
	return m
}()

// NormalizeLicense maps a free-form license name onto its canonical
// SPDX identifier when it is a known variation; unknown names pass
// through unchanged.
func NormalizeLicense(license string) string {
	license = strings.TrimSpace(license)
	if canonical, ok := licenseVariations[strings.ToLower(license)]; ok {
		return canonical
	}
	return license
}

// LicenseResult is the outcome of a license check for one tool.
type LicenseResult struct {
	Detected        string `json:"detectedLicense"`
	Corrected       string `json:"correctedLicense,omitempty"`
	Confidence      int    `json:"confidence"`
	Reason          string `json:"reason"`
	NeedsCorrection bool   `json:"needsCorrection"`
}

// LicenseChecker validates a tool's declared license against what the
// active provider knows about the project. It never fails: when no
// provider is usable or the reply does not parse, it falls back to
// keyword heuristics over the name and description.
type LicenseChecker struct {
	registry *Registry
}

func NewLicenseChecker(reg *Registry) *LicenseChecker {
	return &LicenseChecker{registry: reg}
}

const licenseSystemPrompt = `You are a software licensing expert verifying the declared license of an open-source tool.
You answer ONLY with a single JSON object, no prose, no markdown fences, matching exactly:
{"detectedLicense": string, "correctedLicense": string, "confidence": number, "reason": string}
Rules:
- "detectedLicense" echoes the declared license, normalized to its SPDX identifier, or "" when none was declared.
- "correctedLicense" is the actual license of the project when it differs from the declared one, otherwise "".
- "confidence" is 0 to 100.
- "reason" is one short sentence.`

// Check normalizes the declared license and asks the active provider to
// confirm it. The heuristic fallback means the result is advisory, not
// authoritative; the editor shows it next to the license field and the
// admin decides.
func (c *LicenseChecker) Check(ctx context.Context, name, declared, description string) *LicenseResult {
	declared = NormalizeLicense(declared)

	raw, err := c.registry.Generate(ctx, licenseSystemPrompt, buildLicensePrompt(name, declared, description))
	if err != nil {
		return checkLicenseLocally(name, declared, description)
	}

	var reply struct {
		Detected   string `json:"detectedLicense"`
		Corrected  string `json:"correctedLicense"`
		Confidence int    `json:"confidence"`
		Reason     string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return checkLicenseLocally(name, declared, description)
	}

	result := &LicenseResult{
		Detected:   NormalizeLicense(reply.Detected),
		Corrected:  NormalizeLicense(reply.Corrected),
		Confidence: reply.Confidence,
		Reason:     reply.Reason,
	}
	if result.Detected == "" {
		result.Detected = declared
	}
	if result.Corrected == result.Detected {
		result.Corrected = ""
	}
	result.NeedsCorrection = result.Corrected != ""
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 100 {
		result.Confidence = 100
	}
	if result.Reason == "" {
		result.Reason = "model analysis"
	}
	return result
}

func buildLicensePrompt(name, declared, description string) string {
	var b strings.Builder
	b.WriteString("Tool name: ")
	b.WriteString(name)
	b.WriteString("\nDeclared license: ")
	if declared == "" {
		b.WriteString("none")
	} else {
		b.WriteString(declared)
	}
	b.WriteString("\nDescription: ")
	b.WriteString(description)
	return b.String()
}

// licenseKeywords catch mentions in descriptions that contradict the
// declared license. Ordered so the more specific patterns win.
var licenseKeywords = []struct {
	keyword   string
	canonical string
}{
	{"bsd 3-clause", "BSD-3-Clause"},
	{"bsd-3", "BSD-3-Clause"},
	{"3-clause", "BSD-3-Clause"},
	{"bsd 2-clause", "BSD-2-Clause"},
	{"bsd-2", "BSD-2-Clause"},
	{"apache 2", "Apache-2.0"},
	{"apache-2", "Apache-2.0"},
	{"agpl-3", "AGPL-3.0"},
	{"agplv3", "AGPL-3.0"},
	{"lgpl-3", "LGPL-3.0"},
	{"lgplv3", "LGPL-3.0"},
	{"gpl-3", "GPL-3.0"},
	{"gplv3", "GPL-3.0"},
}

// checkLicenseLocally is the no-provider fallback: it scans the name
// and description for license keywords and flags a declared license
// they contradict.
func checkLicenseLocally(name, declared, description string) *LicenseResult {
	search := strings.ToLower(name + " " + description)

	var inText string
	for _, k := range licenseKeywords {
		if strings.Contains(search, k.keyword) {
			inText = k.canonical
			break
		}
	}

	result := &LicenseResult{
		Detected:   declared,
		Confidence: 50,
		Reason:     "no significant discrepancy detected",
	}
	if declared != "" && declared != "Unlicense" && inText != "" && inText != declared {
		result.Corrected = inText
		result.NeedsCorrection = true
		result.Confidence = 75
		result.Reason = "keywords in the description suggest " + inText
	}
	return result
}
