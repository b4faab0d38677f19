// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"devdirectory/internal/models"
)

// Validation limits for catalog and submission fields.
const (
	maxNameLen        = 120
	maxDescriptionLen = 5_000
	maxShortDescLen   = 300
	maxURLLen         = 500
	maxTagLen         = 50
	maxTagCount       = 20
	maxProjectDescLen = 2_000
	minProjectDescLen = 10
)

// validateTool checks catalog tool inputs and returns the first error found.
func validateTool(t *models.Tool) string {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 120 characters)."
	}
	if strings.TrimSpace(t.Category) == "" {
		return "Category is required."
	}
	if utf8.RuneCountInString(t.Description) > maxDescriptionLen {
		return "Description is too long (max 5,000 characters)."
	}
	if utf8.RuneCountInString(t.ShortDescription) > maxShortDescLen {
		return "Short description is too long (max 300 characters)."
	}
	if msg := validateWebsite(t.WebsiteURL, true); msg != "" {
		return msg
	}
	if msg := validateWebsite(t.GithubURL, false); msg != "" {
		return msg
	}
	if !t.Pricing.Valid() {
		return "Pricing must be one of: Free, Paid, Freemium, Open Source."
	}
	if t.Stars < 0 {
		return "Stars cannot be negative."
	}
	if len(t.Tags) > maxTagCount {
		return "Too many tags (max 20)."
	}
	for _, tag := range t.Tags {
		if strings.TrimSpace(tag) == "" {
			return "Tags cannot be blank."
		}
		if utf8.RuneCountInString(tag) > maxTagLen {
			return "Tag is too long (max 50 characters)."
		}
	}
	return ""
}

// validateSubmission checks a public tool submission.
func validateSubmission(s *models.Submission) string {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 120 characters)."
	}
	if msg := validateWebsite(s.Website, true); msg != "" {
		return msg
	}
	if strings.TrimSpace(s.Description) == "" {
		return "Description is required."
	}
	if utf8.RuneCountInString(s.Description) > maxDescriptionLen {
		return "Description is too long (max 5,000 characters)."
	}
	if strings.TrimSpace(s.Category) == "" {
		return "Category is required."
	}
	if !s.Pricing.Valid() {
		return "Pricing must be one of: Free, Paid, Freemium, Open Source."
	}
	if s.Email != "" {
		if _, err := mail.ParseAddress(s.Email); err != nil {
			return "Contact email is not a valid address."
		}
	}
	return ""
}

// validateWebsite checks an http(s) URL field. required controls whether
// an empty value is an error.
func validateWebsite(raw string, required bool) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return "Website URL is required."
		}
		return ""
	}
	if utf8.RuneCountInString(raw) > maxURLLen {
		return "URL is too long (max 500 characters)."
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "URL must start with http:// or https://."
	}
	return ""
}

// validateProjectDescription checks the free-text input of the stack
// recommender. The lower bound filters out junk like "app" that can only
// produce junk recommendations.
func validateProjectDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) < minProjectDescLen {
		return "Please describe your project in at least a sentence."
	}
	if utf8.RuneCountInString(desc) > maxProjectDescLen {
		return "Project description is too long (max 2,000 characters)."
	}
	return ""
}
