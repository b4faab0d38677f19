// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// apiError describes a non-2xx response from a provider endpoint. Keeping
// the status code lets callers distinguish auth failures from transient ones.
type apiError struct {
	label  string
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.label, e.status, e.body)
}

// isAuthError reports whether err is a provider rejection caused by the
// API key rather than the request itself.
func isAuthError(err error) bool {
	ae, ok := err.(*apiError)
	return ok && (ae.status == http.StatusUnauthorized || ae.status == http.StatusForbidden)
}

// postJSON marshals in, POSTs it to url with the given headers, and decodes
// the response into out. All provider endpoints in this package speak
// JSON-over-POST, so the plumbing lives here once. label prefixes errors
// so failures name the provider that produced them.
func postJSON(ctx context.Context, client *http.Client, label, url string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", label, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s request: %w", label, err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s http: %w", label, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s read body: %w", label, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &apiError{label: label, status: resp.StatusCode, body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s unmarshal: %w", label, err)
	}
	return nil
}

// newHTTPClient returns the client used for generation calls. Moderation
// uses a shorter timeout since those endpoints answer fast.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

func newModerationClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}
