package slug

import "testing"

// TestGenerate exercises the slug generator with the names that actually
// appear in the taxonomy plus special-character and whitespace edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Frontend Frameworks",
			want:  "frontend-frameworks",
		},
		{
			name:  "three words",
			input: "Static Site Generators",
			want:  "static-site-generators",
		},
		{
			name:  "ampersand dropped",
			input: "Tech & Development",
			want:  "tech-development",
		},
		{
			name:  "slash collapses words",
			input: "CI/CD Tools",
			want:  "cicd-tools",
		},
		{
			name:  "already a slug",
			input: "vector-databases",
			want:  "vector-databases",
		},
		{
			name:  "mixed case single word",
			input: "APIs",
			want:  "apis",
		},
		{
			name:  "punctuation stripped",
			input: "ORMs & Query Builders",
			want:  "orms-query-builders",
		},
		{
			name:  "leading and trailing spaces",
			input: "  Terminal Tools  ",
			want:  "terminal-tools",
		},
		{
			name:  "multiple inner spaces collapse",
			input: "Code  Editors   IDEs",
			want:  "code-editors-ides",
		},
		{
			name:  "hyphen runs collapse",
			input: "Self -- Hosted",
			want:  "self-hosted",
		},
		{
			name:  "digits preserved",
			input: "Web3 Tooling 2026",
			want:  "web3-tooling-2026",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!!! ??? ...",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateIdempotent verifies that slugifying a slug is a no-op —
// the category join compares Generate(category name) against stored slugs,
// so re-slugging must never drift.
func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{"Frontend Frameworks", "ORMs & Query Builders", "Free Cloud Providers"}
	for _, in := range inputs {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate not idempotent: %q → %q → %q", in, once, twice)
		}
	}
}
