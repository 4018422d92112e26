package sources

import (
	"testing"
)

func TestParseSites_Empty(t *testing.T) {
	for _, value := range []string{"", "   ", "\t"} {
		srcs, err := ParseSites(value)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", value, err)
		}
		if len(srcs) != 0 {
			t.Errorf("Expected 0 sources for %q, got %d", value, len(srcs))
		}
	}
}

func TestParseSites_SingleSite(t *testing.T) {
	srcs, err := ParseSites("mysite=https://example.com/search-index.json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(srcs) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(srcs))
	}

	src := srcs[0]
	if src.Key != "mysite" {
		t.Errorf("Expected key 'mysite', got %q", src.Key)
	}
	if src.IndexURL != "https://example.com/search-index.json" {
		t.Errorf("Unexpected index URL: %q", src.IndexURL)
	}
	if src.BaseURL != "https://example.com" {
		t.Errorf("Expected base URL 'https://example.com', got %q", src.BaseURL)
	}
}

func TestParseSites_MultipleSites(t *testing.T) {
	srcs, err := ParseSites("a=https://a.example/docs/idx.json, b=https://b.example/idx.json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(srcs) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(srcs))
	}
	if srcs[0].Key != "a" || srcs[1].Key != "b" {
		t.Errorf("Expected keys a, b in order, got %q, %q", srcs[0].Key, srcs[1].Key)
	}
	if srcs[0].BaseURL != "https://a.example/docs" {
		t.Errorf("Unexpected base URL for a: %q", srcs[0].BaseURL)
	}
}

func TestParseSites_TrimsWhitespace(t *testing.T) {
	srcs, err := ParseSites("  key = https://example.com/idx.json ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if srcs[0].Key != "key" {
		t.Errorf("Expected trimmed key, got %q", srcs[0].Key)
	}
	if srcs[0].IndexURL != "https://example.com/idx.json" {
		t.Errorf("Expected trimmed index URL, got %q", srcs[0].IndexURL)
	}
}

func TestParseSites_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"missing equals", "mysite"},
		{"empty key", "=https://example.com/idx.json"},
		{"empty url", "mysite="},
		{"bad second entry", "a=https://a.example/idx.json,broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSites(tt.value); err == nil {
				t.Errorf("Expected error for %q, got none", tt.value)
			}
		})
	}
}

func TestDeriveBaseURL_NoSlash(t *testing.T) {
	// Degenerate index URL without a path keeps the value as-is.
	if got := deriveBaseURL("example"); got != "example" {
		t.Errorf("Expected 'example', got %q", got)
	}
}
