package lunr

import (
	"testing"
)

func TestDecodeIndex_SingleObject(t *testing.T) {
	data := []byte(`{
		"documents": [
			{"t": "Getting Started", "u": "/docs/start/", "b": ["Docs", "Start"]},
			{"t": "API Reference", "u": "/docs/api/#intro", "b": ["Docs", "API"]}
		]
	}`)

	ix, err := DecodeIndex(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ix.Len() != 2 {
		t.Fatalf("Expected 2 documents, got %d", ix.Len())
	}
	if ix.Shards() != 1 {
		t.Errorf("Expected 1 shard, got %d", ix.Shards())
	}

	docs := ix.Documents()
	if docs[0].Title != "Getting Started" {
		t.Errorf("Expected first title 'Getting Started', got %q", docs[0].Title)
	}
	if docs[1].URLPath != "/docs/api/#intro" {
		t.Errorf("Unexpected URL path: %q", docs[1].URLPath)
	}
}

func TestDecodeIndex_ShardedArray(t *testing.T) {
	data := []byte(`[
		{"documents": [{"t": "First", "u": "/a/", "b": []}]},
		{"documents": [{"t": "Second", "u": "/b/", "b": []}, {"t": "Third", "u": "/c/", "b": []}]}
	]`)

	ix, err := DecodeIndex(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ix.Shards() != 2 {
		t.Errorf("Expected 2 shards, got %d", ix.Shards())
	}
	if ix.Len() != 3 {
		t.Fatalf("Expected 3 documents, got %d", ix.Len())
	}

	// Flattening preserves shard order, then record order within a shard.
	titles := []string{"First", "Second", "Third"}
	for i, doc := range ix.Documents() {
		if doc.Title != titles[i] {
			t.Errorf("Document %d: expected title %q, got %q", i, titles[i], doc.Title)
		}
	}
}

func TestDecodeIndex_MissingDocuments(t *testing.T) {
	ix, err := DecodeIndex([]byte(`{}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ix.Len() != 0 {
		t.Errorf("Expected 0 documents, got %d", ix.Len())
	}
}

func TestDecodeIndex_NormalizesBreadcrumb(t *testing.T) {
	ix, err := DecodeIndex([]byte(`{"documents": [{"t": "No Crumbs", "u": "/x/"}]}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ix.Documents()[0].Breadcrumb == nil {
		t.Errorf("Expected non-nil breadcrumb for document without 'b'")
	}
}

func TestDecodeIndex_InvalidJSON(t *testing.T) {
	if _, err := DecodeIndex([]byte(`{"documents": [`)); err == nil {
		t.Errorf("Expected error for truncated JSON")
	}
}

func TestDecodeIndex_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"documents not an array", `{"documents": "nope"}`},
		{"title not a string", `{"documents": [{"t": 42, "u": "/x/"}]}`},
		{"breadcrumb not an array", `{"documents": [{"t": "X", "u": "/x/", "b": "Docs"}]}`},
		{"scalar document", `"just a string"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeIndex([]byte(tt.data)); err == nil {
				t.Errorf("Expected schema validation error for %s", tt.data)
			}
		})
	}
}

func TestDocument_BasePath(t *testing.T) {
	tests := []struct {
		urlPath string
		want    string
	}{
		{"/docs/x/", "/docs/x/"},
		{"/docs/x/#section", "/docs/x/"},
		{"/docs/x/#a#b", "/docs/x/"},
		{"", ""},
	}

	for _, tt := range tests {
		doc := Document{URLPath: tt.urlPath}
		if got := doc.BasePath(); got != tt.want {
			t.Errorf("BasePath(%q) = %q, want %q", tt.urlPath, got, tt.want)
		}
	}
}
