// Package lunr models Lunr.js search index documents and implements the
// lexical ranking used by the documentation search tools.
//
// A documentation site publishes its index either as a single JSON object or
// as an array of such objects (one per shard). Both shapes decode into the
// same flattened document sequence; consumers never branch on the wire shape.
package lunr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is one indexed page. Field tags follow the Lunr.js wire format
// used by Docusaurus-style sites: t=title, u=url path, b=breadcrumb.
type Document struct {
	Title      string   `json:"t"`
	URLPath    string   `json:"u"`
	Breadcrumb []string `json:"b"`
}

// BasePath returns the document's URL path with any fragment suffix removed.
// It is the deduplication and lookup key for the document.
func (d Document) BasePath() string {
	path, _, _ := strings.Cut(d.URLPath, "#")
	return path
}

// wireIndex is one index object as published on the wire.
type wireIndex struct {
	Documents []Document `json:"documents"`
}

// Index is a loaded, immutable search index.
type Index struct {
	docs   []Document
	shards int
}

// DecodeIndex validates and decodes a raw index document. The single-object
// and sharded-array shapes are resolved here, once, into a flattened record
// sequence preserving shard order and record order within each shard.
func DecodeIndex(data []byte) (*Index, error) {
	if err := validateIndexJSON(data); err != nil {
		return nil, err
	}

	var wire []wireIndex
	if sharded(data) {
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("decoding sharded index: %w", err)
		}
	} else {
		var single wireIndex
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decoding index: %w", err)
		}
		wire = []wireIndex{single}
	}

	ix := &Index{shards: len(wire)}
	for _, shard := range wire {
		for _, doc := range shard.Documents {
			if doc.Breadcrumb == nil {
				doc.Breadcrumb = []string{}
			}
			ix.docs = append(ix.docs, doc)
		}
	}
	return ix, nil
}

// sharded reports whether the raw document is an array of index objects.
func sharded(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Documents returns the flattened record sequence in traversal order.
func (ix *Index) Documents() []Document {
	return ix.docs
}

// Len returns the total number of document records across all shards.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Shards returns how many index objects the source published.
func (ix *Index) Shards() int {
	return ix.shards
}
