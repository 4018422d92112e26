// Command indexcheck fetches a Lunr search index from a URL, validates its
// shape, and prints a short summary. Useful for checking an index URL before
// handing it to the server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lunrsearch/mcp-server/internal/loader"
	"github.com/lunrsearch/mcp-server/internal/sources"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <index-url>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s https://grafana.com/docs/search-index.json\n", os.Args[0])
		os.Exit(1)
	}

	indexURL := os.Args[1]
	log.SetOutput(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	ix, err := loader.New(nil).Fetch(ctx, indexURL)
	if err != nil {
		log.Fatalf("Failed to load index: %v", err)
	}

	docs := ix.Documents()
	log.Printf("✓ Index OK: %d documents in %d shard(s), loaded in %v", len(docs), ix.Shards(), time.Since(start).Round(time.Millisecond))
	log.Printf("  Derived base URL: %s", deriveBase(indexURL))

	// Print a few sample entries so the index is recognizable at a glance.
	for i, d := range docs {
		if i == 5 {
			break
		}
		log.Printf("  [%d] %s (%s)", i, d.Title, d.URLPath)
	}
}

func deriveBase(indexURL string) string {
	srcs, err := sources.ParseSites("check=" + indexURL)
	if err != nil || len(srcs) != 1 {
		return "(unknown)"
	}
	return srcs[0].BaseURL
}
