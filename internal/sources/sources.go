// Package sources holds the static registry of configured documentation
// sites. Sources are parsed once at startup and never change afterwards.
package sources

import (
	"fmt"
	"strings"
)

// EnvVar is the environment variable enumerating the configured sites.
// Format: "key1=indexURL1,key2=indexURL2".
const EnvVar = "LUNR_SITES"

// Source is one configured documentation site.
type Source struct {
	Key      string // short identifier, used in tool names (search_<key>)
	IndexURL string // URL of the Lunr.js search index (JSON document)
	BaseURL  string // URL prefix page paths resolve against, derived from IndexURL
}

// ParseSites parses the LUNR_SITES value into the source registry. An empty
// or absent value yields zero sources. A malformed entry is a fatal
// configuration error; there is no partial recovery.
func ParseSites(value string) ([]Source, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	var srcs []Source
	for _, entry := range strings.Split(value, ",") {
		key, indexURL, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			return nil, fmt.Errorf("malformed site entry %q: expected key=indexURL", strings.TrimSpace(entry))
		}
		key = strings.TrimSpace(key)
		indexURL = strings.TrimSpace(indexURL)
		if key == "" || indexURL == "" {
			return nil, fmt.Errorf("malformed site entry %q: empty key or index URL", strings.TrimSpace(entry))
		}

		srcs = append(srcs, Source{
			Key:      key,
			IndexURL: indexURL,
			BaseURL:  deriveBaseURL(indexURL),
		})
	}

	return srcs, nil
}

// deriveBaseURL drops the last path segment of the index URL
// (e.g. /search-index.json), leaving the prefix page content lives under.
func deriveBaseURL(indexURL string) string {
	if i := strings.LastIndex(indexURL, "/"); i >= 0 {
		return indexURL[:i]
	}
	return indexURL
}
