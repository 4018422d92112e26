// Package page resolves document locations against a loaded search index and
// fetches rendered page content for them.
package page

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/lunrsearch/mcp-server/internal/lunr"
)

// fetchTimeout bounds a single page download.
const fetchTimeout = 30 * time.Second

// Page is a resolved documentation page. Title, URL and Path always come from
// the index record; Content degrades to a placeholder when the fetch fails.
type Page struct {
	Title   string
	URL     string
	Path    []string
	Content string
}

// NotFoundError reports that a location matches no indexed document. It
// carries the location exactly as the caller gave it, fragment included.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Page not found: %s", e.Location)
}

// Resolver fetches page content for index records.
type Resolver struct {
	client *http.Client
}

// NewResolver returns a Resolver using the given HTTP client. A nil client
// gets a default client with the standard fetch timeout.
func NewResolver(client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Resolver{client: client}
}

// Resolve finds the first document whose base path equals the normalized
// location and fetches its content. The location may be a bare path or a
// fully-qualified URL; only the path component matters, and any fragment
// suffix is stripped before matching. Content fetch problems degrade to a
// placeholder body; only an unknown location is an error.
func (r *Resolver) Resolve(ctx context.Context, ix *lunr.Index, baseURL, location string) (*Page, error) {
	basePath := normalizeLocation(location)

	var match *lunr.Document
	for _, doc := range ix.Documents() {
		if doc.BasePath() == basePath {
			match = &doc
			break
		}
	}
	if match == nil {
		return nil, &NotFoundError{Location: location}
	}

	pageURL := baseURL + basePath
	return &Page{
		Title:   match.Title,
		URL:     pageURL,
		Path:    match.Breadcrumb,
		Content: r.fetchContent(ctx, pageURL, match.Title),
	}, nil
}

// normalizeLocation reduces a location to the base path used as lookup key:
// the path component for fully-qualified URLs, fragment suffix stripped.
func normalizeLocation(location string) string {
	loc := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		loc = u.Path
	}
	base, _, _ := strings.Cut(loc, "#")
	return base
}

// fetchContent downloads the page and converts it to markdown. It never fails
// the call: fetch or conversion problems produce a placeholder body that
// still names the page, so the caller always gets the index metadata.
func (r *Resolver) fetchContent(ctx context.Context, pageURL, title string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fmt.Sprintf("# %s\n\nError fetching content: %s", title, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Sprintf("# %s\n\nError fetching content: %s", title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("# %s\n\nContent not available (HTTP %d)", title, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("# %s\n\nError fetching content: %s", title, err)
	}

	markdown, err := htmltomarkdown.ConvertString(trimToMainHeading(string(body)))
	if err != nil {
		log.Printf("Warning: converting %s to markdown: %v", pageURL, err)
		return fmt.Sprintf("# %s\n\nError fetching content: %s", title, err)
	}
	return markdown
}

// trimToMainHeading drops everything before the first <h1> element, bare or
// attributed, so that navigation and header boilerplate stay out of the
// converted text. A document without an h1 is converted whole.
func trimToMainHeading(markup string) string {
	lower := strings.ToLower(markup)
	first := -1
	for _, tag := range []string{"<h1>", "<h1 "} {
		if i := strings.Index(lower, tag); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	if first < 0 {
		return markup
	}
	return markup[first:]
}
