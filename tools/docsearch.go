// Package tools registers the MCP tools exposed by the server: one search
// and one get-page tool per configured documentation site, or a single
// configuration diagnostic when no site is configured.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lunrsearch/mcp-server/internal/loader"
	"github.com/lunrsearch/mcp-server/internal/lunr"
	"github.com/lunrsearch/mcp-server/internal/page"
	"github.com/lunrsearch/mcp-server/internal/sources"
)

// SearchInput defines input for the per-site search tools.
type SearchInput struct {
	Query string `json:"query" jsonschema:"Search query string"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default: 10)"`
}

// SearchResultItem is one entry of a search tool response. While the site's
// index is still loading, the single returned entry carries Error and Message
// instead of a real hit.
type SearchResultItem struct {
	Error   string   `json:"error,omitempty"`
	Message string   `json:"message,omitempty"`
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Path    []string `json:"path"`
}

// SearchOutput defines output for the per-site search tools.
type SearchOutput struct {
	Results []SearchResultItem `json:"results"`
}

// GetPageInput defines input for the per-site get-page tools.
type GetPageInput struct {
	Location string `json:"location" jsonschema:"Page URL path from search results (e.g. /docs/get-started/)"`
}

// GetPageOutput defines output for the per-site get-page tools. Error is set
// for the loading and not-found outcomes; content fetch failures are not
// errors and surface as placeholder Content instead. Path is always present
// on success, an empty breadcrumb included, and absent otherwise (omitzero
// keeps the nil slice of the error outcomes out of the payload).
type GetPageOutput struct {
	Error   string   `json:"error,omitempty"`
	Message string   `json:"message,omitempty"`
	Title   string   `json:"title,omitempty"`
	URL     string   `json:"url,omitempty"`
	Path    []string `json:"path,omitzero"`
	Content string   `json:"content,omitempty"`
}

// siteTools binds one configured site's identity to its tool handlers.
// Captured by value at registration time so every tool keeps its own site
// regardless of registration loop mechanics.
type siteTools struct {
	key      string
	indexURL string
	baseURL  string
	loader   *loader.Loader
	resolver *page.Resolver
}

// RegisterDocSearchTools registers search_<key> and get_<key>_page for every
// configured site. All sites share the loader (and its cache) and resolver.
func RegisterDocSearchTools(server *mcp.Server, sites []sources.Source, ld *loader.Loader, resolver *page.Resolver) {
	for _, site := range sites {
		st := siteTools{
			key:      site.Key,
			indexURL: site.IndexURL,
			baseURL:  site.BaseURL,
			loader:   ld,
			resolver: resolver,
		}

		mcp.AddTool(server,
			&mcp.Tool{
				Name: fmt.Sprintf("search_%s", st.key),
				Description: fmt.Sprintf("Search %s documentation. Returns matching pages with title, url, and path (breadcrumb). "+
					"Always include the url in your response to users.", st.key),
			},
			st.search,
		)

		mcp.AddTool(server,
			&mcp.Tool{
				Name: fmt.Sprintf("get_%s_page", st.key),
				Description: fmt.Sprintf("Get the full content of a specific %s documentation page by URL path from search results. "+
					"Always include the url in your response to users.", st.key),
			},
			st.getPage,
		)

		log.Printf("✓ Registered search_%s and get_%s_page (index: %s)", st.key, st.key, st.indexURL)
	}
}

// search handles the search_<key> tool.
func (st siteTools) search(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	sessionLog(ctx, req, "debug", fmt.Sprintf("search_%s: query=%q limit=%d", st.key, input.Query, input.Limit))

	ix, err := st.loader.Acquire(ctx, st.indexURL)
	if errors.Is(err, loader.ErrStillLoading) {
		sessionLog(ctx, req, "info", fmt.Sprintf("search index for %s is still loading, asking caller to retry", st.key))
		return nil, SearchOutput{Results: []SearchResultItem{loadingSearchMarker(st.key)}}, nil
	}
	if err != nil {
		sessionLog(ctx, req, "error", fmt.Sprintf("search index for %s failed to load: %v", st.key, err))
		return nil, SearchOutput{}, fmt.Errorf("loading search index for %s: %w", st.key, err)
	}

	results := lunr.Rank(ix, input.Query, st.baseURL, input.Limit)
	items := make([]SearchResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, SearchResultItem{
			Title: r.Title,
			URL:   r.URL,
			Path:  r.Path,
		})
	}

	sessionLog(ctx, req, "debug", fmt.Sprintf("search_%s: %d results", st.key, len(items)))
	return nil, SearchOutput{Results: items}, nil
}

// getPage handles the get_<key>_page tool.
func (st siteTools) getPage(ctx context.Context, req *mcp.CallToolRequest, input GetPageInput) (*mcp.CallToolResult, GetPageOutput, error) {
	sessionLog(ctx, req, "debug", fmt.Sprintf("get_%s_page: location=%q", st.key, input.Location))

	ix, err := st.loader.Acquire(ctx, st.indexURL)
	if errors.Is(err, loader.ErrStillLoading) {
		sessionLog(ctx, req, "info", fmt.Sprintf("search index for %s is still loading, asking caller to retry", st.key))
		return nil, GetPageOutput{
			Error:   "loading",
			Title:   "Index Loading - Please Retry",
			Message: fmt.Sprintf("Search index for %s is still loading. Please retry in a moment.", st.key),
		}, nil
	}
	if err != nil {
		sessionLog(ctx, req, "error", fmt.Sprintf("search index for %s failed to load: %v", st.key, err))
		return nil, GetPageOutput{}, fmt.Errorf("loading search index for %s: %w", st.key, err)
	}

	p, err := st.resolver.Resolve(ctx, ix, st.baseURL, input.Location)
	var notFound *page.NotFoundError
	if errors.As(err, &notFound) {
		sessionLog(ctx, req, "warning", fmt.Sprintf("get_%s_page: %v", st.key, notFound))
		return nil, GetPageOutput{Error: notFound.Error()}, nil
	}
	if err != nil {
		return nil, GetPageOutput{}, fmt.Errorf("resolving page for %s: %w", st.key, err)
	}

	return nil, GetPageOutput{
		Title:   p.Title,
		URL:     p.URL,
		Path:    p.Path,
		Content: p.Content,
	}, nil
}

// loadingSearchMarker is the singleton result a search returns while its
// site's index is still being fetched. Not an error: the caller just retries.
func loadingSearchMarker(key string) SearchResultItem {
	return SearchResultItem{
		Error: "loading",
		Title: "Index Loading - Please Retry",
		Message: fmt.Sprintf("Search index for %s is still loading (large index ~20k items). "+
			"This is normal for the first search. Please retry your search in a moment - "+
			"subsequent searches will be instant.", key),
		URL:  "",
		Path: []string{},
	}
}

// sessionLog forwards a status line to the MCP client when the session
// supports logging. Best effort: tool results never depend on it.
func sessionLog(ctx context.Context, req *mcp.CallToolRequest, level mcp.LoggingLevel, msg string) {
	if req == nil || req.Session == nil {
		return
	}
	_ = req.Session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  level,
		Logger: "docsearch",
		Data:   msg,
	})
}
