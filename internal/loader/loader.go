// Package loader coordinates fetching and caching of remote search indexes.
//
// Indexes can be large (tens of thousands of documents) and slow to fetch the
// first time. The Loader guarantees that at most one fetch per index URL is
// in flight at any moment, lets every concurrent caller await that same
// fetch, and bounds how long a single caller waits before being told to
// retry. A caller timing out never cancels the fetch itself: the download
// keeps running so a retry finds the index cached or nearly ready.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lunrsearch/mcp-server/internal/lunr"
)

const (
	// FetchTimeout bounds a single index download end to end.
	FetchTimeout = 30 * time.Second

	// WaitTimeout bounds how long one caller blocks in Acquire before
	// receiving ErrStillLoading. The window starts at the caller's own
	// arrival, not at fetch start.
	WaitTimeout = 1500 * time.Millisecond
)

// ErrStillLoading reports that the index fetch is still running in the
// background. It is a retry signal for the caller, not a failure.
var ErrStillLoading = errors.New("search index still loading")

// Loader fetches search indexes on demand and caches them for the process
// lifetime. Once cached, an index is immutable and reused by every caller;
// there is no invalidation or re-fetch.
type Loader struct {
	// Wait is the per-caller Acquire window. Exposed so tests can shrink it;
	// production code keeps the WaitTimeout default.
	Wait time.Duration

	client *http.Client
	flight singleflight.Group

	mu    sync.RWMutex
	cache map[string]*lunr.Index
}

// New returns a Loader using the given HTTP client. A nil client gets a
// default client with the standard fetch timeout.
func New(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: FetchTimeout}
	}
	return &Loader{
		Wait:   WaitTimeout,
		client: client,
		cache:  make(map[string]*lunr.Index),
	}
}

// Acquire returns the index for indexURL, starting a fetch or joining the
// in-flight one when it is not cached yet. If the fetch does not finish
// within the caller's wait window, Acquire returns ErrStillLoading while the
// fetch keeps running in the background. A fetch failure surfaces to every
// caller waiting at that moment and clears the in-flight slot, so the next
// Acquire starts a fresh attempt.
func (l *Loader) Acquire(ctx context.Context, indexURL string) (*lunr.Index, error) {
	if ix := l.cached(indexURL); ix != nil {
		return ix, nil
	}

	timer := time.NewTimer(l.Wait)
	defer timer.Stop()

	select {
	case res := <-l.startFetch(ctx, indexURL):
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*lunr.Index), nil
	case <-timer.C:
		return nil, ErrStillLoading
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Fetch blocks until the index is available or the fetch fails, sharing any
// in-flight fetch for the same URL. Used where a bounded wait makes no sense,
// such as the indexcheck command.
func (l *Loader) Fetch(ctx context.Context, indexURL string) (*lunr.Index, error) {
	if ix := l.cached(indexURL); ix != nil {
		return ix, nil
	}

	select {
	case res := <-l.startFetch(ctx, indexURL):
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*lunr.Index), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// startFetch registers (or joins) the in-flight fetch for indexURL. The
// singleflight group collapses concurrent callers onto one fetch and forgets
// the key when the call finishes, success or failure, which is exactly the
// in-flight registration contract: cleared on completion so a post-failure
// retry issues a fresh fetch. The fetch runs on a context detached from the
// caller so a waiter giving up cannot cancel it.
func (l *Loader) startFetch(ctx context.Context, indexURL string) <-chan singleflight.Result {
	return l.flight.DoChan(indexURL, func() (interface{}, error) {
		return l.fetch(context.WithoutCancel(ctx), indexURL)
	})
}

func (l *Loader) cached(indexURL string) *lunr.Index {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[indexURL]
}

// fetch downloads and decodes one index. On success the index is stored in
// the cache before any waiter observes the result, so a caller that timed
// out earlier finds it cached on retry.
func (l *Loader) fetch(ctx context.Context, indexURL string) (*lunr.Index, error) {
	start := time.Now()
	log.Printf("Fetching search index %s ...", indexURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building index request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching index %s: %w", indexURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching index %s: unexpected status %d", indexURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", indexURL, err)
	}

	ix, err := lunr.DecodeIndex(data)
	if err != nil {
		return nil, fmt.Errorf("decoding index %s: %w", indexURL, err)
	}

	l.mu.Lock()
	l.cache[indexURL] = ix
	l.mu.Unlock()

	log.Printf("✓ Search index %s loaded (%d documents) in %v",
		indexURL, ix.Len(), time.Since(start).Round(time.Millisecond))
	return ix, nil
}
