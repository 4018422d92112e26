package lunr

import (
	"sort"
	"strings"
)

// Result is one ranked search hit. URL is the content base URL concatenated
// with the document's base path.
type Result struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Path  []string `json:"path"`
}

// DefaultLimit caps the result count when the caller does not provide one.
const DefaultLimit = 10

const (
	phraseScore  = 100
	perWordScore = 10
)

// Rank scores every document in the index against the query and returns the
// top results, deterministically for a given (index, query, limit).
//
// A record whose lowercase title or breadcrumb-join contains the whole
// lowercase query scores 100. Otherwise the record scores 10 per query word
// token found (word tokens are counted positionally, duplicates included);
// records matching no word are excluded.
//
// Records are deduplicated by base path as they are scanned: the first record
// seen for a base path is kept even if a later duplicate would have scored
// higher. Final order is descending score, ties broken by ascending
// original-case title. The returned slice holds at most limit entries.
func Rank(ix *Index, query string, baseURL string, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryLower := strings.ToLower(query)
	queryWords := strings.Fields(queryLower)

	type scoredResult struct {
		Result
		score int
	}

	var hits []scoredResult
	seen := make(map[string]bool)

	for _, doc := range ix.Documents() {
		title := strings.ToLower(doc.Title)
		path := strings.ToLower(strings.Join(doc.Breadcrumb, " "))

		var score int
		if strings.Contains(title, queryLower) || strings.Contains(path, queryLower) {
			score = phraseScore
		} else {
			matched := 0
			for _, word := range queryWords {
				if strings.Contains(title, word) || strings.Contains(path, word) {
					matched++
				}
			}
			if matched == 0 {
				continue
			}
			score = matched * perWordScore
		}

		basePath := doc.BasePath()
		if seen[basePath] {
			continue
		}
		seen[basePath] = true

		hits = append(hits, scoredResult{
			Result: Result{
				Title: doc.Title,
				URL:   baseURL + basePath,
				Path:  doc.Breadcrumb,
			},
			score: score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].Title < hits[j].Title
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]Result, len(hits))
	for i, hit := range hits {
		results[i] = hit.Result
	}
	return results
}
