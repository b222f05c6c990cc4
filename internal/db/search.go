package db

import "github.com/kailas-cloud/bizdex/internal/domain/search/filter"

// ListQuery is the input for a filtered, paged listing.
type ListQuery struct {
	IndexName string
	// KeyPrefix is the hash key prefix covered by the index. Backends that
	// cannot run filter-only FT.SEARCH scan it instead.
	KeyPrefix    string
	Filters      filter.Expression
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a listing. Backends without server-side
// paging may return more than ListQuery.Limit entries.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single hash returned by a listing.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
