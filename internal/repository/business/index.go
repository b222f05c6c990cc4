package business

import (
	"github.com/kailas-cloud/bizdex/internal/db"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

// buildIndex defines the filterable schema: equality tags plus the numeric
// fields operators query by hand.
func buildIndex(name, prefix string) *db.IndexDefinition {
	return db.NewIndex(name).
		Prefix(prefix).
		Tag(filter.KeyCategoryID, filter.KeyIsRemote, filter.KeyIsFeatured).
		Numeric(fieldRating, fieldLat, fieldLng).
		MustBuild()
}
