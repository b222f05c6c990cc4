package business

import (
	"encoding/json"
	"strconv"
	"time"

	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

const (
	fieldRating = "rating"
	fieldLat    = "lat"
	fieldLng    = "lng"
)

// toHash flattens a business into hash fields. Derived fields are not stored.
func toHash(b *dombiz.Business) map[string]string {
	images, err := json.Marshal(b.Images)
	if err != nil || b.Images == nil {
		images = []byte("[]")
	}

	m := map[string]string{
		"name":               b.Name,
		"category":           b.Category,
		filter.KeyCategoryID: b.CategoryID,
		"description":        b.Description,
		"city":               b.City,
		"address":            b.Address,
		fieldLat:             formatFloat(b.Lat),
		fieldLng:             formatFloat(b.Lng),
		"isVerified":         strconv.FormatBool(b.IsVerified),
		filter.KeyIsFeatured: strconv.FormatBool(b.IsFeatured),
		"isPremium":          strconv.FormatBool(b.IsPremium),
		filter.KeyIsRemote:   strconv.FormatBool(b.IsRemote),
		fieldRating:          formatFloat(b.Rating),
		"reviewCount":        strconv.Itoa(b.ReviewCount),
		"yearsOfExperience":  strconv.Itoa(b.YearsOfExperience),
		"images":             string(images),
		"phone":              b.Phone,
		"email":              b.Email,
		"website":            b.Website,
		"ownerId":            b.OwnerID,
	}
	if !b.CreatedAt.IsZero() {
		m["createdAt"] = b.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !b.UpdatedAt.IsZero() {
		m["updatedAt"] = b.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return m
}

// fromHash rebuilds a normalized business from stored hash fields.
func fromHash(id string, m map[string]string) dombiz.Business {
	raw := make(map[string]any, len(m))
	for k, v := range m {
		raw[k] = v
	}
	return dombiz.FromRaw(id, raw)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
