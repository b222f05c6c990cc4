package business

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Normalize clamps malformed values instead of rejecting them:
// rating into [0,5], counts to non-negative, nil images to empty.
func Normalize(b Business) Business {
	b = b.Clone()
	switch {
	case math.IsNaN(b.Rating), b.Rating < 0:
		b.Rating = 0
	case b.Rating > MaxRating:
		b.Rating = MaxRating
	}
	if b.ReviewCount < 0 {
		b.ReviewCount = 0
	}
	if b.YearsOfExperience < 0 {
		b.YearsOfExperience = 0
	}
	if math.IsNaN(b.Lat) || math.IsInf(b.Lat, 0) {
		b.Lat = 0
	}
	if math.IsNaN(b.Lng) || math.IsInf(b.Lng, 0) {
		b.Lng = 0
	}
	if b.Images == nil {
		b.Images = []string{}
	}
	return b
}

// FromRaw builds a complete record from loosely typed stored fields.
// Missing keys take their zero default; values of the wrong type are
// coerced where possible and defaulted otherwise. Derived keys
// (distanceKm, score) are ignored.
func FromRaw(id string, raw map[string]any) Business {
	b := Business{
		ID:                id,
		Name:              rawString(raw["name"]),
		Category:          rawString(raw["category"]),
		CategoryID:        rawString(raw["categoryId"]),
		Description:       rawString(raw["description"]),
		City:              rawString(raw["city"]),
		Address:           rawString(raw["address"]),
		Lat:               rawFloat(raw["lat"]),
		Lng:               rawFloat(raw["lng"]),
		IsVerified:        rawBool(raw["isVerified"]),
		IsFeatured:        rawBool(raw["isFeatured"]),
		IsPremium:         rawBool(raw["isPremium"]),
		IsRemote:          rawBool(raw["isRemote"]),
		Rating:            rawFloat(raw["rating"]),
		ReviewCount:       rawInt(raw["reviewCount"]),
		YearsOfExperience: rawInt(raw["yearsOfExperience"]),
		Images:            rawStrings(raw["images"]),
		Phone:             rawString(raw["phone"]),
		Email:             rawString(raw["email"]),
		Website:           rawString(raw["website"]),
		OwnerID:           rawString(raw["ownerId"]),
		CreatedAt:         rawTime(raw["createdAt"]),
		UpdatedAt:         rawTime(raw["updatedAt"]),
	}
	return Normalize(b)
}

func rawString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func rawFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func rawInt(v any) int {
	f := rawFloat(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func rawBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		return err == nil && b
	default:
		return false
	}
}

func rawStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		var out []string
		if err := json.Unmarshal([]byte(t), &out); err != nil {
			return []string{}
		}
		return out
	default:
		return []string{}
	}
}

func rawTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if t == "" {
			return time.Time{}
		}
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts
		}
		if ms, err := strconv.ParseInt(t, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
		return time.Time{}
	case float64:
		return time.UnixMilli(int64(t)).UTC()
	case int64:
		return time.UnixMilli(t).UTC()
	default:
		return time.Time{}
	}
}
