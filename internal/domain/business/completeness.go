package business

import "unicode/utf8"

// CompletenessItems is the size of the profile checklist.
const CompletenessItems = 10

// minDescriptionLen is exclusive: a description must have more runes than this.
const minDescriptionLen = 30

// Completeness returns the fraction of the profile checklist that b satisfies.
func Completeness(b *Business) float64 {
	checks := [CompletenessItems]bool{
		b.Name != "",
		utf8.RuneCountInString(b.Description) > minDescriptionLen,
		b.Phone != "",
		b.Email != "",
		b.Website != "",
		b.Address != "",
		b.City != "",
		len(b.Images) > 0,
		b.HasLocation(),
		b.YearsOfExperience > 0,
	}
	n := 0
	for _, ok := range checks {
		if ok {
			n++
		}
	}
	return float64(n) / CompletenessItems
}
