package preference

import (
	"github.com/google/uuid"
)

// ByItem returns the preference targeting the given item external id, or
// nil.
func ByItem(prefs []*Preference, externalID uuid.UUID) *Preference {
	for _, p := range prefs {
		if p.ItemExternalID != nil && *p.ItemExternalID == externalID {
			return p
		}
	}
	return nil
}

// ByCategory returns the preference targeting the given category id, or nil.
func ByCategory(prefs []*Preference, categoryID int64) *Preference {
	for _, p := range prefs {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			return p
		}
	}
	return nil
}

// ByNutrient returns the preference targeting the given nutrient id, or nil.
func ByNutrient(prefs []*Preference, nutrientID int64) *Preference {
	for _, p := range prefs {
		if p.NutrientID != nil && *p.NutrientID == nutrientID {
			return p
		}
	}
	return nil
}

// ItemPreferences filters to preferences that target foods or recipes.
func ItemPreferences(prefs []*Preference) []*Preference {
	var out []*Preference
	for _, p := range prefs {
		if p.IsItem() {
			out = append(out, p)
		}
	}
	return out
}

// CategoryPreferences filters to preferences that target categories.
func CategoryPreferences(prefs []*Preference) []*Preference {
	var out []*Preference
	for _, p := range prefs {
		if p.IsCategory() {
			out = append(out, p)
		}
	}
	return out
}

// NutrientPreferences filters to preferences that target nutrients.
func NutrientPreferences(prefs []*Preference) []*Preference {
	var out []*Preference
	for _, p := range prefs {
		if p.IsNutrient() {
			out = append(out, p)
		}
	}
	return out
}

// Usable filters to item preferences flagged available and not flagged
// not-allowed: the starting universe for candidate selection.
func Usable(prefs []*Preference) []*Preference {
	var out []*Preference
	for _, p := range prefs {
		if p.Flags.Available && !p.Flags.NotAllowed {
			out = append(out, p)
		}
	}
	return out
}

// MatchThreshold returns the first threshold matching dimension, day window
// and expansion set, skipping thresholds that carry no bound at all.
func MatchThreshold(thresholds []Threshold, dimension Dimension, days int, expansion ExpansionSet) *Threshold {
	for i := range thresholds {
		t := &thresholds[i]
		if t.Dimension == dimension && t.Days == days && t.Expansion == expansion && t.HasBound() {
			return t
		}
	}
	return nil
}
