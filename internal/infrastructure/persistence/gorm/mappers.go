// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"strings"
	"time"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
)

// FoodToDomain converts a food model to a catalogue item
func FoodToDomain(m *FoodModel) *catalog.Item {
	item := &catalog.Item{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Kind:       catalog.KindFood,
		CategoryID: m.CategoryID,
	}
	if m.ServingSize > 0 {
		item.Portions = []catalog.Portion{{ServingSize: m.ServingSize}}
	}
	return item
}

// RecipeToDomain converts a recipe model and its memberships to a catalogue item
func RecipeToDomain(m *RecipeModel) *catalog.Item {
	item := &catalog.Item{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Kind:       catalog.KindRecipe,
	}
	if m.ServingSize > 0 {
		item.Portions = []catalog.Portion{{ServingSize: m.ServingSize}}
	}
	for _, member := range m.Members {
		item.Members = append(item.Members, MembershipToDomain(member))
	}
	return item
}

// MealToDomain converts a meal model and its memberships to a domain meal
func MealToDomain(m *MealModel) *meal.Meal {
	result := &meal.Meal{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Date:       m.MealDate,
	}
	for _, member := range m.Members {
		result.Members = append(result.Members, MembershipToDomain(member))
	}
	return result
}

// MembershipToDomain converts a membership row to a domain member
func MembershipToDomain(m MembershipModel) catalog.Member {
	member := catalog.Member{
		ChildID:   m.ChildID,
		ChildKind: kindFromString(m.ChildKind),
	}
	if m.ServingSize > 0 {
		member.Portions = []catalog.Portion{{ServingSize: m.ServingSize}}
	}
	return member
}

// PreferenceToDomain converts a preference model with thresholds to the domain type
func PreferenceToDomain(m *PreferenceModel) *preference.Preference {
	pref := &preference.Preference{
		ID:             m.ID,
		ItemExternalID: m.ItemExternalID,
		CategoryID:     m.CategoryID,
		NutrientID:     m.NutrientID,
		Flags: preference.Flags{
			Available:     m.Available,
			NotRepeatable: m.NotRepeatable,
			NotZeroable:   m.NotZeroable,
			NotAllowed:    m.NotAllowed,
		},
	}
	for _, t := range m.Thresholds {
		pref.Thresholds = append(pref.Thresholds, ThresholdToDomain(t))
	}
	return pref
}

// ThresholdToDomain converts a threshold row to the domain type
func ThresholdToDomain(m ThresholdModel) preference.Threshold {
	return preference.Threshold{
		ID:        m.ID,
		Dimension: dimensionFromString(m.Dimension),
		Days:      m.Days,
		Expansion: expansionFromString(m.Expansion),
		Exact:     m.Exact,
		Min:       m.Min,
		Max:       m.Max,
	}
}

// NutrientToDomain converts a nutrient row to the domain amount record
func NutrientToDomain(m FoodNutrientModel) catalog.NutrientAmount {
	return catalog.NutrientAmount{
		ItemID:     m.FoodID,
		NutrientID: m.NutrientID,
		Amount:     m.Amount,
	}
}

func kindFromString(kind string) catalog.ItemKind {
	if strings.EqualFold(kind, "recipe") {
		return catalog.KindRecipe
	}
	return catalog.KindFood
}

func dimensionFromString(dimension string) preference.Dimension {
	if strings.EqualFold(dimension, "count") {
		return preference.DimensionCount
	}
	return preference.DimensionQuantity
}

func expansionFromString(expansion string) preference.ExpansionSet {
	if strings.EqualFold(expansion, "members") {
		return preference.ExpansionMembers
	}
	return preference.ExpansionSelf
}

// dayBounds returns the [start, end) window covering the calendar day of t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
