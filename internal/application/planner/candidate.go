package planner

import (
	"github.com/google/uuid"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
)

// Candidate selection is pure set algebra; output order carries no meaning.

// RestrictToRepeatableOrUnused removes items that are flagged not-repeatable
// and were consumed yesterday. Repeatable items, items without a preference,
// and non-repeatable items unused yesterday all stay.
func RestrictToRepeatableOrUnused(
	externalIDs []uuid.UUID,
	itemPrefs []*preference.Preference,
	yesterdayFoods []*catalog.Item,
	yesterdayRecipes []*catalog.Item,
) map[uuid.UUID]struct{} {
	kept := make(map[uuid.UUID]struct{}, len(externalIDs))

	for _, externalID := range externalIDs {
		pref := preference.ByItem(itemPrefs, externalID)

		repeatable := pref == nil || !pref.Flags.NotRepeatable
		unusedYesterday := catalog.FindByExternalID(yesterdayFoods, externalID) == nil &&
			catalog.FindByExternalID(yesterdayRecipes, externalID) == nil

		if repeatable || unusedYesterday {
			kept[externalID] = struct{}{}
		}
	}

	return kept
}

// AddFromHistory unions in every item referenced by today's already-logged
// meals. Food already eaten today is always part of the plan, even when the
// repeatability rules would have excluded it.
func AddFromHistory(
	externalIDs map[uuid.UUID]struct{},
	todayMeals []*meal.Meal,
	todayFoods []*catalog.Item,
	todayRecipes []*catalog.Item,
) map[uuid.UUID]struct{} {
	result := make(map[uuid.UUID]struct{}, len(externalIDs))
	for id := range externalIDs {
		result[id] = struct{}{}
	}

	for _, m := range todayMeals {
		for _, member := range m.Members {
			switch member.ChildKind {
			case catalog.KindFood:
				if food := catalog.FindByID(todayFoods, member.ChildID); food != nil {
					result[food.ExternalID] = struct{}{}
				}
			case catalog.KindRecipe:
				if recipe := catalog.FindByID(todayRecipes, member.ChildID); recipe != nil {
					result[recipe.ExternalID] = struct{}{}
				}
			}
		}
	}

	return result
}
