package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/test/testutils"
)

func TestRestrictToRepeatableOrUnused(t *testing.T) {
	repeatable := testutils.NewFoodBuilder().WithID(1).Build()
	notRepeatableEaten := testutils.NewFoodBuilder().WithID(2).Build()
	notRepeatableUnused := testutils.NewFoodBuilder().WithID(3).Build()

	prefs := []*preference.Preference{
		testutils.NewItemPreference(repeatable.ExternalID).Build(),
		testutils.NewItemPreference(notRepeatableEaten.ExternalID).NotRepeatable().Build(),
		testutils.NewItemPreference(notRepeatableUnused.ExternalID).NotRepeatable().Build(),
	}
	ids := []uuid.UUID{repeatable.ExternalID, notRepeatableEaten.ExternalID, notRepeatableUnused.ExternalID}

	t.Run("NotRepeatableEatenYesterday_ShouldBeDropped", func(t *testing.T) {
		// Arrange: yesterday's meals contained the repeatable food and one
		// of the not-repeatable foods.
		yesterdayFoods := []*catalog.Item{repeatable, notRepeatableEaten}

		// Act
		kept := RestrictToRepeatableOrUnused(ids, prefs, yesterdayFoods, nil)

		// Assert
		assert.Contains(t, kept, repeatable.ExternalID)
		assert.NotContains(t, kept, notRepeatableEaten.ExternalID)
		assert.Contains(t, kept, notRepeatableUnused.ExternalID)
	})

	t.Run("NoPreference_ShouldBeKept", func(t *testing.T) {
		stray := uuid.New()

		kept := RestrictToRepeatableOrUnused([]uuid.UUID{stray}, prefs, nil, nil)

		assert.Contains(t, kept, stray)
	})

	t.Run("NotRepeatableRecipeEatenYesterday_ShouldBeDropped", func(t *testing.T) {
		recipe := testutils.NewRecipeBuilder().WithID(9).Build()
		recipePrefs := []*preference.Preference{
			testutils.NewItemPreference(recipe.ExternalID).NotRepeatable().Build(),
		}

		kept := RestrictToRepeatableOrUnused(
			[]uuid.UUID{recipe.ExternalID}, recipePrefs, nil, []*catalog.Item{recipe},
		)

		assert.Empty(t, kept)
	})
}

func TestAddFromHistory(t *testing.T) {
	today := time.Now()

	t.Run("EatenTodayButExcluded_ShouldBeReAdded", func(t *testing.T) {
		// Arrange: the food was excluded by repeatability but appears in a
		// meal logged today.
		eaten := testutils.NewFoodBuilder().WithID(7).Build()
		m := testutils.NewMealBuilder(today).WithMember(eaten.ID, catalog.KindFood, 50).Build()

		// Act
		result := AddFromHistory(
			map[uuid.UUID]struct{}{},
			[]*meal.Meal{m},
			[]*catalog.Item{eaten},
			nil,
		)

		// Assert
		assert.Contains(t, result, eaten.ExternalID)
	})

	t.Run("ExistingCandidates_ShouldBePreserved", func(t *testing.T) {
		existing := uuid.New()

		result := AddFromHistory(map[uuid.UUID]struct{}{existing: {}}, nil, nil, nil)

		assert.Contains(t, result, existing)
		assert.Len(t, result, 1)
	})

	t.Run("RecipeEatenToday_ShouldBeAdded", func(t *testing.T) {
		recipe := testutils.NewRecipeBuilder().WithID(8).Build()
		m := testutils.NewMealBuilder(today).WithMember(recipe.ID, catalog.KindRecipe, 100).Build()

		result := AddFromHistory(map[uuid.UUID]struct{}{}, []*meal.Meal{m}, nil, []*catalog.Item{recipe})

		assert.Contains(t, result, recipe.ExternalID)
	})
}
