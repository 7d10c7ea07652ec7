// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
)

// PlannerRepository is the read-only view of persisted state the meal plan
// optimizer consumes. No method mutates anything; invalid ids are the
// repository's responsibility to exclude before they reach the planner.
type PlannerRepository interface {
	// LoadPreferences returns all preferences for a user with their
	// thresholds attached.
	LoadPreferences(ctx context.Context, userID uuid.UUID) ([]*preference.Preference, error)

	// LoadMeals returns the meals logged on the given date, members and
	// portions included.
	LoadMeals(ctx context.Context, userID uuid.UUID, date time.Time) ([]*meal.Meal, error)

	// LoadFoods and LoadRecipes return catalogue items by external id.
	LoadFoods(ctx context.Context, userID uuid.UUID, externalIDs []uuid.UUID) ([]*catalog.Item, error)
	LoadRecipes(ctx context.Context, userID uuid.UUID, externalIDs []uuid.UUID) ([]*catalog.Item, error)

	// LoadMemberFoods and LoadMemberRecipes resolve the children referenced
	// by the given parents (meals or recipes).
	LoadMemberFoods(ctx context.Context, userID uuid.UUID, parents []catalog.Parent) ([]*catalog.Item, error)
	LoadMemberRecipes(ctx context.Context, userID uuid.UUID, parents []catalog.Parent) ([]*catalog.Item, error)

	// LoadNutrients returns the sparse nutrient amounts for the given items.
	LoadNutrients(ctx context.Context, userID uuid.UUID, items []*catalog.Item) ([]catalog.NutrientAmount, error)
}
