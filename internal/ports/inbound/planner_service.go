// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the application exposes to its callers
package inbound

import (
	"context"

	"github.com/google/uuid"
)

// MealplanService computes a daily meal plan for a user from their
// catalogue, preferences and consumption history.
type MealplanService interface {
	// PlanDay builds and solves the daily plan model. An infeasible model is
	// a normal result, not an error; errors are reserved for repository or
	// solver transport failures.
	PlanDay(ctx context.Context, userID uuid.UUID) (*MealplanDTO, error)
}

// MealplanDTO is the planner's outbound result. When Infeasible is true the
// quantity map is empty and must not be processed further. NutrientTotals
// carries the planned amounts of the well-known nutrients (energy, protein,
// fat, carbohydrate) keyed by nutrient id.
type MealplanDTO struct {
	Infeasible     bool
	FoodIDs        []uuid.UUID
	RecipeIDs      []uuid.UUID
	Quantities     map[uuid.UUID]int64
	NutrientTotals map[int64]float64
}
