// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/ports/outbound"
)

// PlannerRepository implements the planner repository interface using GORM
type PlannerRepository struct {
	db *gorm.DB
}

// NewPlannerRepository creates a new planner repository
func NewPlannerRepository(db *gorm.DB) outbound.PlannerRepository {
	return &PlannerRepository{db: db}
}

// LoadPreferences returns all preferences for a user with thresholds attached
func (r *PlannerRepository) LoadPreferences(ctx context.Context, userID uuid.UUID) ([]*preference.Preference, error) {
	var models []PreferenceModel

	result := r.db.WithContext(ctx).
		Preload("Thresholds").
		Where("user_id = ?", userID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	prefs := make([]*preference.Preference, 0, len(models))
	for i := range models {
		prefs = append(prefs, PreferenceToDomain(&models[i]))
	}
	return prefs, nil
}

// LoadMeals returns the meals logged on the calendar day of date
func (r *PlannerRepository) LoadMeals(ctx context.Context, userID uuid.UUID, date time.Time) ([]*meal.Meal, error) {
	start, end := dayBounds(date)

	var models []MealModel
	result := r.db.WithContext(ctx).
		Preload("Members").
		Where("user_id = ? AND meal_date >= ? AND meal_date < ?", userID, start, end).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	meals := make([]*meal.Meal, 0, len(models))
	for i := range models {
		meals = append(meals, MealToDomain(&models[i]))
	}
	return meals, nil
}

// LoadFoods returns the user's foods matching the given external ids
func (r *PlannerRepository) LoadFoods(ctx context.Context, userID uuid.UUID, externalIDs []uuid.UUID) ([]*catalog.Item, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}

	var models []FoodModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND external_id IN ?", userID, externalIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return foodsToDomain(models), nil
}

// LoadRecipes returns the user's recipes matching the given external ids
func (r *PlannerRepository) LoadRecipes(ctx context.Context, userID uuid.UUID, externalIDs []uuid.UUID) ([]*catalog.Item, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Members").
		Where("user_id = ? AND external_id IN ?", userID, externalIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return recipesToDomain(models), nil
}

// LoadMemberFoods resolves the food children referenced by the given parents
func (r *PlannerRepository) LoadMemberFoods(ctx context.Context, userID uuid.UUID, parents []catalog.Parent) ([]*catalog.Item, error) {
	ids := childIDs(parents, catalog.KindFood)
	if len(ids) == 0 {
		return nil, nil
	}

	var models []FoodModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return foodsToDomain(models), nil
}

// LoadMemberRecipes resolves the recipe children referenced by the given parents
func (r *PlannerRepository) LoadMemberRecipes(ctx context.Context, userID uuid.UUID, parents []catalog.Parent) ([]*catalog.Item, error) {
	ids := childIDs(parents, catalog.KindRecipe)
	if len(ids) == 0 {
		return nil, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Members").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return recipesToDomain(models), nil
}

// LoadNutrients returns the sparse nutrient amounts for the given items.
// Only foods carry nutrient rows; recipe nutrients are aggregated from their
// member foods by the caller.
func (r *PlannerRepository) LoadNutrients(ctx context.Context, userID uuid.UUID, items []*catalog.Item) ([]catalog.NutrientAmount, error) {
	var foodIDs []int64
	for _, item := range items {
		if item.Kind == catalog.KindFood {
			foodIDs = append(foodIDs, item.ID)
		}
	}
	if len(foodIDs) == 0 {
		return nil, nil
	}

	var models []FoodNutrientModel
	result := r.db.WithContext(ctx).
		Where("food_id IN ?", foodIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	amounts := make([]catalog.NutrientAmount, 0, len(models))
	for _, m := range models {
		amounts = append(amounts, NutrientToDomain(m))
	}
	return amounts, nil
}

func foodsToDomain(models []FoodModel) []*catalog.Item {
	items := make([]*catalog.Item, 0, len(models))
	for i := range models {
		items = append(items, FoodToDomain(&models[i]))
	}
	return items
}

func recipesToDomain(models []RecipeModel) []*catalog.Item {
	items := make([]*catalog.Item, 0, len(models))
	for i := range models {
		items = append(items, RecipeToDomain(&models[i]))
	}
	return items
}

// childIDs collects the distinct child ids of the given kind across parents.
func childIDs(parents []catalog.Parent, kind catalog.ItemKind) []int64 {
	seen := map[int64]bool{}
	var ids []int64
	for _, parent := range parents {
		for _, member := range parent.MemberList() {
			if member.ChildKind == kind && !seen[member.ChildID] {
				seen[member.ChildID] = true
				ids = append(ids, member.ChildID)
			}
		}
	}
	return ids
}
