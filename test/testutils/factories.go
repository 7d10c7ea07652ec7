// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
)

// FoodBuilder provides a fluent interface for building test foods
type FoodBuilder struct {
	id          int64
	externalID  uuid.UUID
	name        string
	categoryID  int64
	servingSize float64
}

// NewFoodBuilder creates a new food builder with default values
func NewFoodBuilder() *FoodBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &FoodBuilder{
		id:         faker.Int64(),
		externalID: uuid.New(),
		name:       faker.Fruit(),
	}
}

// WithID sets the internal id
func (b *FoodBuilder) WithID(id int64) *FoodBuilder {
	b.id = id
	return b
}

// WithExternalID sets the external id
func (b *FoodBuilder) WithExternalID(id uuid.UUID) *FoodBuilder {
	b.externalID = id
	return b
}

// WithName sets the name
func (b *FoodBuilder) WithName(name string) *FoodBuilder {
	b.name = name
	return b
}

// WithCategory sets the category id
func (b *FoodBuilder) WithCategory(categoryID int64) *FoodBuilder {
	b.categoryID = categoryID
	return b
}

// WithServingSize sets the default serving size portion
func (b *FoodBuilder) WithServingSize(size float64) *FoodBuilder {
	b.servingSize = size
	return b
}

// Build creates the food item
func (b *FoodBuilder) Build() *catalog.Item {
	item := &catalog.Item{
		ID:         b.id,
		ExternalID: b.externalID,
		Name:       b.name,
		Kind:       catalog.KindFood,
		CategoryID: b.categoryID,
	}
	if b.servingSize > 0 {
		item.Portions = []catalog.Portion{{ServingSize: b.servingSize}}
	}
	return item
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	id          int64
	externalID  uuid.UUID
	name        string
	servingSize float64
	members     []catalog.Member
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &RecipeBuilder{
		id:         faker.Int64(),
		externalID: uuid.New(),
		name:       faker.Dinner(),
	}
}

// WithID sets the internal id
func (b *RecipeBuilder) WithID(id int64) *RecipeBuilder {
	b.id = id
	return b
}

// WithExternalID sets the external id
func (b *RecipeBuilder) WithExternalID(id uuid.UUID) *RecipeBuilder {
	b.externalID = id
	return b
}

// WithServingSize sets the prepared serving size portion
func (b *RecipeBuilder) WithServingSize(size float64) *RecipeBuilder {
	b.servingSize = size
	return b
}

// WithMember adds a member food or recipe at a serving size
func (b *RecipeBuilder) WithMember(childID int64, kind catalog.ItemKind, servingSize float64) *RecipeBuilder {
	member := catalog.Member{ChildID: childID, ChildKind: kind}
	if servingSize > 0 {
		member.Portions = []catalog.Portion{{ServingSize: servingSize}}
	}
	b.members = append(b.members, member)
	return b
}

// Build creates the recipe item
func (b *RecipeBuilder) Build() *catalog.Item {
	item := &catalog.Item{
		ID:         b.id,
		ExternalID: b.externalID,
		Name:       b.name,
		Kind:       catalog.KindRecipe,
		Members:    b.members,
	}
	if b.servingSize > 0 {
		item.Portions = []catalog.Portion{{ServingSize: b.servingSize}}
	}
	return item
}

// MealBuilder provides a fluent interface for building logged meals
type MealBuilder struct {
	id      int64
	date    time.Time
	members []catalog.Member
}

// NewMealBuilder creates a new meal builder for the given date
func NewMealBuilder(date time.Time) *MealBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &MealBuilder{
		id:   faker.Int64(),
		date: date,
	}
}

// WithMember adds a consumed food or recipe at a serving size
func (b *MealBuilder) WithMember(childID int64, kind catalog.ItemKind, servingSize float64) *MealBuilder {
	member := catalog.Member{ChildID: childID, ChildKind: kind}
	if servingSize > 0 {
		member.Portions = []catalog.Portion{{ServingSize: servingSize}}
	}
	b.members = append(b.members, member)
	return b
}

// Build creates the meal
func (b *MealBuilder) Build() *meal.Meal {
	return &meal.Meal{
		ID:         b.id,
		ExternalID: uuid.New(),
		Date:       b.date,
		Members:    b.members,
	}
}

// PreferenceBuilder provides a fluent interface for building preferences
type PreferenceBuilder struct {
	id         int64
	itemID     *uuid.UUID
	categoryID *int64
	nutrientID *int64
	flags      preference.Flags
	thresholds []preference.Threshold
}

// NewItemPreference creates a builder for an item preference, available by default
func NewItemPreference(itemID uuid.UUID) *PreferenceBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &PreferenceBuilder{
		id:     faker.Int64(),
		itemID: &itemID,
		flags:  preference.Flags{Available: true},
	}
}

// NewCategoryPreference creates a builder for a category preference
func NewCategoryPreference(categoryID int64) *PreferenceBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &PreferenceBuilder{
		id:         faker.Int64(),
		categoryID: &categoryID,
		flags:      preference.Flags{Available: true},
	}
}

// NewNutrientPreference creates a builder for a nutrient preference
func NewNutrientPreference(nutrientID int64) *PreferenceBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &PreferenceBuilder{
		id:         faker.Int64(),
		nutrientID: &nutrientID,
		flags:      preference.Flags{Available: true},
	}
}

// WithFlags replaces the flag set
func (b *PreferenceBuilder) WithFlags(flags preference.Flags) *PreferenceBuilder {
	b.flags = flags
	return b
}

// NotRepeatable marks the preference not repeatable
func (b *PreferenceBuilder) NotRepeatable() *PreferenceBuilder {
	b.flags.NotRepeatable = true
	return b
}

// NotZeroable marks the preference not zeroable
func (b *PreferenceBuilder) NotZeroable() *PreferenceBuilder {
	b.flags.NotZeroable = true
	return b
}

// NotAllowed marks the preference not allowed
func (b *PreferenceBuilder) NotAllowed() *PreferenceBuilder {
	b.flags.NotAllowed = true
	return b
}

// WithThreshold adds a threshold
func (b *PreferenceBuilder) WithThreshold(t preference.Threshold) *PreferenceBuilder {
	b.thresholds = append(b.thresholds, t)
	return b
}

// Build creates the preference
func (b *PreferenceBuilder) Build() *preference.Preference {
	return &preference.Preference{
		ID:             b.id,
		ItemExternalID: b.itemID,
		CategoryID:     b.categoryID,
		NutrientID:     b.nutrientID,
		Flags:          b.flags,
		Thresholds:     b.thresholds,
	}
}

// Float64Ptr returns a pointer to the given value, for threshold bounds
func Float64Ptr(v float64) *float64 {
	return &v
}

// QuantityThreshold builds a one day SELF quantity threshold
func QuantityThreshold(exact, min, max *float64) preference.Threshold {
	return preference.Threshold{
		Dimension: preference.DimensionQuantity,
		Days:      1,
		Expansion: preference.ExpansionSelf,
		Exact:     exact,
		Min:       min,
		Max:       max,
	}
}

// CountThreshold builds a one day SELF count threshold
func CountThreshold(exact, min, max *float64) preference.Threshold {
	return preference.Threshold{
		Dimension: preference.DimensionCount,
		Days:      1,
		Expansion: preference.ExpansionSelf,
		Exact:     exact,
		Min:       min,
		Max:       max,
	}
}

// MembersThreshold widens a threshold to apply to each category member
func MembersThreshold(t preference.Threshold) preference.Threshold {
	t.Expansion = preference.ExpansionMembers
	return t
}
