// Package meal models logged consumption: meals and their member foods and
// recipes, each with the realized serving size. The planner reads history
// from here and never writes it.
package meal

import (
	"time"

	"github.com/google/uuid"

	"github.com/nourish/planner/internal/domain/catalog"
)

// Meal is one logged meal with its member items.
type Meal struct {
	ID         int64
	ExternalID uuid.UUID
	Date       time.Time
	Members    []catalog.Member
}

// MemberList returns the meal's membership records, satisfying
// catalog.Parent so nutrient aggregation can walk meals and recipes the same
// way.
func (m *Meal) MemberList() []catalog.Member {
	return m.Members
}

// ReferenceServing for a meal is the standard reference portion: meal
// memberships record absolute serving sizes.
func (m *Meal) ReferenceServing() float64 {
	return catalog.ReferencePortion
}

// Parents converts meals to the catalog.Parent aggregation interface.
func Parents(meals []*Meal) []catalog.Parent {
	parents := make([]catalog.Parent, 0, len(meals))
	for _, m := range meals {
		parents = append(parents, m)
	}
	return parents
}

// ServingSize returns the total serving size at which an item appears across
// the given meals.
func ServingSize(meals []*Meal, item *catalog.Item, kind catalog.ItemKind) float64 {
	var total float64
	for _, m := range meals {
		for _, member := range m.Members {
			if member.ChildID == item.ID && member.ChildKind == kind {
				total += member.ServingSize()
			}
		}
	}
	return total
}

// CategoryServingSize returns the total serving size of the given category
// foods across the meals.
func CategoryServingSize(meals []*Meal, categoryFoods []*catalog.Item) float64 {
	var total float64
	for _, food := range categoryFoods {
		total += ServingSize(meals, food, catalog.KindFood)
	}
	return total
}

// CategoryFoodCount returns the number of distinct category foods that
// appear in the meals.
func CategoryFoodCount(meals []*Meal, categoryFoods []*catalog.Item) int {
	eaten := map[int64]bool{}
	for _, m := range meals {
		for _, member := range m.Members {
			if member.ChildKind == catalog.KindFood {
				eaten[member.ChildID] = true
			}
		}
	}

	count := 0
	for _, food := range categoryFoods {
		if eaten[food.ID] {
			count++
		}
	}
	return count
}
