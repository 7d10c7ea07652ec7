package planner

import (
	"math"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/ports/outbound"
)

// BuildCategoryConstraints creates aggregate variables for every category
// carrying a preference: the quantity variable mirrors the sum of member
// quantities and the sum variable mirrors the count of present members.
// Category thresholds apply twice, once to the aggregate itself (SELF) and
// once distributively to each member (MEMBERS).
func BuildCategoryConstraints(
	m outbound.Model,
	table *SymbolTable,
	foods []*catalog.Item,
	categories []catalog.Category,
	foodPrefs []*preference.Preference,
	categoryPrefs []*preference.Preference,
	todayMeals []*meal.Meal,
) {
	for _, category := range categories {
		pref := preference.ByCategory(categoryPrefs, category.ID)
		if pref == nil {
			continue
		}

		categoryFoods := catalog.CategoryItems(category.ID, foods)
		entity := CategoryEntity(category.ID)

		presenceKey := PresenceKey(entity)
		quantityKey := QuantityKey(entity)
		sumKey := SumKey(entity)

		presence := m.NewBoolVar(presenceKey.String())
		quantity := m.NewIntVar(IntMinValue, IntMaxValue, quantityKey.String())
		sum := m.NewIntVar(IntMinValue, IntMaxValue, sumKey.String())
		table.Bind(presenceKey, presence)
		table.Bind(quantityKey, quantity)
		table.Bind(sumKey, sum)

		linkPresence(m, quantity, presence)
		m.AddLinear(memberEquality(table, categoryFoods, VarQuantity, quantity), outbound.OpEqual, 0)

		linkPresence(m, sum, presence)
		m.AddLinear(memberEquality(table, categoryFoods, VarPresence, sum), outbound.OpEqual, 0)

		setupCategoryHistoryConstraints(m, table, entity, categoryFoods, todayMeals)
		setupCategoryPreferenceConstraints(m, table, entity, categoryFoods, pref, foodPrefs)
	}
}

// memberEquality builds the expression sum(member vars) - aggregate == 0.
func memberEquality(table *SymbolTable, categoryFoods []*catalog.Item, kind VarKind, aggregate outbound.IntVar) []outbound.Term {
	expr := make([]outbound.Term, 0, len(categoryFoods)+1)
	for _, food := range categoryFoods {
		key := VarKey{Entity: ItemEntity(food.ExternalID), Kind: kind, Day: planDay}
		if v, ok := table.Var(key); ok {
			expr = append(expr, outbound.Term{Var: v, Coeff: 1})
		}
	}
	return append(expr, outbound.Term{Var: aggregate, Coeff: -1})
}

// setupCategoryHistoryConstraints floors the aggregates at what the user
// already ate from this category today: total serving size for the quantity
// variable, distinct food count for the sum variable.
func setupCategoryHistoryConstraints(
	m outbound.Model,
	table *SymbolTable,
	entity string,
	categoryFoods []*catalog.Item,
	todayMeals []*meal.Meal,
) {
	servingSize := int64(math.Round(meal.CategoryServingSize(todayMeals, categoryFoods)))
	foodCount := int64(meal.CategoryFoodCount(todayMeals, categoryFoods))

	if v, ok := table.Var(QuantityKey(entity)); ok {
		m.AddLinear(terms(v), outbound.OpGreaterOrEqual, servingSize)
	}
	if v, ok := table.Var(SumKey(entity)); ok {
		m.AddLinear(terms(v), outbound.OpGreaterOrEqual, foodCount)
	}
}

func setupCategoryPreferenceConstraints(
	m outbound.Model,
	table *SymbolTable,
	entity string,
	categoryFoods []*catalog.Item,
	categoryPref *preference.Preference,
	foodPrefs []*preference.Preference,
) {
	presence, _ := table.Bool(PresenceKey(entity))

	if categoryPref.Flags.NotAllowed {
		m.AddLinear(terms(presence), outbound.OpEqual, 0)
		return
	}

	if categoryPref.Flags.NotZeroable {
		m.AddLinear(terms(presence), outbound.OpEqual, 1)
	}

	setupSelfQuantityThresholds(m, table, entity, categoryPref)
	setupMemberQuantityThresholds(m, table, categoryFoods, categoryPref, foodPrefs)
	setupSelfCountThresholds(m, table, entity, categoryPref)
	setupMemberCountThresholds(m, table, entity, categoryPref)
}

// setupSelfQuantityThresholds applies the SELF-expansion quantity threshold
// to the category's own aggregate.
func setupSelfQuantityThresholds(m outbound.Model, table *SymbolTable, entity string, categoryPref *preference.Preference) {
	quantityKey := QuantityKey(entity)
	threshold := preference.MatchThreshold(
		categoryPref.Thresholds, preference.DimensionQuantity, planDay, preference.ExpansionSelf,
	)

	if categoryPref.Flags.NotZeroable {
		if threshold != nil {
			setupThresholdConstraintBase(m, table, quantityKey, entity, threshold, 0, 1, false)
		}
		return
	}

	domain := []outbound.Interval{{Lo: 0, Hi: 0}}
	domain = append(domain, thresholdIntervals(categoryPref, threshold)...)
	rebindQuantityFromDomain(m, table, quantityKey, domain, 0)
}

// setupMemberQuantityThresholds applies the MEMBERS-expansion quantity
// threshold to each member food individually. A member with its own
// preference gets the intersection of its food-level interval and the
// category-level interval, the narrowest bound on each side.
func setupMemberQuantityThresholds(
	m outbound.Model,
	table *SymbolTable,
	categoryFoods []*catalog.Item,
	categoryPref *preference.Preference,
	foodPrefs []*preference.Preference,
) {
	threshold := preference.MatchThreshold(
		categoryPref.Thresholds, preference.DimensionQuantity, planDay, preference.ExpansionMembers,
	)

	for _, food := range categoryFoods {
		entity := ItemEntity(food.ExternalID)
		quantityKey := QuantityKey(entity)

		foodPref := preference.ByItem(foodPrefs, food.ExternalID)
		if foodPref == nil || foodPref.Flags.NotZeroable {
			if threshold != nil {
				setupThresholdConstraintBase(m, table, quantityKey, entity, threshold, 0, 1, false)
			}
			continue
		}

		foodThreshold := preference.MatchThreshold(
			foodPref.Thresholds, preference.DimensionQuantity, planDay, preference.ExpansionSelf,
		)

		categoryInterval := thresholdIntervals(categoryPref, threshold)[0]
		foodInterval := thresholdIntervals(foodPref, foodThreshold)[0]

		domain := []outbound.Interval{
			{Lo: 0, Hi: 0},
			{
				Lo: maxInt(foodInterval.Lo, categoryInterval.Lo),
				Hi: minInt(foodInterval.Hi, categoryInterval.Hi),
			},
		}
		rebindQuantityFromDomain(m, table, quantityKey, domain, 0)
	}
}

func setupSelfCountThresholds(m outbound.Model, table *SymbolTable, entity string, categoryPref *preference.Preference) {
	threshold := preference.MatchThreshold(
		categoryPref.Thresholds, preference.DimensionCount, planDay, preference.ExpansionSelf,
	)
	if threshold == nil {
		return
	}
	setupThresholdConstraintBase(m, table, PresenceKey(entity), entity, threshold, 0, 1, false)
}

// setupMemberCountThresholds bounds how many distinct members may appear,
// via the category's sum variable.
func setupMemberCountThresholds(m outbound.Model, table *SymbolTable, entity string, categoryPref *preference.Preference) {
	threshold := preference.MatchThreshold(
		categoryPref.Thresholds, preference.DimensionCount, planDay, preference.ExpansionMembers,
	)
	if threshold == nil {
		return
	}
	setupThresholdConstraintBase(m, table, SumKey(entity), entity, threshold, 0, 1, false)
}

func minInt(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
