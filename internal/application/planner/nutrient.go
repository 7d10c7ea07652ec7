package planner

import (
	"math"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/ports/outbound"
)

// nutrientMultiplier scales fractional per-reference-portion nutrient
// amounts into the solver's integer domain. The history floor and the live
// sum must use the same factor or the units drift apart.
const nutrientMultiplier = ScalingFactor * int64(catalog.ReferencePortion)

// BuildNutrientConstraints creates, for every nutrient preference, a
// quantity variable equal to the scaled sum of nutrient contributions across
// all candidate foods and recipes, floored by today's logged intake and
// bounded by the preference threshold. The energy nutrient's threshold is
// enforced hard; every other nutrient threshold stays a soft preference.
func BuildNutrientConstraints(
	m outbound.Model,
	table *SymbolTable,
	foods []*catalog.Item,
	recipes []*catalog.Item,
	memberFoods []*catalog.Item,
	memberRecipes []*catalog.Item,
	nutrients []catalog.NutrientAmount,
	nutrientPrefs []*preference.Preference,
	todayMeals []*meal.Meal,
) {
	for _, pref := range nutrientPrefs {
		if pref.Flags.NotAllowed || pref.NutrientID == nil {
			continue
		}
		nutrientID := *pref.NutrientID
		entity := NutrientEntity(nutrientID)

		presenceKey := PresenceKey(entity)
		quantityKey := QuantityKey(entity)

		presence := m.NewBoolVar(presenceKey.String())
		quantity := m.NewIntVar(IntMinValue, IntMaxValue*nutrientMultiplier, quantityKey.String())
		table.Bind(presenceKey, presence)
		table.Bind(quantityKey, quantity)

		linkPresence(m, quantity, presence)

		expr := nutrientSum(table, foods, recipes, memberFoods, memberRecipes, nutrients, nutrientID)
		expr = append(expr, outbound.Term{Var: quantity, Coeff: -1})
		m.AddLinear(expr, outbound.OpEqual, 0)

		setupNutrientHistoryConstraints(m, table, nutrients, nutrientID, todayMeals, memberFoods, memberRecipes)
		setupNutrientPreferenceConstraints(m, table, pref)
	}
}

// nutrientSum builds the scaled contribution terms: each candidate item's
// quantity variable weighted by its rounded, scaled nutrient amount per
// reference portion. Recipe amounts aggregate recursively through the
// membership graph.
func nutrientSum(
	table *SymbolTable,
	foods []*catalog.Item,
	recipes []*catalog.Item,
	memberFoods []*catalog.Item,
	memberRecipes []*catalog.Item,
	nutrients []catalog.NutrientAmount,
	nutrientID int64,
) []outbound.Term {
	var expr []outbound.Term

	for _, food := range foods {
		v, ok := table.Var(QuantityKey(ItemEntity(food.ExternalID)))
		if !ok {
			continue
		}
		amount, _ := catalog.NutrientAmountInFoods([]*catalog.Item{food}, nutrients, nutrientID)
		expr = append(expr, outbound.Term{
			Var:   v,
			Coeff: int64(math.Round(amount * float64(ScalingFactor))),
		})
	}

	for _, recipe := range recipes {
		v, ok := table.Var(QuantityKey(ItemEntity(recipe.ExternalID)))
		if !ok {
			continue
		}
		amount, _ := catalog.NutrientAmountInParents(
			[]catalog.Parent{recipe}, nutrients, nutrientID, memberFoods, memberRecipes,
		)
		expr = append(expr, outbound.Term{
			Var:   v,
			Coeff: int64(math.Round(amount * float64(ScalingFactor))),
		})
	}

	return expr
}

// setupNutrientHistoryConstraints floors the nutrient total at today's
// already-logged intake, scaled identically to the live sum.
func setupNutrientHistoryConstraints(
	m outbound.Model,
	table *SymbolTable,
	nutrients []catalog.NutrientAmount,
	nutrientID int64,
	todayMeals []*meal.Meal,
	memberFoods []*catalog.Item,
	memberRecipes []*catalog.Item,
) {
	amount, _ := catalog.NutrientAmountInParents(
		meal.Parents(todayMeals), nutrients, nutrientID, memberFoods, memberRecipes,
	)

	if v, ok := table.Var(QuantityKey(NutrientEntity(nutrientID))); ok {
		m.AddLinear(terms(v), outbound.OpGreaterOrEqual, int64(math.Round(float64(nutrientMultiplier)*amount)))
	}
}

func setupNutrientPreferenceConstraints(m outbound.Model, table *SymbolTable, pref *preference.Preference) {
	if pref.NutrientID == nil {
		return
	}

	threshold := preference.MatchThreshold(
		pref.Thresholds, preference.DimensionQuantity, planDay, preference.ExpansionSelf,
	)
	if threshold == nil {
		return
	}

	nutrientID := *pref.NutrientID
	entity := NutrientEntity(nutrientID)
	enforceExact := nutrientID == EnergyNutrientID
	setupThresholdConstraintBase(
		m, table, QuantityKey(entity), entity, threshold, 0, nutrientMultiplier, enforceExact,
	)
}
