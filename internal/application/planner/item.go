package planner

import (
	"math"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/ports/outbound"
)

// BuildItemConstraints creates presence and quantity variables for every
// candidate item and wires availability, history, portion granularity and
// preference thresholds. portion is the serving granularity the quantity
// must divide by (one for ordinary items).
func BuildItemConstraints(
	m outbound.Model,
	table *SymbolTable,
	items []*catalog.Item,
	itemPrefs []*preference.Preference,
	todayMeals []*meal.Meal,
	kind catalog.ItemKind,
	portion int64,
) {
	for _, item := range items {
		entity := ItemEntity(item.ExternalID)
		presenceKey := PresenceKey(entity)
		quantityKey := QuantityKey(entity)

		presence := m.NewBoolVar(presenceKey.String())
		quantity := m.NewIntVar(IntMinValue, IntMaxValue, quantityKey.String())
		table.Bind(presenceKey, presence)
		table.Bind(quantityKey, quantity)

		linkPresence(m, quantity, presence)
		m.AddModuloEquality(0, quantity, portion)

		history := setupItemHistoryConstraints(m, table, item, todayMeals, kind)

		if pref := preference.ByItem(itemPrefs, item.ExternalID); pref != nil {
			setupItemPreferenceConstraints(m, table, item, pref, history, portion)
		}

		// The prepared-amount cap applies to whatever variable ended up
		// bound, so a threshold re-declaration cannot lift it.
		setupAvailableQuantityConstraints(m, table, item, kind)
	}
}

// linkPresence ties a quantity variable to its presence boolean: absent
// means zero, present means positive.
func linkPresence(m outbound.Model, quantity outbound.IntVar, presence outbound.BoolVar) {
	m.AddLinear(terms(quantity), outbound.OpEqual, 0).OnlyEnforceIf(presence.Not())
	m.AddLinear(terms(quantity), outbound.OpGreater, 0).OnlyEnforceIf(presence)
}

// setupItemHistoryConstraints floors the quantity at what was already logged
// today and returns that floor.
func setupItemHistoryConstraints(
	m outbound.Model,
	table *SymbolTable,
	item *catalog.Item,
	todayMeals []*meal.Meal,
	kind catalog.ItemKind,
) int64 {
	history := int64(math.Round(meal.ServingSize(todayMeals, item, kind)))
	if v, ok := table.Var(QuantityKey(ItemEntity(item.ExternalID))); ok {
		m.AddLinear(terms(v), outbound.OpGreaterOrEqual, history)
	}
	return history
}

// setupAvailableQuantityConstraints caps a recipe's quantity at the prepared
// amount on hand. Foods have no such cap.
func setupAvailableQuantityConstraints(m outbound.Model, table *SymbolTable, item *catalog.Item, kind catalog.ItemKind) {
	if kind != catalog.KindRecipe {
		return
	}
	if v, ok := table.Var(QuantityKey(ItemEntity(item.ExternalID))); ok {
		m.AddLinear(terms(v), outbound.OpLessOrEqual, int64(math.Round(item.AvailableServings())))
	}
}

func setupItemPreferenceConstraints(
	m outbound.Model,
	table *SymbolTable,
	item *catalog.Item,
	pref *preference.Preference,
	history int64,
	portion int64,
) {
	entity := ItemEntity(item.ExternalID)
	presence, _ := table.Bool(PresenceKey(entity))

	if pref.Flags.NotAllowed {
		m.AddLinear(terms(presence), outbound.OpEqual, 0)
		return
	}

	if pref.Flags.NotZeroable {
		m.AddLinear(terms(presence), outbound.OpEqual, 1)
	}

	setupItemQuantityThresholds(m, table, item, pref, history, portion)
	setupItemCountThresholds(m, table, item, pref)
}

// setupItemQuantityThresholds applies the quantity-dimension threshold. An
// item that must or already does appear gets reified threshold constraints
// (or the default window); an optional item instead has its quantity
// variable re-declared over {0} union the threshold-derived interval, the
// "optional but bounded" pattern.
func setupItemQuantityThresholds(
	m outbound.Model,
	table *SymbolTable,
	item *catalog.Item,
	pref *preference.Preference,
	history int64,
	portion int64,
) {
	entity := ItemEntity(item.ExternalID)
	quantityKey := QuantityKey(entity)

	threshold := preference.MatchThreshold(
		pref.Thresholds, preference.DimensionQuantity, planDay, preference.ExpansionSelf,
	)

	if pref.Flags.NotZeroable || history > 0 {
		if threshold != nil {
			setupThresholdConstraintBase(m, table, quantityKey, entity, threshold, history, 1, false)
		} else {
			setupDefaultFoodBounds(m, table, quantityKey, history)
		}
		return
	}

	domain := []outbound.Interval{{Lo: 0, Hi: 0}}
	domain = append(domain, thresholdIntervals(pref, threshold)...)
	rebindQuantityFromDomain(m, table, quantityKey, domain, portion)
}

// rebindQuantityFromDomain re-declares a quantity variable over an explicit
// domain and re-establishes presence linking and portion granularity for the
// new variable.
func rebindQuantityFromDomain(
	m outbound.Model,
	table *SymbolTable,
	quantityKey VarKey,
	domain []outbound.Interval,
	portion int64,
) {
	quantity := m.NewIntVarFromDomain(domain, table.RebindName(quantityKey))
	table.Bind(quantityKey, quantity)

	presence, ok := table.Bool(PresenceKey(quantityKey.Entity))
	if !ok {
		return
	}
	linkPresence(m, quantity, presence)
	if portion > 0 {
		m.AddModuloEquality(0, quantity, portion)
	}
}

func setupItemCountThresholds(m outbound.Model, table *SymbolTable, item *catalog.Item, pref *preference.Preference) {
	threshold := preference.MatchThreshold(
		pref.Thresholds, preference.DimensionCount, planDay, preference.ExpansionSelf,
	)
	if threshold == nil {
		return
	}
	entity := ItemEntity(item.ExternalID)
	setupThresholdConstraintBase(m, table, PresenceKey(entity), entity, threshold, 0, 1, false)
}
