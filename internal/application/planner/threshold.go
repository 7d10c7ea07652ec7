package planner

import (
	"math"

	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/ports/outbound"
)

// Threshold constraint building. Every reified constraint gets a fresh
// indicator boolean that flows into the objective, so the solver prefers
// plans satisfying more preferences when it cannot satisfy all of them. The
// already-consumed history amount always acts as an additional floor: a plan
// never retroactively reduces food logged earlier today.

// processMinThresholdValue rounds a minimum bound, falling back to the
// default when the value is unset or zero.
func processMinThresholdValue(value *float64, def int64) int64 {
	if value == nil || *value == 0 {
		return def
	}
	return int64(math.Round(*value))
}

// processMaxThresholdValue rounds a maximum bound, falling back to the
// default when the value is unset or zero.
func processMaxThresholdValue(value *float64, def int64) int64 {
	if value == nil || *value == 0 {
		return def
	}
	return int64(math.Round(*value))
}

// processExactThresholdValue rounds an exact bound; unset means zero.
func processExactThresholdValue(value *float64) int64 {
	if value == nil {
		return 0
	}
	return int64(math.Round(*value))
}

// setupThresholdConstraintBase adds the reified constraints for one
// threshold against the variable bound to key. The exact, min and max checks
// are independent; each populated bound adds its own indicator pair. When
// enforceExact is set the last indicator is forced true, turning the
// threshold from a soft preference into a hard constraint; only the energy
// nutrient uses this.
func setupThresholdConstraintBase(
	m outbound.Model,
	table *SymbolTable,
	key VarKey,
	entity string,
	threshold *preference.Threshold,
	history int64,
	multiplier int64,
	enforceExact bool,
) {
	v, ok := table.Var(key)
	if !ok {
		return
	}

	var lastIndicator outbound.BoolVar

	if threshold.Exact != nil {
		bound := maxFloat(*threshold.Exact, float64(history))
		value := processExactThresholdValue(&bound) * multiplier
		indicator := table.NewIndicator(m, entity)
		m.AddLinear(terms(v), outbound.OpEqual, value).OnlyEnforceIf(indicator)
		m.AddLinear(terms(v), outbound.OpNotEqual, value).OnlyEnforceIf(indicator.Not())
		lastIndicator = indicator
	}

	if threshold.Min != nil {
		bound := maxFloat(*threshold.Min, float64(history))
		value := processMinThresholdValue(&bound, IntMinValue) * multiplier
		indicator := table.NewIndicator(m, entity)
		m.AddLinear(terms(v), outbound.OpGreaterOrEqual, value).OnlyEnforceIf(indicator)
		m.AddLinear(terms(v), outbound.OpLess, value).OnlyEnforceIf(indicator.Not())
		lastIndicator = indicator
	}

	if threshold.Max != nil {
		bound := maxFloat(*threshold.Max, float64(history))
		value := processMaxThresholdValue(&bound, IntMaxValue) * multiplier
		indicator := table.NewIndicator(m, entity)
		m.AddLinear(terms(v), outbound.OpLessOrEqual, value).OnlyEnforceIf(indicator)
		m.AddLinear(terms(v), outbound.OpGreater, value).OnlyEnforceIf(indicator.Not())
		lastIndicator = indicator
	}

	if enforceExact && lastIndicator != nil {
		m.AddLinear(terms(lastIndicator), outbound.OpEqual, 1)
	}
}

// setupDefaultFoodBounds applies the conservative daily serving window to an
// item without a matching threshold, floored by history.
func setupDefaultFoodBounds(m outbound.Model, table *SymbolTable, key VarKey, history int64) {
	v, ok := table.Var(key)
	if !ok {
		return
	}
	m.AddLinear(terms(v), outbound.OpGreaterOrEqual, maxInt(history, DefaultDailyFoodMinValue))
	m.AddLinear(terms(v), outbound.OpLessOrEqual, maxInt(history, DefaultDailyFoodMaxValue))
}

// thresholdIntervals derives the domain interval for a preference's
// variable. Without a threshold, items fall back to the default daily
// serving window and everything else to the sentinel bounds. An exact value
// collapses the interval to a single point and takes priority over min/max
// on this path.
func thresholdIntervals(pref *preference.Preference, threshold *preference.Threshold) []outbound.Interval {
	if threshold == nil {
		if pref.IsItem() {
			return []outbound.Interval{{Lo: DefaultDailyFoodMinValue, Hi: DefaultDailyFoodMaxValue}}
		}
		return []outbound.Interval{{Lo: IntMinValue, Hi: IntMaxValue}}
	}

	if threshold.Exact != nil {
		exact := processExactThresholdValue(threshold.Exact)
		return []outbound.Interval{{Lo: exact, Hi: exact}}
	}

	minDefault := IntMinValue
	if pref.IsItem() && threshold.Max != nil && *threshold.Max > float64(DefaultDailyFoodMinValue) {
		minDefault = DefaultDailyFoodMinValue
	}
	lo := processMinThresholdValue(threshold.Min, minDefault)

	maxDefault := IntMaxValue
	if pref.IsItem() {
		maxDefault = DefaultDailyFoodMaxValue
	}
	hi := processMaxThresholdValue(threshold.Max, maxDefault)

	return []outbound.Interval{{Lo: lo, Hi: hi}}
}

// terms wraps a single variable as a unit-coefficient linear expression.
func terms(v outbound.IntVar) []outbound.Term {
	return []outbound.Term{{Var: v, Coeff: 1}}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxInt(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
