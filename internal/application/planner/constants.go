package planner

import "time"

// Numeric constants of the plan model. Quantities are integer serving units;
// nutrient sums are scaled into an integer-safe domain.
const (
	// IntMinValue and IntMaxValue are the sentinel domain bounds for
	// variables without an explicit threshold.
	IntMinValue int64 = 0
	IntMaxValue int64 = 5000

	// DefaultDailyFoodMinValue and DefaultDailyFoodMaxValue are the
	// conservative daily serving window applied to items without thresholds,
	// keeping soft items from being pinned at zero or unbounded.
	DefaultDailyFoodMinValue int64 = 10
	DefaultDailyFoodMaxValue int64 = 100

	// ScalingFactor converts fractional nutrient amounts to integers. The
	// effective nutrient multiplier is ScalingFactor times the reference
	// portion; history floors and live sums must use the same factor.
	ScalingFactor int64 = 1000

	// EnergyNutrientID is the designated calorie nutrient. Its exact-value
	// threshold is the one hard-enforced constraint of the plan.
	EnergyNutrientID int64 = 1008

	// DefaultSolveTimeout and DefaultSolveWorkers bound the solver call.
	DefaultSolveTimeout = 5 * time.Second
	DefaultSolveWorkers = 10

	// planDay is the day index of all variables; the model plans a single
	// day at a time.
	planDay = 1
)
