// Package preference models user preferences and their thresholds: which
// foods are available, how often they may repeat, and the quantity and count
// bounds the planner must respect.
package preference

import (
	"github.com/google/uuid"
)

// Flags is the explicit set of preference switches. The storage layer may
// pack these however it likes; the planner only sees named booleans.
type Flags struct {
	Available     bool
	NotRepeatable bool
	NotZeroable   bool
	NotAllowed    bool
}

// Preference belongs to exactly one of an item, a category, or a nutrient.
// Mutual exclusivity is enforced at storage time and assumed here.
type Preference struct {
	ID             int64
	ItemExternalID *uuid.UUID
	CategoryID     *int64
	NutrientID     *int64
	Flags          Flags
	Thresholds     []Threshold
}

// IsItem reports whether the preference targets a food or recipe.
func (p *Preference) IsItem() bool {
	return p.ItemExternalID != nil
}

// IsCategory reports whether the preference targets a category.
func (p *Preference) IsCategory() bool {
	return p.CategoryID != nil
}

// IsNutrient reports whether the preference targets a nutrient.
func (p *Preference) IsNutrient() bool {
	return p.NutrientID != nil
}

// Dimension selects what a threshold bounds: total quantity or item count.
type Dimension int

const (
	DimensionQuantity Dimension = iota + 1
	DimensionCount
)

// ExpansionSet selects whether a threshold applies to an aggregate itself or
// distributively to each member of a category.
type ExpansionSet int

const (
	ExpansionSelf ExpansionSet = iota + 1
	ExpansionMembers
)

// Threshold is one bound attached to a preference. At most one of Exact, Min
// and Max is expected to be populated; an exact value makes min and max
// irrelevant for interval construction.
type Threshold struct {
	ID        int64
	Dimension Dimension
	Days      int
	Expansion ExpansionSet
	Exact     *float64
	Min       *float64
	Max       *float64
}

// HasBound reports whether the threshold carries any bound at all. A
// threshold without bounds is treated as absent, never as an error.
func (t *Threshold) HasBound() bool {
	return t.Exact != nil || t.Min != nil || t.Max != nil
}
