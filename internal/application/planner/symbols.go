package planner

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/nourish/planner/internal/ports/outbound"
)

// VarKind classifies solver variables by role.
type VarKind int

const (
	VarPresence VarKind = iota + 1
	VarQuantity
	VarSum
	VarIndicator
)

func (k VarKind) suffix() string {
	switch k {
	case VarPresence:
		return "p"
	case VarQuantity:
		return "q"
	case VarSum:
		return "s"
	case VarIndicator:
		return "c"
	default:
		return "?"
	}
}

// VarKey identifies one solver variable by entity, kind and day. Structured
// keys make collisions between entity namespaces impossible; the string form
// exists only to give solver variables debuggable names.
type VarKey struct {
	Entity string
	Kind   VarKind
	Day    int
	Seq    int // nonzero only for indicator variables
}

// String renders the key as a solver variable name.
func (k VarKey) String() string {
	if k.Kind == VarIndicator {
		return fmt.Sprintf("%s#%d:%s%d", k.Entity, k.Seq, k.Kind.suffix(), k.Day)
	}
	return fmt.Sprintf("%s:%s%d", k.Entity, k.Kind.suffix(), k.Day)
}

// PresenceKey returns the presence variable key for an entity.
func PresenceKey(entity string) VarKey {
	return VarKey{Entity: entity, Kind: VarPresence, Day: planDay}
}

// QuantityKey returns the quantity variable key for an entity.
func QuantityKey(entity string) VarKey {
	return VarKey{Entity: entity, Kind: VarQuantity, Day: planDay}
}

// SumKey returns the member-count aggregate variable key for an entity.
func SumKey(entity string) VarKey {
	return VarKey{Entity: entity, Kind: VarSum, Day: planDay}
}

// ItemEntity names an item in variable keys.
func ItemEntity(externalID uuid.UUID) string {
	return externalID.String()
}

// CategoryEntity names a category in variable keys. The prefix keeps
// numeric category ids from colliding with nutrient ids.
func CategoryEntity(categoryID int64) string {
	return "category/" + strconv.FormatInt(categoryID, 10)
}

// NutrientEntity names a nutrient in variable keys.
func NutrientEntity(nutrientID int64) string {
	return "nutrient/" + strconv.FormatInt(nutrientID, 10)
}

// SymbolTable maps variable keys to solver handles for the duration of one
// model build. It is not safe for concurrent use; every build constructs its
// own table.
type SymbolTable struct {
	vars       map[VarKey]outbound.IntVar
	indicators []outbound.BoolVar
	seq        int
	rebinds    map[VarKey]int
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		vars:    make(map[VarKey]outbound.IntVar),
		rebinds: make(map[VarKey]int),
	}
}

// Bind associates a key with a variable, replacing any previous binding.
// Re-binding happens when a quantity variable is re-declared over a
// threshold-derived domain.
func (t *SymbolTable) Bind(key VarKey, v outbound.IntVar) {
	t.vars[key] = v
}

// RebindName returns a distinct solver-facing name for a re-declaration of
// key's variable. The binding stays under the original key; only the wire
// name changes, so an engine that identifies variables by name never sees a
// re-declared variable collide with the one it replaced.
func (t *SymbolTable) RebindName(key VarKey) string {
	t.rebinds[key]++
	return fmt.Sprintf("%s@%d", key.String(), t.rebinds[key])
}

// Var returns the variable bound to key.
func (t *SymbolTable) Var(key VarKey) (outbound.IntVar, bool) {
	v, ok := t.vars[key]
	return v, ok
}

// Bool returns the boolean variable bound to key.
func (t *SymbolTable) Bool(key VarKey) (outbound.BoolVar, bool) {
	v, ok := t.vars[key]
	if !ok {
		return nil, false
	}
	b, ok := v.(outbound.BoolVar)
	return b, ok
}

// NewIndicator creates a fresh constraint-indicator boolean for an entity,
// registers it under a unique key and records it for the objective.
func (t *SymbolTable) NewIndicator(m outbound.Model, entity string) outbound.BoolVar {
	t.seq++
	key := VarKey{Entity: entity, Kind: VarIndicator, Day: planDay, Seq: t.seq}
	ind := m.NewBoolVar(key.String())
	t.vars[key] = ind
	t.indicators = append(t.indicators, ind)
	return ind
}

// Indicators returns every constraint-indicator created during the build, in
// creation order. Their sum is the soft-preference objective.
func (t *SymbolTable) Indicators() []outbound.BoolVar {
	return t.indicators
}

// IndicatorVars returns the indicators widened to IntVar for the objective.
func (t *SymbolTable) IndicatorVars() []outbound.IntVar {
	vars := make([]outbound.IntVar, 0, len(t.indicators))
	for _, ind := range t.indicators {
		vars = append(vars, ind)
	}
	return vars
}
