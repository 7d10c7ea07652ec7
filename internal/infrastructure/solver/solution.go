package solver

import (
	"github.com/nourish/planner/internal/ports/outbound"
)

// Assignment is a concrete solution backed by a name-to-value map. Negated
// boolean literals resolve through their base variable.
type Assignment struct {
	status outbound.SolveStatus
	values map[string]int64
}

// NewAssignment creates a solution from a status and per-variable values
// keyed by variable name.
func NewAssignment(status outbound.SolveStatus, values map[string]int64) *Assignment {
	if values == nil {
		values = map[string]int64{}
	}
	return &Assignment{status: status, values: values}
}

// Status implements outbound.Solution.
func (a *Assignment) Status() outbound.SolveStatus { return a.status }

// Value implements outbound.Solution.
func (a *Assignment) Value(v outbound.IntVar) int64 {
	if mv, ok := v.(*Variable); ok && mv.IsNegated() {
		if a.values[mv.Base().Name()] == 0 {
			return 1
		}
		return 0
	}
	return a.values[v.Name()]
}

// BoolValue implements outbound.Solution.
func (a *Assignment) BoolValue(v outbound.BoolVar) bool {
	return a.Value(v) != 0
}
