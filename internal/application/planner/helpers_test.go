package planner

import (
	"github.com/nourish/planner/internal/infrastructure/solver"
	"github.com/nourish/planner/internal/ports/outbound"
)

// constraintsOn returns the recorded linear constraints whose terms mention
// the given variable.
func constraintsOn(m *solver.Model, v outbound.IntVar) []*solver.LinearConstraint {
	var matched []*solver.LinearConstraint
	for _, c := range m.LinearConstraints() {
		for _, t := range c.Terms {
			if t.Var == v {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}

// hasConstraint reports whether a constraint with the given operator and
// right-hand side exists on the variable. enforced filters on whether the
// constraint carries enforcement literals.
func hasConstraint(m *solver.Model, v outbound.IntVar, op outbound.LinearOp, rhs int64, enforced bool) bool {
	for _, c := range constraintsOn(m, v) {
		if c.Op == op && c.RHS == rhs && (len(c.Enforcement) > 0) == enforced {
			return true
		}
	}
	return false
}

// findVariable returns the model variable with the given name, or nil.
func findVariable(m *solver.Model, name string) *solver.Variable {
	for _, v := range m.Variables() {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// moduloOn returns the modulo constraints recorded against the variable.
func moduloOn(m *solver.Model, v outbound.IntVar) []solver.ModuloConstraint {
	var matched []solver.ModuloConstraint
	for _, c := range m.ModuloConstraints() {
		if c.Var == v {
			matched = append(matched, c)
		}
	}
	return matched
}
