// Package solver provides the in-memory constraint model builder and the
// adapters that carry a built model to a solving engine.
package solver

import (
	"github.com/nourish/planner/internal/ports/outbound"
)

// Variable is a model-owned integer variable with a finite interval domain.
// Boolean variables are the special case of the {0,1} domain.
type Variable struct {
	name    string
	domain  []outbound.Interval
	boolean bool
	// negated marks the Not() literal of a boolean variable. Negated
	// literals share the underlying variable and are never stored in the
	// model's variable list themselves.
	negated bool
	base    *Variable
}

// Name implements outbound.IntVar.
func (v *Variable) Name() string {
	if v.negated {
		return "!" + v.base.name
	}
	return v.name
}

// Not implements outbound.BoolVar.
func (v *Variable) Not() outbound.BoolVar {
	if v.negated {
		return v.base
	}
	return &Variable{boolean: true, negated: true, base: v}
}

// Domain returns the variable's admissible intervals.
func (v *Variable) Domain() []outbound.Interval {
	if v.negated {
		return v.base.domain
	}
	return v.domain
}

// IsBool reports whether the variable carries a {0,1} domain.
func (v *Variable) IsBool() bool { return v.boolean }

// IsNegated reports whether this is a Not() literal.
func (v *Variable) IsNegated() bool { return v.negated }

// Base returns the underlying variable of a Not() literal, or the variable
// itself.
func (v *Variable) Base() *Variable {
	if v.negated {
		return v.base
	}
	return v
}

// LinearConstraint is one recorded linear constraint with its optional
// enforcement literals.
type LinearConstraint struct {
	Terms       []outbound.Term
	Op          outbound.LinearOp
	RHS         int64
	Enforcement []outbound.BoolVar
}

// OnlyEnforceIf implements outbound.Constraint.
func (c *LinearConstraint) OnlyEnforceIf(lit outbound.BoolVar) outbound.Constraint {
	c.Enforcement = append(c.Enforcement, lit)
	return c
}

// ModuloConstraint records target == v mod modulus.
type ModuloConstraint struct {
	Target  int64
	Var     outbound.IntVar
	Modulus int64
}

// Model is the in-memory outbound.Model implementation. It only records the
// problem; solving is the adapter's concern. Not safe for concurrent use.
type Model struct {
	variables   []*Variable
	linear      []*LinearConstraint
	modulo      []ModuloConstraint
	objective   []outbound.IntVar
	hasMaximize bool
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar implements outbound.Model.
func (m *Model) NewBoolVar(name string) outbound.BoolVar {
	v := &Variable{
		name:    name,
		domain:  []outbound.Interval{{Lo: 0, Hi: 1}},
		boolean: true,
	}
	m.variables = append(m.variables, v)
	return v
}

// NewIntVar implements outbound.Model.
func (m *Model) NewIntVar(lo, hi int64, name string) outbound.IntVar {
	v := &Variable{
		name:   name,
		domain: []outbound.Interval{{Lo: lo, Hi: hi}},
	}
	m.variables = append(m.variables, v)
	return v
}

// NewIntVarFromDomain implements outbound.Model.
func (m *Model) NewIntVarFromDomain(domain []outbound.Interval, name string) outbound.IntVar {
	v := &Variable{
		name:   name,
		domain: append([]outbound.Interval(nil), domain...),
	}
	m.variables = append(m.variables, v)
	return v
}

// AddLinear implements outbound.Model.
func (m *Model) AddLinear(terms []outbound.Term, op outbound.LinearOp, rhs int64) outbound.Constraint {
	c := &LinearConstraint{
		Terms: append([]outbound.Term(nil), terms...),
		Op:    op,
		RHS:   rhs,
	}
	m.linear = append(m.linear, c)
	return c
}

// AddModuloEquality implements outbound.Model.
func (m *Model) AddModuloEquality(target int64, v outbound.IntVar, modulus int64) {
	m.modulo = append(m.modulo, ModuloConstraint{Target: target, Var: v, Modulus: modulus})
}

// Maximize implements outbound.Model.
func (m *Model) Maximize(vars []outbound.IntVar) {
	m.objective = append([]outbound.IntVar(nil), vars...)
	m.hasMaximize = true
}

// Variables returns the declared variables in declaration order.
func (m *Model) Variables() []*Variable { return m.variables }

// LinearConstraints returns the recorded linear constraints.
func (m *Model) LinearConstraints() []*LinearConstraint { return m.linear }

// ModuloConstraints returns the recorded modulo constraints.
func (m *Model) ModuloConstraints() []ModuloConstraint { return m.modulo }

// Objective returns the maximize terms; the second result reports whether
// an objective was set.
func (m *Model) Objective() ([]outbound.IntVar, bool) { return m.objective, m.hasMaximize }
