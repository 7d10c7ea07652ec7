package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nourish/planner/internal/ports/outbound"
)

func TestModelVariables(t *testing.T) {
	t.Run("NewBoolVar_ShouldCarryBinaryDomain", func(t *testing.T) {
		m := NewModel()

		v := m.NewBoolVar("p1")

		mv := v.(*Variable)
		assert.Equal(t, "p1", mv.Name())
		assert.True(t, mv.IsBool())
		assert.Equal(t, []outbound.Interval{{Lo: 0, Hi: 1}}, mv.Domain())
		assert.Len(t, m.Variables(), 1)
	})

	t.Run("NewIntVar_ShouldCarrySingleInterval", func(t *testing.T) {
		m := NewModel()

		v := m.NewIntVar(10, 100, "q1")

		assert.Equal(t, []outbound.Interval{{Lo: 10, Hi: 100}}, v.(*Variable).Domain())
		assert.False(t, v.(*Variable).IsBool())
	})

	t.Run("NewIntVarFromDomain_ShouldCopyIntervals", func(t *testing.T) {
		m := NewModel()
		domain := []outbound.Interval{{Lo: 0, Hi: 0}, {Lo: 10, Hi: 100}}

		v := m.NewIntVarFromDomain(domain, "q1")
		domain[0].Hi = 99

		assert.Equal(t, int64(0), v.(*Variable).Domain()[0].Hi)
	})
}

func TestNegatedLiterals(t *testing.T) {
	m := NewModel()
	p := m.NewBoolVar("p1")

	t.Run("Not_ShouldShareBaseVariable", func(t *testing.T) {
		not := p.Not().(*Variable)

		assert.True(t, not.IsNegated())
		assert.Equal(t, "!p1", not.Name())
		assert.Same(t, p.(*Variable), not.Base())
	})

	t.Run("DoubleNegation_ShouldReturnBase", func(t *testing.T) {
		assert.Same(t, p.(*Variable), p.Not().Not().(*Variable))
	})

	t.Run("NegatedLiteral_ShouldNotJoinVariableList", func(t *testing.T) {
		p.Not()

		assert.Len(t, m.Variables(), 1)
	})
}

func TestModelConstraints(t *testing.T) {
	t.Run("AddLinear_ShouldRecordTermsCopy", func(t *testing.T) {
		m := NewModel()
		q := m.NewIntVar(0, 5000, "q1")
		terms := []outbound.Term{{Var: q, Coeff: 2}}

		m.AddLinear(terms, outbound.OpGreaterOrEqual, 43)
		terms[0].Coeff = 7

		c := m.LinearConstraints()[0]
		assert.Equal(t, int64(2), c.Terms[0].Coeff)
		assert.Equal(t, outbound.OpGreaterOrEqual, c.Op)
		assert.Equal(t, int64(43), c.RHS)
		assert.Empty(t, c.Enforcement)
	})

	t.Run("OnlyEnforceIf_ShouldAccumulateLiterals", func(t *testing.T) {
		m := NewModel()
		q := m.NewIntVar(0, 5000, "q1")
		p := m.NewBoolVar("p1")

		c := m.AddLinear([]outbound.Term{{Var: q, Coeff: 1}}, outbound.OpEqual, 0)
		c.OnlyEnforceIf(p).OnlyEnforceIf(p.Not())

		rec := m.LinearConstraints()[0]
		assert.Len(t, rec.Enforcement, 2)
		assert.Equal(t, "!p1", rec.Enforcement[1].Name())
	})

	t.Run("AddModuloEquality_ShouldRecord", func(t *testing.T) {
		m := NewModel()
		q := m.NewIntVar(0, 5000, "q1")

		m.AddModuloEquality(0, q, 25)

		mc := m.ModuloConstraints()[0]
		assert.Equal(t, int64(0), mc.Target)
		assert.Equal(t, int64(25), mc.Modulus)
		assert.Equal(t, q, mc.Var)
	})
}

func TestModelObjective(t *testing.T) {
	m := NewModel()

	_, ok := m.Objective()
	assert.False(t, ok)

	i1 := m.NewBoolVar("i1")
	i2 := m.NewBoolVar("i2")
	m.Maximize([]outbound.IntVar{i1, i2})

	vars, ok := m.Objective()
	assert.True(t, ok)
	assert.Len(t, vars, 2)
}

func TestAssignment(t *testing.T) {
	m := NewModel()
	p := m.NewBoolVar("p1")
	q := m.NewIntVar(0, 5000, "q1")

	t.Run("Value_ShouldReadByName", func(t *testing.T) {
		sol := NewAssignment(outbound.StatusOptimal, map[string]int64{"q1": 43})

		assert.Equal(t, int64(43), sol.Value(q))
		assert.Equal(t, outbound.StatusOptimal, sol.Status())
	})

	t.Run("NegatedLiteral_ShouldInvertBase", func(t *testing.T) {
		sol := NewAssignment(outbound.StatusOptimal, map[string]int64{"p1": 1})

		assert.True(t, sol.BoolValue(p))
		assert.False(t, sol.BoolValue(p.Not()))

		zero := NewAssignment(outbound.StatusOptimal, map[string]int64{"p1": 0})
		assert.True(t, zero.BoolValue(p.Not()))
	})

	t.Run("NilValues_ShouldReadAsZero", func(t *testing.T) {
		sol := NewAssignment(outbound.StatusInfeasible, nil)

		assert.Zero(t, sol.Value(q))
		assert.False(t, sol.BoolValue(p))
	})
}
