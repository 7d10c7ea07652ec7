package outbound

import (
	"context"
	"time"
)

// The solver boundary. The planner builds an integer/boolean constraint
// model through Model and hands it to a Solver; any CP or MIP engine adapter
// can sit behind these interfaces. The engine's internal search is opaque to
// the planner and bounded only by SolveParams.

// SolveStatus is the engine's verdict on a model.
type SolveStatus int

const (
	StatusUnknown SolveStatus = iota
	StatusModelInvalid
	StatusInfeasible
	StatusFeasible
	StatusOptimal
)

// String returns the status name.
func (s SolveStatus) String() string {
	switch s {
	case StatusModelInvalid:
		return "MODEL_INVALID"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusOptimal:
		return "OPTIMAL"
	default:
		return "UNKNOWN"
	}
}

// Decodable reports whether a solution with this status carries usable
// variable assignments.
func (s SolveStatus) Decodable() bool {
	return s == StatusFeasible || s == StatusOptimal
}

// IntVar is a handle to a bounded integer variable owned by a Model.
type IntVar interface {
	Name() string
}

// BoolVar is a boolean variable. Not returns the negated literal for use as
// an enforcement condition.
type BoolVar interface {
	IntVar
	Not() BoolVar
}

// Term is one summand of a linear expression.
type Term struct {
	Var   IntVar
	Coeff int64
}

// Interval is one closed domain interval. A single admissible value is
// expressed as Lo == Hi.
type Interval struct {
	Lo int64
	Hi int64
}

// LinearOp relates a linear expression to its right-hand side.
type LinearOp int

const (
	OpEqual LinearOp = iota + 1
	OpNotEqual
	OpLessOrEqual
	OpLess
	OpGreaterOrEqual
	OpGreater
)

// String returns the operator spelling.
func (op LinearOp) String() string {
	switch op {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLessOrEqual:
		return "<="
	case OpLess:
		return "<"
	case OpGreaterOrEqual:
		return ">="
	case OpGreater:
		return ">"
	default:
		return "?"
	}
}

// Constraint is a handle to an added constraint, allowing reified
// enforcement.
type Constraint interface {
	// OnlyEnforceIf makes the constraint hold exactly when the literal is
	// true. Returns the constraint for chaining.
	OnlyEnforceIf(lit BoolVar) Constraint
}

// Model collects variables and constraints for one solve. Implementations
// are not safe for concurrent use; every planning run builds its own model.
type Model interface {
	NewBoolVar(name string) BoolVar
	NewIntVar(lo, hi int64, name string) IntVar
	NewIntVarFromDomain(domain []Interval, name string) IntVar

	AddLinear(terms []Term, op LinearOp, rhs int64) Constraint
	AddModuloEquality(target int64, v IntVar, modulus int64)

	// Maximize sets the objective to the sum of the given variables.
	Maximize(vars []IntVar)
}

// SolveParams bound a solve call in time and parallelism.
type SolveParams struct {
	TimeLimit time.Duration
	Workers   int
}

// Solution is a solved model's variable assignment.
type Solution interface {
	Status() SolveStatus
	Value(v IntVar) int64
	BoolValue(v BoolVar) bool
}

// Solver runs an engine over a built model. Solve returns within the time
// limit; a deadline hit surfaces as StatusUnknown, never as a hang.
type Solver interface {
	Solve(ctx context.Context, m Model, params SolveParams) (Solution, error)
}
