// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/ports/outbound"
)

// MockPlannerRepository provides a mock implementation of PlannerRepository
type MockPlannerRepository struct {
	mock.Mock
}

// NewMockPlannerRepository creates a new mock planner repository
func NewMockPlannerRepository() *MockPlannerRepository {
	return &MockPlannerRepository{}
}

// LoadPreferences returns the user's preferences
func (m *MockPlannerRepository) LoadPreferences(ctx context.Context, userID uuid.UUID) ([]*preference.Preference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*preference.Preference), args.Error(1)
}

// LoadMeals returns the meals logged on the given date
func (m *MockPlannerRepository) LoadMeals(ctx context.Context, userID uuid.UUID, date time.Time) ([]*meal.Meal, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*meal.Meal), args.Error(1)
}

// LoadFoods returns foods by external id
func (m *MockPlannerRepository) LoadFoods(ctx context.Context, userID uuid.UUID, externalIDs []uuid.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, userID, externalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

// LoadRecipes returns recipes by external id
func (m *MockPlannerRepository) LoadRecipes(ctx context.Context, userID uuid.UUID, externalIDs []uuid.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, userID, externalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

// LoadMemberFoods resolves food children of the given parents
func (m *MockPlannerRepository) LoadMemberFoods(ctx context.Context, userID uuid.UUID, parents []catalog.Parent) ([]*catalog.Item, error) {
	args := m.Called(ctx, userID, parents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

// LoadMemberRecipes resolves recipe children of the given parents
func (m *MockPlannerRepository) LoadMemberRecipes(ctx context.Context, userID uuid.UUID, parents []catalog.Parent) ([]*catalog.Item, error) {
	args := m.Called(ctx, userID, parents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

// LoadNutrients returns nutrient amounts for the given items
func (m *MockPlannerRepository) LoadNutrients(ctx context.Context, userID uuid.UUID, items []*catalog.Item) ([]catalog.NutrientAmount, error) {
	args := m.Called(ctx, userID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.NutrientAmount), args.Error(1)
}

// MockSolver provides a mock implementation of the solver boundary
type MockSolver struct {
	mock.Mock
}

// NewMockSolver creates a new mock solver
func NewMockSolver() *MockSolver {
	return &MockSolver{}
}

// Solve returns the scripted solution
func (m *MockSolver) Solve(ctx context.Context, model outbound.Model, params outbound.SolveParams) (outbound.Solution, error) {
	args := m.Called(ctx, model, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(outbound.Solution), args.Error(1)
}
