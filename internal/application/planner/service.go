// Package planner implements the daily meal-plan optimizer: it translates a
// user's catalogue, preferences and consumption history into an
// integer/boolean constraint model, hands the model to a solver under a
// deadline, and decodes the verdict into per-item serving quantities.
package planner

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/ports/inbound"
	"github.com/nourish/planner/internal/ports/outbound"
	"github.com/nourish/planner/pkg/errors"
)

// ModelFactory creates a fresh, empty constraint model. Every planning run
// builds its own model; nothing is cached across invocations.
type ModelFactory func() outbound.Model

// Config carries the solve bounds.
type Config struct {
	SolveTimeout time.Duration
	SolveWorkers int
}

// Mealplan is the immutable result of one planning run. When Infeasible is
// true the quantity map is empty.
type Mealplan struct {
	Infeasible    bool
	Foods         []*catalog.Item
	Recipes       []*catalog.Item
	MemberFoods   []*catalog.Item
	MemberRecipes []*catalog.Item
	MealsToday    []*meal.Meal
	Nutrients     []catalog.NutrientAmount
	Quantities    map[uuid.UUID]int64
}

// NutrientTotal returns the planned amount of a nutrient across the plan's
// foods and recipes, resolving recipe contributions through their members.
// An infeasible plan totals to zero.
func (p *Mealplan) NutrientTotal(nutrientID int64) float64 {
	byID := make(map[int64]int64, len(p.Quantities))
	for _, item := range p.Foods {
		if quantity, ok := p.Quantities[item.ExternalID]; ok {
			byID[item.ID] = quantity
		}
	}
	for _, item := range p.Recipes {
		if quantity, ok := p.Quantities[item.ExternalID]; ok {
			byID[item.ID] = quantity
		}
	}
	return catalog.NutrientAmountInPlan(
		p.Foods, p.Recipes, byID, p.Nutrients, nutrientID, p.MemberFoods, p.MemberRecipes,
	)
}

// Service is the plan orchestrator. It is stateless across invocations and
// safe for concurrent use: each call constructs its own model and symbol
// table.
type Service struct {
	repo     outbound.PlannerRepository
	solver   outbound.Solver
	newModel ModelFactory
	config   Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a plan service.
func NewService(
	repo outbound.PlannerRepository,
	solver outbound.Solver,
	newModel ModelFactory,
	config Config,
	logger *zap.Logger,
) *Service {
	if config.SolveTimeout <= 0 {
		config.SolveTimeout = DefaultSolveTimeout
	}
	if config.SolveWorkers <= 0 {
		config.SolveWorkers = DefaultSolveWorkers
	}
	return &Service{
		repo:     repo,
		solver:   solver,
		newModel: newModel,
		config:   config,
		logger:   logger.Named("planner-service"),
		now:      time.Now,
	}
}

// PlanDay implements inbound.MealplanService.
func (s *Service) PlanDay(ctx context.Context, userID uuid.UUID) (*inbound.MealplanDTO, error) {
	plan, err := s.Plan(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := &inbound.MealplanDTO{
		Infeasible: plan.Infeasible,
		Quantities: plan.Quantities,
	}
	for _, food := range plan.Foods {
		dto.FoodIDs = append(dto.FoodIDs, food.ExternalID)
	}
	for _, recipe := range plan.Recipes {
		dto.RecipeIDs = append(dto.RecipeIDs, recipe.ExternalID)
	}
	if !plan.Infeasible {
		dto.NutrientTotals = map[int64]float64{
			catalog.EnergyNutrientID:       plan.NutrientTotal(catalog.EnergyNutrientID),
			catalog.ProteinNutrientID:      plan.NutrientTotal(catalog.ProteinNutrientID),
			catalog.FatNutrientID:          plan.NutrientTotal(catalog.FatNutrientID),
			catalog.CarbohydrateNutrientID: plan.NutrientTotal(catalog.CarbohydrateNutrientID),
		}
	}
	return dto, nil
}

// Plan builds and solves the daily plan model for a user.
func (s *Service) Plan(ctx context.Context, userID uuid.UUID) (*Mealplan, error) {
	prefs, err := s.repo.LoadPreferences(ctx, userID)
	if err != nil {
		return nil, errors.NewRepositoryError("load preferences", err)
	}

	itemPrefs := preference.ItemPreferences(prefs)
	categoryPrefs := preference.CategoryPreferences(prefs)
	nutrientPrefs := preference.NutrientPreferences(prefs)

	today := s.now()
	yesterday := today.AddDate(0, 0, -1)

	mealsToday, err := s.repo.LoadMeals(ctx, userID, today)
	if err != nil {
		return nil, errors.NewRepositoryError("load today's meals", err)
	}
	mealsYesterday, err := s.repo.LoadMeals(ctx, userID, yesterday)
	if err != nil {
		return nil, errors.NewRepositoryError("load yesterday's meals", err)
	}

	candidateIDs, err := s.selectCandidates(ctx, userID, itemPrefs, mealsToday, mealsYesterday)
	if err != nil {
		return nil, err
	}

	foods, err := s.repo.LoadFoods(ctx, userID, candidateIDs)
	if err != nil {
		return nil, errors.NewRepositoryError("load foods", err)
	}
	recipes, err := s.repo.LoadRecipes(ctx, userID, candidateIDs)
	if err != nil {
		return nil, errors.NewRepositoryError("load recipes", err)
	}

	recipeParents := itemParents(recipes)
	recipeFoods, err := s.repo.LoadMemberFoods(ctx, userID, recipeParents)
	if err != nil {
		return nil, errors.NewRepositoryError("load recipe member foods", err)
	}
	memberRecipes, err := s.repo.LoadMemberRecipes(ctx, userID, recipeParents)
	if err != nil {
		return nil, errors.NewRepositoryError("load member recipes", err)
	}

	// Recipe member foods join the nutrient universe without displacing the
	// candidate foods themselves.
	allFoods := mergeItems(foods, recipeFoods)

	nutrients, err := s.repo.LoadNutrients(ctx, userID, allFoods)
	if err != nil {
		return nil, errors.NewRepositoryError("load nutrients", err)
	}

	model := s.newModel()
	table := NewSymbolTable()

	s.logger.Debug("Building plan model",
		zap.String("user_id", userID.String()),
		zap.Int("foods", len(foods)),
		zap.Int("recipes", len(recipes)),
		zap.Int("preferences", len(prefs)),
	)

	BuildItemConstraints(model, table, foods, itemPrefs, mealsToday, catalog.KindFood, 1)
	BuildItemConstraints(model, table, recipes, itemPrefs, mealsToday, catalog.KindRecipe, 1)
	BuildCategoryConstraints(model, table, foods, catalog.Categories, itemPrefs, categoryPrefs, mealsToday)
	BuildNutrientConstraints(model, table, foods, recipes, allFoods, memberRecipes, nutrients, nutrientPrefs, mealsToday)

	model.Maximize(table.IndicatorVars())

	solution, err := s.solver.Solve(ctx, model, outbound.SolveParams{
		TimeLimit: s.config.SolveTimeout,
		Workers:   s.config.SolveWorkers,
	})
	if err != nil {
		return nil, errors.NewSolverError("solve plan model", err)
	}

	status := solution.Status()
	s.logger.Info("Plan model solved",
		zap.String("user_id", userID.String()),
		zap.String("status", status.String()),
		zap.Int("indicators", len(table.Indicators())),
	)

	return &Mealplan{
		Infeasible:    !status.Decodable(),
		Foods:         foods,
		Recipes:       recipes,
		MemberFoods:   allFoods,
		MemberRecipes: memberRecipes,
		MealsToday:    mealsToday,
		Nutrients:     nutrients,
		Quantities:    decodeQuantities(solution, table, foods, recipes),
	}, nil
}

// selectCandidates computes the universe of item ids eligible for today.
func (s *Service) selectCandidates(
	ctx context.Context,
	userID uuid.UUID,
	itemPrefs []*preference.Preference,
	mealsToday []*meal.Meal,
	mealsYesterday []*meal.Meal,
) ([]uuid.UUID, error) {
	externalIDs := make([]uuid.UUID, 0, len(itemPrefs))
	for _, pref := range preference.Usable(itemPrefs) {
		if pref.ItemExternalID != nil {
			externalIDs = append(externalIDs, *pref.ItemExternalID)
		}
	}

	// Shuffle for variety across otherwise equivalent solutions.
	rand.Shuffle(len(externalIDs), func(i, j int) {
		externalIDs[i], externalIDs[j] = externalIDs[j], externalIDs[i]
	})

	yesterdayParents := meal.Parents(mealsYesterday)
	yesterdayFoods, err := s.repo.LoadMemberFoods(ctx, userID, yesterdayParents)
	if err != nil {
		return nil, errors.NewRepositoryError("load yesterday's foods", err)
	}
	yesterdayRecipes, err := s.repo.LoadMemberRecipes(ctx, userID, yesterdayParents)
	if err != nil {
		return nil, errors.NewRepositoryError("load yesterday's recipes", err)
	}

	kept := RestrictToRepeatableOrUnused(externalIDs, itemPrefs, yesterdayFoods, yesterdayRecipes)

	todayParents := meal.Parents(mealsToday)
	todayFoods, err := s.repo.LoadMemberFoods(ctx, userID, todayParents)
	if err != nil {
		return nil, errors.NewRepositoryError("load today's foods", err)
	}
	todayRecipes, err := s.repo.LoadMemberRecipes(ctx, userID, todayParents)
	if err != nil {
		return nil, errors.NewRepositoryError("load today's recipes", err)
	}

	final := AddFromHistory(kept, mealsToday, todayFoods, todayRecipes)

	ids := make([]uuid.UUID, 0, len(final))
	for id := range final {
		ids = append(ids, id)
	}
	return ids, nil
}

// decodeQuantities reads the solved presence and quantity variables for
// every candidate item. Items absent from the plan, or present at zero
// quantity, are omitted.
func decodeQuantities(
	solution outbound.Solution,
	table *SymbolTable,
	foods []*catalog.Item,
	recipes []*catalog.Item,
) map[uuid.UUID]int64 {
	quantities := make(map[uuid.UUID]int64)
	if !solution.Status().Decodable() {
		return quantities
	}

	decode := func(items []*catalog.Item) {
		for _, item := range items {
			entity := ItemEntity(item.ExternalID)
			presence, ok := table.Bool(PresenceKey(entity))
			if !ok || !solution.BoolValue(presence) {
				continue
			}
			quantity, ok := table.Var(QuantityKey(entity))
			if !ok {
				continue
			}
			value := solution.Value(quantity)
			if value == 0 {
				continue
			}
			quantities[item.ExternalID] = value
		}
	}

	decode(foods)
	decode(recipes)
	return quantities
}

// itemParents widens items to the membership aggregation interface.
func itemParents(items []*catalog.Item) []catalog.Parent {
	parents := make([]catalog.Parent, 0, len(items))
	for _, it := range items {
		parents = append(parents, it)
	}
	return parents
}

// mergeItems unions two item lists by external id, keeping the first
// occurrence.
func mergeItems(primary, secondary []*catalog.Item) []*catalog.Item {
	seen := make(map[uuid.UUID]bool, len(primary))
	merged := make([]*catalog.Item, 0, len(primary)+len(secondary))
	for _, it := range primary {
		if !seen[it.ExternalID] {
			seen[it.ExternalID] = true
			merged = append(merged, it)
		}
	}
	for _, it := range secondary {
		if !seen[it.ExternalID] {
			seen[it.ExternalID] = true
			merged = append(merged, it)
		}
	}
	return merged
}
