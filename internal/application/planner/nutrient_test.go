package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/domain/meal"
	"github.com/nourish/planner/internal/domain/preference"
	"github.com/nourish/planner/internal/infrastructure/solver"
	"github.com/nourish/planner/internal/ports/outbound"
	"github.com/nourish/planner/test/testutils"
)

// NutrientConstraintTestSuite covers nutrient aggregate constraint building
type NutrientConstraintTestSuite struct {
	suite.Suite
	model *solver.Model
	table *SymbolTable
	food  *catalog.Item
}

func (suite *NutrientConstraintTestSuite) SetupTest() {
	suite.model = solver.NewModel()
	suite.table = NewSymbolTable()
	suite.food = testutils.NewFoodBuilder().WithID(1).Build()
	BuildItemConstraints(suite.model, suite.table, []*catalog.Item{suite.food}, nil, nil, catalog.KindFood, 1)
}

func (suite *NutrientConstraintTestSuite) nutrientQuantity(nutrientID int64) outbound.IntVar {
	v, ok := suite.table.Var(QuantityKey(NutrientEntity(nutrientID)))
	require.True(suite.T(), ok)
	return v
}

func (suite *NutrientConstraintTestSuite) TestSumConstruction() {
	suite.Run("FoodContribution_ShouldUseScaledRoundedCoefficient", func() {
		// Arrange: 52.7 units of protein per reference portion scales to a
		// coefficient of 52700.
		nutrients := []catalog.NutrientAmount{
			{ItemID: 1, NutrientID: catalog.ProteinNutrientID, Amount: 52.7},
		}
		prefs := []*preference.Preference{
			testutils.NewNutrientPreference(catalog.ProteinNutrientID).Build(),
		}

		// Act
		BuildNutrientConstraints(suite.model, suite.table, []*catalog.Item{suite.food}, nil, nil, nil, nutrients, prefs, nil)

		// Assert
		quantity := suite.nutrientQuantity(catalog.ProteinNutrientID)
		equality := findEquality(suite.model, quantity)
		require.NotNil(suite.T(), equality)

		foodVar, _ := suite.table.Var(QuantityKey(ItemEntity(suite.food.ExternalID)))
		coeff, ok := coefficientOf(equality, foodVar)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), int64(52700), coeff)
	})

	suite.Run("RecipeContribution_ShouldScaleByMemberServing", func() {
		// 50 units of a food carrying 10 per reference portion, inside a
		// recipe with the standard reference serving: 50*10/100 = 5, scaled
		// to 5000.
		memberFood := testutils.NewFoodBuilder().WithID(2).Build()
		recipe := testutils.NewRecipeBuilder().WithID(3).
			WithMember(2, catalog.KindFood, 50).
			Build()
		BuildItemConstraints(suite.model, suite.table, []*catalog.Item{recipe}, nil, nil, catalog.KindRecipe, 1)

		nutrients := []catalog.NutrientAmount{
			{ItemID: 2, NutrientID: catalog.ProteinNutrientID, Amount: 10},
		}
		prefs := []*preference.Preference{
			testutils.NewNutrientPreference(catalog.ProteinNutrientID).Build(),
		}

		BuildNutrientConstraints(
			suite.model, suite.table,
			[]*catalog.Item{suite.food}, []*catalog.Item{recipe},
			[]*catalog.Item{memberFood}, nil,
			nutrients, prefs, nil,
		)

		quantity := suite.nutrientQuantity(catalog.ProteinNutrientID)
		equality := findEquality(suite.model, quantity)
		require.NotNil(suite.T(), equality)

		recipeVar, _ := suite.table.Var(QuantityKey(ItemEntity(recipe.ExternalID)))
		coeff, ok := coefficientOf(equality, recipeVar)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), int64(5000), coeff)
	})

	suite.Run("NotAllowedNutrient_ShouldGetNoVariables", func() {
		prefs := []*preference.Preference{
			testutils.NewNutrientPreference(catalog.FatNutrientID).NotAllowed().Build(),
		}

		BuildNutrientConstraints(suite.model, suite.table, []*catalog.Item{suite.food}, nil, nil, nil, nil, prefs, nil)

		_, ok := suite.table.Var(QuantityKey(NutrientEntity(catalog.FatNutrientID)))
		assert.False(suite.T(), ok)
	})
}

func (suite *NutrientConstraintTestSuite) TestHistoryFloor() {
	suite.Run("IntakeToday_ShouldFloorScaledTotal", func() {
		// 50 units eaten of a food with 52.7 per reference portion:
		// 50*52.7/100 = 26.35, scaled by 100000 to 2635000.
		nutrients := []catalog.NutrientAmount{
			{ItemID: 1, NutrientID: catalog.ProteinNutrientID, Amount: 52.7},
		}
		prefs := []*preference.Preference{
			testutils.NewNutrientPreference(catalog.ProteinNutrientID).Build(),
		}
		meals := []*meal.Meal{
			testutils.NewMealBuilder(time.Now()).WithMember(1, catalog.KindFood, 50).Build(),
		}

		BuildNutrientConstraints(
			suite.model, suite.table,
			[]*catalog.Item{suite.food}, nil,
			[]*catalog.Item{suite.food}, nil,
			nutrients, prefs, meals,
		)

		quantity := suite.nutrientQuantity(catalog.ProteinNutrientID)
		assert.True(suite.T(), hasConstraint(suite.model, quantity, outbound.OpGreaterOrEqual, 2635000, false))
	})
}

func (suite *NutrientConstraintTestSuite) TestThresholds() {
	suite.Run("MinThreshold_ShouldScaleByNutrientMultiplier", func() {
		threshold := testutils.QuantityThreshold(nil, testutils.Float64Ptr(43), nil)
		prefs := []*preference.Preference{
			testutils.NewNutrientPreference(catalog.ProteinNutrientID).WithThreshold(threshold).Build(),
		}

		BuildNutrientConstraints(suite.model, suite.table, []*catalog.Item{suite.food}, nil, nil, nil, nil, prefs, nil)

		quantity := suite.nutrientQuantity(catalog.ProteinNutrientID)
		assert.True(suite.T(), hasConstraint(suite.model, quantity, outbound.OpGreaterOrEqual, 4300000, true))
	})

	suite.Run("EnergyThreshold_ShouldBeEnforcedHard", func() {
		threshold := testutils.QuantityThreshold(testutils.Float64Ptr(2000), nil, nil)
		prefs := []*preference.Preference{
			testutils.NewNutrientPreference(catalog.EnergyNutrientID).WithThreshold(threshold).Build(),
		}

		BuildNutrientConstraints(suite.model, suite.table, []*catalog.Item{suite.food}, nil, nil, nil, nil, prefs, nil)

		require.Len(suite.T(), suite.table.Indicators(), 1)
		indicator := suite.table.Indicators()[0]
		assert.True(suite.T(), hasConstraint(suite.model, indicator, outbound.OpEqual, 1, false))
	})

	suite.Run("NonEnergyThreshold_ShouldStaySoft", func() {
		threshold := testutils.QuantityThreshold(testutils.Float64Ptr(100), nil, nil)
		prefs := []*preference.Preference{
			testutils.NewNutrientPreference(catalog.ProteinNutrientID).WithThreshold(threshold).Build(),
		}

		BuildNutrientConstraints(suite.model, suite.table, []*catalog.Item{suite.food}, nil, nil, nil, nil, prefs, nil)

		require.Len(suite.T(), suite.table.Indicators(), 1)
		indicator := suite.table.Indicators()[0]
		assert.False(suite.T(), hasConstraint(suite.model, indicator, outbound.OpEqual, 1, false))
	})
}

func TestNutrientConstraintTestSuite(t *testing.T) {
	suite.Run(t, new(NutrientConstraintTestSuite))
}

// coefficientOf returns the coefficient of the variable within a constraint.
func coefficientOf(c *solver.LinearConstraint, v outbound.IntVar) (int64, bool) {
	for _, t := range c.Terms {
		if t.Var == v {
			return t.Coeff, true
		}
	}
	return 0, false
}
