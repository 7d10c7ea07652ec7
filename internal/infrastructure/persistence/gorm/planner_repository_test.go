package gorm_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/nourish/planner/internal/domain/catalog"
	persistence "github.com/nourish/planner/internal/infrastructure/persistence/gorm"
	"github.com/nourish/planner/internal/ports/outbound"
	"github.com/nourish/planner/test/testutils"
)

type PlannerRepositoryTestSuite struct {
	suite.Suite
	db     *testutils.TestDatabase
	repo   outbound.PlannerRepository
	ctx    context.Context
	userID uuid.UUID
}

func (suite *PlannerRepositoryTestSuite) SetupTest() {
	suite.db = testutils.SetupTestDatabase(suite.T())
	suite.repo = persistence.NewPlannerRepository(suite.db.GormDB)
	suite.ctx = context.Background()
	suite.userID = uuid.New()
}

func (suite *PlannerRepositoryTestSuite) seedFood(name string, categoryID int64, serving float64) persistence.FoodModel {
	food := persistence.FoodModel{
		ExternalID:  uuid.New(),
		UserID:      suite.userID,
		Name:        name,
		CategoryID:  categoryID,
		ServingSize: serving,
	}
	suite.Require().NoError(suite.db.GormDB.Create(&food).Error)
	return food
}

func (suite *PlannerRepositoryTestSuite) seedRecipe(name string, members ...persistence.MembershipModel) persistence.RecipeModel {
	recipe := persistence.RecipeModel{
		ExternalID:  uuid.New(),
		UserID:      suite.userID,
		Name:        name,
		ServingSize: 250,
		Members:     members,
	}
	suite.Require().NoError(suite.db.GormDB.Create(&recipe).Error)
	return recipe
}

func asParents(items []*catalog.Item) []catalog.Parent {
	parents := make([]catalog.Parent, 0, len(items))
	for _, item := range items {
		parents = append(parents, item)
	}
	return parents
}

func foodMember(foodID int64, serving float64) persistence.MembershipModel {
	return persistence.MembershipModel{ChildID: foodID, ChildKind: "food", ServingSize: serving}
}

func (suite *PlannerRepositoryTestSuite) TestLoadPreferences() {
	suite.Run("WithThresholds_ShouldPreload", func() {
		suite.SetupTest()
		// Arrange
		itemID := uuid.New()
		min := 43.0
		pref := persistence.PreferenceModel{
			UserID:         suite.userID,
			ItemExternalID: &itemID,
			Available:      true,
			Thresholds: []persistence.ThresholdModel{
				{Dimension: "quantity", Days: 1, Expansion: "self", Min: &min},
			},
		}
		suite.Require().NoError(suite.db.GormDB.Create(&pref).Error)

		// Act
		prefs, err := suite.repo.LoadPreferences(suite.ctx, suite.userID)

		// Assert
		suite.Require().NoError(err)
		suite.Require().Len(prefs, 1)
		suite.True(prefs[0].IsItem())
		suite.Equal(itemID, *prefs[0].ItemExternalID)
		suite.True(prefs[0].Flags.Available)
		suite.Require().Len(prefs[0].Thresholds, 1)
		suite.Equal(43.0, *prefs[0].Thresholds[0].Min)
	})

	suite.Run("OtherUser_ShouldNotAppear", func() {
		suite.SetupTest()
		categoryID := int64(4)
		pref := persistence.PreferenceModel{UserID: uuid.New(), CategoryID: &categoryID}
		suite.Require().NoError(suite.db.GormDB.Create(&pref).Error)

		prefs, err := suite.repo.LoadPreferences(suite.ctx, suite.userID)

		suite.Require().NoError(err)
		suite.Empty(prefs)
	})
}

func (suite *PlannerRepositoryTestSuite) TestLoadMeals() {
	suite.Run("WithinDay_ShouldMatchWindow", func() {
		suite.SetupTest()
		// Arrange
		food := suite.seedFood("Oats", 20, 0)
		today := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
		models := []persistence.MealModel{
			{ExternalID: uuid.New(), UserID: suite.userID, MealDate: today,
				Members: []persistence.MembershipModel{foodMember(food.ID, 30)}},
			{ExternalID: uuid.New(), UserID: suite.userID, MealDate: today.AddDate(0, 0, -1)},
			{ExternalID: uuid.New(), UserID: uuid.New(), MealDate: today},
		}
		for i := range models {
			suite.Require().NoError(suite.db.GormDB.Create(&models[i]).Error)
		}

		// Act
		meals, err := suite.repo.LoadMeals(suite.ctx, suite.userID, today)

		// Assert
		suite.Require().NoError(err)
		suite.Require().Len(meals, 1)
		suite.Require().Len(meals[0].Members, 1)
		suite.Equal(food.ID, meals[0].Members[0].ChildID)
		suite.Equal(catalog.KindFood, meals[0].Members[0].ChildKind)
		suite.Equal(30.0, meals[0].Members[0].ServingSize())
	})

	suite.Run("NoMeals_ShouldReturnEmpty", func() {
		suite.SetupTest()
		meals, err := suite.repo.LoadMeals(suite.ctx, suite.userID, time.Now())

		suite.Require().NoError(err)
		suite.Empty(meals)
	})
}

func (suite *PlannerRepositoryTestSuite) TestLoadFoods() {
	suite.Run("ByExternalID_ShouldMapDomain", func() {
		suite.SetupTest()
		// Arrange
		food := suite.seedFood("Walnuts", 12, 28)
		suite.seedFood("Unrequested", 12, 28)

		// Act
		items, err := suite.repo.LoadFoods(suite.ctx, suite.userID, []uuid.UUID{food.ExternalID})

		// Assert
		suite.Require().NoError(err)
		suite.Require().Len(items, 1)
		suite.Equal(food.ID, items[0].ID)
		suite.Equal(catalog.KindFood, items[0].Kind)
		suite.Equal(int64(12), items[0].CategoryID)
		suite.Equal(28.0, items[0].ReferenceServing())
	})

	suite.Run("EmptyIDs_ShouldSkipQuery", func() {
		suite.SetupTest()
		items, err := suite.repo.LoadFoods(suite.ctx, suite.userID, nil)

		suite.Require().NoError(err)
		suite.Nil(items)
	})
}

func (suite *PlannerRepositoryTestSuite) TestLoadRecipes() {
	suite.SetupTest()
	// Arrange
	food := suite.seedFood("Rice", 20, 0)
	recipe := suite.seedRecipe("Pilaf", foodMember(food.ID, 120))

	// Act
	items, err := suite.repo.LoadRecipes(suite.ctx, suite.userID, []uuid.UUID{recipe.ExternalID})

	// Assert
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal(catalog.KindRecipe, items[0].Kind)
	suite.Require().Len(items[0].Members, 1)
	suite.Equal(food.ID, items[0].Members[0].ChildID)
	suite.Equal(120.0, items[0].Members[0].ServingSize())
}

func (suite *PlannerRepositoryTestSuite) TestLoadMembers() {
	suite.Run("MemberFoods_ShouldResolveChildren", func() {
		suite.SetupTest()
		// Arrange
		food := suite.seedFood("Rice", 20, 0)
		recipe := suite.seedRecipe("Pilaf", foodMember(food.ID, 120))

		parents, err := suite.repo.LoadRecipes(suite.ctx, suite.userID, []uuid.UUID{recipe.ExternalID})
		suite.Require().NoError(err)

		// Act
		foods, err := suite.repo.LoadMemberFoods(suite.ctx, suite.userID, asParents(parents))

		// Assert
		suite.Require().NoError(err)
		suite.Require().Len(foods, 1)
		suite.Equal(food.ID, foods[0].ID)
	})

	suite.Run("MemberRecipes_ShouldResolveNested", func() {
		suite.SetupTest()
		inner := suite.seedRecipe("Dough")
		outer := suite.seedRecipe("Pizza", persistence.MembershipModel{
			ChildID: inner.ID, ChildKind: "recipe", ServingSize: 200,
		})

		parents, err := suite.repo.LoadRecipes(suite.ctx, suite.userID, []uuid.UUID{outer.ExternalID})
		suite.Require().NoError(err)

		recipes, err := suite.repo.LoadMemberRecipes(suite.ctx, suite.userID, asParents(parents))

		suite.Require().NoError(err)
		suite.Require().Len(recipes, 1)
		suite.Equal(inner.ID, recipes[0].ID)
	})

	suite.Run("NoMembers_ShouldSkipQuery", func() {
		suite.SetupTest()
		foods, err := suite.repo.LoadMemberFoods(suite.ctx, suite.userID, nil)

		suite.Require().NoError(err)
		suite.Nil(foods)
	})
}

func (suite *PlannerRepositoryTestSuite) TestLoadNutrients() {
	suite.Run("FoodsOnly_ShouldReturnSparseAmounts", func() {
		suite.SetupTest()
		// Arrange
		food := suite.seedFood("Oats", 20, 0)
		rows := []persistence.FoodNutrientModel{
			{FoodID: food.ID, NutrientID: 1008, Amount: 389},
			{FoodID: food.ID, NutrientID: 203, Amount: 16.9},
			{FoodID: food.ID + 999, NutrientID: 1008, Amount: 52},
		}
		for i := range rows {
			suite.Require().NoError(suite.db.GormDB.Create(&rows[i]).Error)
		}
		items := []*catalog.Item{
			{ID: food.ID, Kind: catalog.KindFood},
			{ID: 77, Kind: catalog.KindRecipe},
		}

		// Act
		amounts, err := suite.repo.LoadNutrients(suite.ctx, suite.userID, items)

		// Assert
		suite.Require().NoError(err)
		suite.Require().Len(amounts, 2)
		suite.Equal(food.ID, amounts[0].ItemID)
		suite.Equal(int64(1008), amounts[0].NutrientID)
		suite.Equal(389.0, amounts[0].Amount)
	})

	suite.Run("RecipesOnly_ShouldSkipQuery", func() {
		suite.SetupTest()
		amounts, err := suite.repo.LoadNutrients(suite.ctx, suite.userID,
			[]*catalog.Item{{ID: 1, Kind: catalog.KindRecipe}})

		suite.Require().NoError(err)
		suite.Nil(amounts)
	})
}

func TestPlannerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PlannerRepositoryTestSuite))
}
