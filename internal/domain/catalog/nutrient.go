package catalog

// ReferencePortion is the serving size nutrient amounts are expressed
// against: amounts are stored per 100 units of an item.
const ReferencePortion float64 = 100

// Well-known USDA nutrient ids used by the planner.
const (
	EnergyNutrientID       int64 = 1008
	ProteinNutrientID      int64 = 1003
	FatNutrientID          int64 = 1004
	CarbohydrateNutrientID int64 = 1005
)

// nutrientAliases maps a nutrient id to its equivalent ids across USDA data
// sources (legacy nutrient numbers, Atwater energy variants).
var nutrientAliases = map[int64][]int64{
	EnergyNutrientID:       {EnergyNutrientID, 208, 2047, 2048},
	ProteinNutrientID:      {ProteinNutrientID, 203},
	FatNutrientID:          {FatNutrientID, 204},
	CarbohydrateNutrientID: {CarbohydrateNutrientID, 205},
}

// AliasesForNutrient returns all ids equivalent to nutrientID, always
// including the id itself.
func AliasesForNutrient(nutrientID int64) []int64 {
	if aliases, ok := nutrientAliases[nutrientID]; ok {
		return aliases
	}
	return []int64{nutrientID}
}

// NutrientAmount is one sparse nutrient datum: the amount of a nutrient per
// reference portion of a specific food.
type NutrientAmount struct {
	ItemID     int64
	NutrientID int64
	Amount     float64
}

// NutrientAmountInFoods sums the per-reference-portion amount of a nutrient
// across the given foods. The boolean reports whether any food carried the
// nutrient at all.
func NutrientAmountInFoods(foods []*Item, amounts []NutrientAmount, nutrientID int64) (float64, bool) {
	aliases := AliasesForNutrient(nutrientID)

	var total float64
	found := false
	for _, food := range foods {
		for _, amount := range amounts {
			if amount.ItemID != food.ID || !containsID(aliases, amount.NutrientID) {
				continue
			}
			total += amount.Amount
			found = true
			break
		}
	}
	return total, found
}

// NutrientAmountInParents sums the amount of a nutrient contributed by the
// members of the given parents (recipes or meals), scaled by each member's
// realized serving size over the parent's reference serving. Nested recipes
// are resolved through memberRecipes; a visited set guards against cycles in
// the membership graph.
func NutrientAmountInParents(parents []Parent, amounts []NutrientAmount, nutrientID int64, memberFoods, memberRecipes []*Item) (float64, bool) {
	return nutrientAmountInParents(parents, amounts, nutrientID, memberFoods, memberRecipes, map[int64]bool{})
}

func nutrientAmountInParents(parents []Parent, amounts []NutrientAmount, nutrientID int64, memberFoods, memberRecipes []*Item, visited map[int64]bool) (float64, bool) {
	var total float64
	found := false

	for _, parent := range parents {
		for _, member := range parent.MemberList() {
			var amount float64
			var ok bool

			switch member.ChildKind {
			case KindFood:
				food := FindByID(memberFoods, member.ChildID)
				if food == nil {
					continue
				}
				amount, ok = NutrientAmountInFoods([]*Item{food}, amounts, nutrientID)
			case KindRecipe:
				if visited[member.ChildID] {
					continue
				}
				visited[member.ChildID] = true
				recipe := FindByID(memberRecipes, member.ChildID)
				if recipe == nil {
					continue
				}
				amount, ok = nutrientAmountInParents(
					[]Parent{recipe}, amounts, nutrientID, memberFoods, memberRecipes, visited,
				)
			}

			if !ok || amount == 0 {
				continue
			}
			total += member.ServingSize() * amount / parent.ReferenceServing()
			found = true
		}
	}

	return total, found
}

// NutrientAmountInPlan computes the total amount of a nutrient in a solved
// plan, combining planned food and recipe quantities with their nutrient
// profiles. Used by callers presenting a plan's nutrition summary.
func NutrientAmountInPlan(foods, recipes []*Item, quantities map[int64]int64, amounts []NutrientAmount, nutrientID int64, memberFoods, memberRecipes []*Item) float64 {
	var total float64

	for _, food := range foods {
		quantity, ok := quantities[food.ID]
		if !ok {
			continue
		}
		amount, found := NutrientAmountInFoods([]*Item{food}, amounts, nutrientID)
		if !found || amount == 0 {
			continue
		}
		total += float64(quantity) * amount / ReferencePortion
	}

	for _, recipe := range recipes {
		quantity, ok := quantities[recipe.ID]
		if !ok {
			continue
		}
		amount, found := NutrientAmountInParents([]Parent{recipe}, amounts, nutrientID, memberFoods, memberRecipes)
		if !found || amount == 0 {
			continue
		}
		total += float64(quantity) * amount / recipe.ReferenceServing()
	}

	return total
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
