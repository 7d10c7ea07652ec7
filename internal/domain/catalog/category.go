package catalog

// CategoryAllFoods is the synthetic category that matches every item in the
// catalogue, used for whole-diet thresholds.
const CategoryAllFoods int64 = 0

// Category is a USDA-style food category.
type Category struct {
	ID          int64
	Code        string
	Description string
}

// Categories is the fixed catalogue of food categories, mirroring the USDA
// food category list plus the synthetic all-foods entry.
var Categories = []Category{
	{CategoryAllFoods, "", "All Foods"},
	{1, "0100", "Dairy and Egg Products"},
	{2, "0200", "Spices and Herbs"},
	{3, "0300", "Baby Foods"},
	{4, "0400", "Fats and Oils"},
	{5, "0500", "Poultry Products"},
	{6, "0600", "Soups, Sauces, and Gravies"},
	{7, "0700", "Sausages and Luncheon Meats"},
	{8, "0800", "Breakfast Cereals"},
	{9, "0900", "Fruits and Fruit Juices"},
	{10, "1000", "Pork Products"},
	{11, "1100", "Vegetables and Vegetable Products"},
	{12, "1200", "Nut and Seed Products"},
	{13, "1300", "Beef Products"},
	{14, "1400", "Beverages"},
	{15, "1500", "Finfish and Shellfish Products"},
	{16, "1600", "Legumes and Legume Products"},
	{17, "1700", "Lamb, Veal, and Game Products"},
	{18, "1800", "Baked Products"},
	{19, "1900", "Sweets"},
	{20, "2000", "Cereal Grains and Pasta"},
	{21, "2100", "Fast Foods"},
	{22, "2200", "Meals, Entrees, and Side Dishes"},
	{23, "2500", "Snacks"},
	{24, "3500", "American Indian/Alaska Native Foods"},
	{25, "3600", "Restaurant Foods"},
	{26, "4500", "Branded Food Products"},
	{27, "2600", "Quality Control Materials"},
	{28, "1410", "Alcoholic Beverages"},
}

// CategoryItems returns the items belonging to a category. The synthetic
// all-foods category matches everything.
func CategoryItems(categoryID int64, items []*Item) []*Item {
	if categoryID == CategoryAllFoods {
		return items
	}
	var matched []*Item
	for _, it := range items {
		if it.CategoryID == categoryID {
			matched = append(matched, it)
		}
	}
	return matched
}
