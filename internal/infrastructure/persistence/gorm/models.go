// Package gorm provides GORM model definitions for the application
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// FoodModel represents the GORM model for foods
type FoodModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ExternalID  uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:char(36);index;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	CategoryID  int64     `gorm:"index;default:0"`
	ServingSize float64   `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for foods
func (FoodModel) TableName() string {
	return "foods"
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ExternalID  uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:char(36);index;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	ServingSize float64   `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	Members []MembershipModel `gorm:"polymorphic:Parent;polymorphicType:ParentKind;polymorphicValue:recipe"`
}

// TableName returns the table name for recipes
func (RecipeModel) TableName() string {
	return "recipes"
}

// MealModel represents the GORM model for logged meals
type MealModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ExternalID uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	UserID     uuid.UUID `gorm:"type:char(36);index;not null"`
	MealDate   time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relationships
	Members []MembershipModel `gorm:"polymorphic:Parent;polymorphicType:ParentKind;polymorphicValue:meal"`
}

// TableName returns the table name for meals
func (MealModel) TableName() string {
	return "meals"
}

// MembershipModel links a parent meal or recipe to a child food or recipe
// together with the serving size it was used at
type MembershipModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	ParentID    int64   `gorm:"index;not null"`
	ParentKind  string  `gorm:"type:varchar(20);index;not null"`
	ChildID     int64   `gorm:"index;not null"`
	ChildKind   string  `gorm:"type:varchar(20);not null"`
	ServingSize float64 `gorm:"default:0"`
}

// TableName returns the table name for memberships
func (MembershipModel) TableName() string {
	return "memberships"
}

// PreferenceModel represents the GORM model for user preferences.
// Exactly one of ItemExternalID, CategoryID and NutrientID is set.
type PreferenceModel struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	UserID         uuid.UUID  `gorm:"type:char(36);index;not null"`
	ItemExternalID *uuid.UUID `gorm:"type:char(36);index"`
	CategoryID     *int64     `gorm:"index"`
	NutrientID     *int64     `gorm:"index"`
	Available      bool       `gorm:"default:false"`
	NotRepeatable  bool       `gorm:"default:false"`
	NotZeroable    bool       `gorm:"default:false"`
	NotAllowed     bool       `gorm:"default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relationships
	Thresholds []ThresholdModel `gorm:"foreignKey:PreferenceID"`
}

// TableName returns the table name for preferences
func (PreferenceModel) TableName() string {
	return "preferences"
}

// ThresholdModel represents one bound attached to a preference
type ThresholdModel struct {
	ID           int64    `gorm:"primaryKey;autoIncrement"`
	PreferenceID int64    `gorm:"index;not null"`
	Dimension    string   `gorm:"type:varchar(20);not null"`
	Days         int      `gorm:"default:1"`
	Expansion    string   `gorm:"type:varchar(20);not null;default:'self'"`
	Exact        *float64
	Min          *float64
	Max          *float64
}

// TableName returns the table name for thresholds
func (ThresholdModel) TableName() string {
	return "preference_thresholds"
}

// FoodNutrientModel represents the per-food nutrient amounts
type FoodNutrientModel struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	FoodID     int64   `gorm:"index;not null"`
	NutrientID int64   `gorm:"index;not null"`
	Amount     float64 `gorm:"not null"`
}

// TableName returns the table name for food nutrients
func (FoodNutrientModel) TableName() string {
	return "food_nutrients"
}
