// Package catalog contains the read-only food and recipe catalogue the
// planner operates on. Items are loaded once per planning run and never
// mutated by the optimizer.
package catalog

import (
	"github.com/google/uuid"
)

// ItemKind discriminates foods from recipes in membership records.
type ItemKind int

const (
	KindFood ItemKind = iota + 1
	KindRecipe
)

// String returns a human readable kind name.
func (k ItemKind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindRecipe:
		return "recipe"
	default:
		return "unknown"
	}
}

// Portion is a serving record. For recipes the first portion carries the
// amount currently prepared and on hand; for meal memberships it carries the
// realized serving size that was logged.
type Portion struct {
	ServingSize float64
}

// Member links a parent (recipe or meal) to a child food or recipe together
// with the serving size the child was used at.
type Member struct {
	ChildID   int64
	ChildKind ItemKind
	Portions  []Portion
}

// ServingSize returns the realized serving size of the membership, or zero
// when no portion was recorded.
func (m Member) ServingSize() float64 {
	if len(m.Portions) == 0 {
		return 0
	}
	return m.Portions[0].ServingSize
}

// Item is a food or recipe in the user's catalogue. Recipes may contain
// other foods and recipes through Members; the membership graph is assumed
// acyclic.
type Item struct {
	ID         int64
	ExternalID uuid.UUID
	Name       string
	Kind       ItemKind
	CategoryID int64 // zero when uncategorized
	Portions   []Portion
	Members    []Member
}

// MemberList returns the item's membership records. Part of the Parent
// contract shared with meals.
func (i *Item) MemberList() []Member {
	return i.Members
}

// ReferenceServing returns the serving size one "unit" of this item refers
// to. Recipes carry it on their first portion; foods fall back to the
// standard reference portion.
func (i *Item) ReferenceServing() float64 {
	if len(i.Portions) > 0 && i.Portions[0].ServingSize > 0 {
		return i.Portions[0].ServingSize
	}
	return ReferencePortion
}

// AvailableServings returns the prepared amount on hand for a recipe, used
// to cap its planned quantity.
func (i *Item) AvailableServings() float64 {
	if len(i.Portions) == 0 {
		return 0
	}
	return i.Portions[0].ServingSize
}

// Parent is anything that aggregates items through memberships: recipes and
// meals both qualify.
type Parent interface {
	MemberList() []Member
	ReferenceServing() float64
}

// FindByID returns the item with the given internal id, or nil.
func FindByID(items []*Item, id int64) *Item {
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// FindByExternalID returns the item with the given external id, or nil.
func FindByExternalID(items []*Item, externalID uuid.UUID) *Item {
	for _, it := range items {
		if it.ExternalID == externalID {
			return it
		}
	}
	return nil
}
