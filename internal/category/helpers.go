// Package category shapes in-memory category snapshots for display and
// bridges the two addressing schemes a record can carry: the legacy
// display name and the canonical id. Everything here works on snapshots
// passed in by the caller; nothing is mutated or retained.
package category

import (
	"sort"
	"strings"

	"github.com/envelope-budget/envelope/internal/model"
)

// FilterByQuery returns the categories whose name contains query,
// case-insensitively. An empty query returns the full list. Relative
// order is preserved either way.
func FilterByQuery(cats []model.Category, query string) []model.Category {
	if strings.TrimSpace(query) == "" {
		return cats
	}
	q := strings.ToLower(query)
	filtered := make([]model.Category, 0, len(cats))
	for _, c := range cats {
		if strings.Contains(strings.ToLower(c.Name), q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Grouped holds one partition per category type, each sorted by order
// index ascending.
type Grouped struct {
	Income  []model.Category
	Expense []model.Category
	Saving  []model.Category
}

// GroupByType filters by query, partitions the result by type, and sorts
// each partition by order index (missing treated as 0). The sort is
// stable: equal indexes keep their original relative order.
func GroupByType(cats []model.Category, query string) Grouped {
	var g Grouped
	for _, c := range FilterByQuery(cats, query) {
		switch c.Type {
		case model.CategoryTypeIncome:
			g.Income = append(g.Income, c)
		case model.CategoryTypeExpense:
			g.Expense = append(g.Expense, c)
		case model.CategoryTypeSaving:
			g.Saving = append(g.Saving, c)
		}
	}
	sortByOrderIndex(g.Income)
	sortByOrderIndex(g.Expense)
	sortByOrderIndex(g.Saving)
	return g
}

func sortByOrderIndex(cats []model.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].OrderIndexOrZero() < cats[j].OrderIndexOrZero()
	})
}

// ValidateName reports whether name is usable as a category name.
func ValidateName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// IsDuplicate reports whether another category already uses name within
// the same type. The comparison is case-insensitive and type-scoped: the
// same name under a different type is not a duplicate. Pass excludeID to
// ignore the category being edited, or 0 when creating.
func IsDuplicate(name string, typ model.CategoryType, cats []model.Category, excludeID int64) bool {
	for _, c := range cats {
		if c.ID == excludeID {
			continue
		}
		if c.Type == typ && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// NextOrderIndex returns the next free display index: 0 for an empty
// list, otherwise max+1 with missing indexes read as 0. The max runs over
// all categories regardless of type; callers wanting per-type sequencing
// must pre-filter by type first.
func NextOrderIndex(cats []model.Category) int {
	if len(cats) == 0 {
		return 0
	}
	maxIdx := 0
	for _, c := range cats {
		if idx := c.OrderIndexOrZero(); idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx + 1
}
