package web

import (
	"slices"

	"github.com/erazemk/shoplist/internal/model"
)

// CategoryRow is one line of the per-category summary.
type CategoryRow struct {
	Name string
	model.CategoryStats
}

// ItemGroup is the visible items of one category. The page renders each
// group under a heading the summary links to.
type ItemGroup struct {
	Name  string
	Items []model.Item
}

// orderCategories puts names in the order the add form lists categories.
// Categories the form does not know come last, by name.
func orderCategories(names []string) []string {
	ordered := make([]string, 0, len(names))
	for _, name := range model.Categories {
		if slices.Contains(names, name) {
			ordered = append(ordered, name)
		}
	}

	var extra []string
	for _, name := range names {
		if !slices.Contains(model.Categories, name) && !slices.Contains(extra, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(ordered, extra...)
}

// categoryRows lists the per-category stats in form order.
func categoryRows(stats *model.ItemStats) []CategoryRow {
	if stats == nil {
		return nil
	}

	names := make([]string, 0, len(stats.ByCategory))
	for name := range stats.ByCategory {
		names = append(names, name)
	}

	rows := make([]CategoryRow, 0, len(names))
	for _, name := range orderCategories(names) {
		rows = append(rows, CategoryRow{Name: name, CategoryStats: stats.ByCategory[name]})
	}
	return rows
}

// groupByCategory splits items into category groups. Items keep their
// order within a group.
func groupByCategory(items []model.Item) []ItemGroup {
	byName := make(map[string][]model.Item)
	var names []string
	for _, item := range items {
		if _, ok := byName[item.Category]; !ok {
			names = append(names, item.Category)
		}
		byName[item.Category] = append(byName[item.Category], item)
	}

	groups := make([]ItemGroup, 0, len(names))
	for _, name := range orderCategories(names) {
		groups = append(groups, ItemGroup{Name: name, Items: byName[name]})
	}
	return groups
}
