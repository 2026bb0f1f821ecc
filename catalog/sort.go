package catalog

import (
	"sort"
	"strings"

	"cafe-pos/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption mirrors the storefront's sort dropdown.
type SortOption string

const (
	SortDefault   SortOption = "default"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortPopular   SortOption = "popular"
	SortNewest    SortOption = "newest"
	SortRating    SortOption = "rating"
)

// AllCategories is the sentinel category id meaning "no filter".
const AllCategories uint = 0

// FilterByCategory returns the items belonging to one category,
// preserving their order. AllCategories returns the input unchanged.
func FilterByCategory(items []models.MenuItem, categoryID uint) []models.MenuItem {
	if categoryID == AllCategories {
		return items
	}
	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.CategoryID == categoryID {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// SortItems returns a sorted copy of items; the input is never mutated.
// SortDefault keeps the server order. Name comparisons use Vietnamese
// collation. SortRating falls back to name-asc: no rating field exists
// in the menu schema.
func SortItems(items []models.MenuItem, option SortOption) []models.MenuItem {
	sorted := make([]models.MenuItem, len(items))
	copy(sorted, items)

	switch option {
	case SortNameAsc, SortRating:
		sortByName(sorted, false)
	case SortNameDesc:
		sortByName(sorted, true)
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortPopular:
		// Lower sort order = more popular.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].SortOrder < sorted[j].SortOrder
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return sorted
}

func sortByName(items []models.MenuItem, desc bool) {
	// Collators carry internal buffers, so build one per call rather
	// than sharing across goroutines.
	c := collate.New(language.Vietnamese, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		cmp := c.CompareString(items[i].Name, items[j].Name)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// SearchItems filters items by a case-insensitive substring match over
// name and description. A blank query returns the input unchanged.
func SearchItems(items []models.MenuItem, query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	matched := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			matched = append(matched, item)
		}
	}
	return matched
}
