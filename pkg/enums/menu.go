package enums

import "fmt"

// MenuCategory groups menu items by meal.
type MenuCategory string

const (
	MenuCategoryBreakfast MenuCategory = "breakfast"
	MenuCategoryLunch     MenuCategory = "lunch"
	MenuCategoryDinner    MenuCategory = "dinner"
	MenuCategorySnacks    MenuCategory = "snacks"
	MenuCategoryBeverages MenuCategory = "beverages"
)

var validMenuCategories = []MenuCategory{
	MenuCategoryBreakfast,
	MenuCategoryLunch,
	MenuCategoryDinner,
	MenuCategorySnacks,
	MenuCategoryBeverages,
}

// String implements fmt.Stringer.
func (m MenuCategory) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MenuCategory.
func (m MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}

// MenuItemStatus reports whether an item can be ordered.
type MenuItemStatus string

const (
	MenuItemStatusAvailable   MenuItemStatus = "available"
	MenuItemStatusUnavailable MenuItemStatus = "unavailable"
)

var validMenuItemStatuses = []MenuItemStatus{
	MenuItemStatusAvailable,
	MenuItemStatusUnavailable,
}

// String implements fmt.Stringer.
func (m MenuItemStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MenuItemStatus.
func (m MenuItemStatus) IsValid() bool {
	for _, candidate := range validMenuItemStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMenuItemStatus converts raw input into a MenuItemStatus.
func ParseMenuItemStatus(value string) (MenuItemStatus, error) {
	for _, candidate := range validMenuItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu item status %q", value)
}
