package cart

import "github.com/angelmondragon/warungsunda-backend/pkg/db/models"

// Line is one distinct menu item in the cart.
type Line struct {
	ItemID              string `json:"itemId"`
	Name                string `json:"name"`
	Price               int64  `json:"price"`
	Quantity            int    `json:"quantity"`
	Total               int64  `json:"total"`
	ImageURL            string `json:"imageUrl,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// Subtotal sums the line totals.
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, line := range lines {
		sum += line.Total
	}
	return sum
}

// Count sums the line quantities.
func Count(lines []Line) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Merge adds quantity of item to lines. An existing line keeps its price,
// gains the quantity, and only takes instructions when they are non-empty.
func Merge(lines []Line, item models.MenuItem, quantity int, instructions string) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)

	for i := range out {
		if out[i].ItemID != item.ID {
			continue
		}
		out[i].Quantity += quantity
		out[i].Total = out[i].Price * int64(out[i].Quantity)
		if instructions != "" {
			out[i].SpecialInstructions = instructions
		}
		return out
	}

	return append(out, Line{
		ItemID:              item.ID,
		Name:                item.Name,
		Price:               item.Price,
		Quantity:            quantity,
		Total:               item.Price * int64(quantity),
		ImageURL:            item.ImageURL,
		SpecialInstructions: instructions,
	})
}

// Remove drops the line for itemID, reporting whether one was present.
func Remove(lines []Line, itemID string) ([]Line, bool) {
	out := make([]Line, 0, len(lines))
	found := false
	for _, line := range lines {
		if line.ItemID == itemID {
			found = true
			continue
		}
		out = append(out, line)
	}
	return out, found
}

// SetQuantity rewrites the quantity and total of itemID. Quantities of zero or
// less remove the line.
func SetQuantity(lines []Line, itemID string, quantity int) ([]Line, bool) {
	if quantity <= 0 {
		return Remove(lines, itemID)
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ItemID == itemID {
			out[i].Quantity = quantity
			out[i].Total = out[i].Price * int64(quantity)
			return out, true
		}
	}
	return out, false
}
