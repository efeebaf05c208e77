package expense

// Category is a fixed classification tag for an expense record.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryRent          Category = "Rent"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryOther         Category = "Other"
)

// CategoryFilterAll is the filter sentinel matching every category.
// It is never a valid value on a record.
const CategoryFilterAll Category = "All"

// CategoryInfo maps a category to its display attributes.
type CategoryInfo struct {
	Label Category
	Color string // hex, e.g. "#f87171"
}

// Categories returns the closed category set in declaration order.
// Aggregations that report per-category figures iterate this slice, so
// its order is the canonical output order.
func Categories() []CategoryInfo {
	return []CategoryInfo{
		{Label: CategoryFood, Color: "#f87171"},
		{Label: CategoryTransport, Color: "#60a5fa"},
		{Label: CategoryRent, Color: "#fbbf24"},
		{Label: CategoryEntertainment, Color: "#a78bfa"},
		{Label: CategoryUtilities, Color: "#34d399"},
		{Label: CategoryOther, Color: "#94a3b8"},
	}
}

// CategoryColor returns the display color for a category, falling back to
// the Other color for values outside the set.
func CategoryColor(c Category) string {
	for _, info := range Categories() {
		if info.Label == c {
			return info.Color
		}
	}
	return "#94a3b8"
}
