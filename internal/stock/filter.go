package stock

// CategoryAll disables category filtering.
const CategoryAll = "all"

// DefaultLowStockThreshold is the cutoff used when no threshold is configured.
const DefaultLowStockThreshold = 5

// FilterByCategory returns the rows whose product category exactly matches
// category, or all rows for CategoryAll. Rows without a category only pass
// the identity filter. The input slice is never mutated.
func FilterByCategory(rows []Row, category string) []Row {
	if category == CategoryAll {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Category != nil && *r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// FilterLowStock returns the rows whose actual closing count is at or
// below threshold. The input slice is never mutated.
func FilterLowStock(rows []Row, threshold int) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.ActualClosingStock <= threshold {
			out = append(out, r)
		}
	}
	return out
}
