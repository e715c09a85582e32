package viewmodel

import (
	"fmt"
	"math"
)

// CountBy tallies items per category value.
func CountBy[V any](items []V, value func(V) string) map[string]int {
	counts := make(map[string]int)
	for _, v := range items {
		counts[value(v)]++
	}
	return counts
}

// SumBy adds a numeric field across items.
func SumBy[V any](items []V, value func(V) int64) int64 {
	var total int64
	for _, v := range items {
		total += value(v)
	}
	return total
}

// Percent returns part as a percentage of total, rounded to the nearest
// integer. A zero total yields 0, which is the valid empty-collection state.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Showing formats the "Showing X of Y" label for a filtered list.
func Showing(filtered, total int) string {
	return fmt.Sprintf("Showing %d of %d", filtered, total)
}
