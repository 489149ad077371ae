package views

import (
	"math"
	"sort"

	"github.com/spartan/planner/internal/domain/entities"
)

// Slice is one segment of a report breakdown
type Slice struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

var categoryColors = map[string]string{
	"Homework": "#6366f1",
	"Project":  "#8b5cf6",
	"Exam":     "#ec4899",
	"Club":     "#10b981",
	"Personal": "#f59e0b",
	"Other":    "#6b7280",
}

var priorityColors = map[entities.Priority]string{
	entities.PriorityHigh:   "#ef4444",
	entities.PriorityMedium: "#f59e0b",
	entities.PriorityLow:    "#10b981",
}

const fallbackColor = "#6b7280"

// Percent computes count as a share of total with one decimal of precision.
// A zero total yields zero rather than NaN.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// CategoryBreakdown groups tasks by category, ordered by descending count.
// Categories tie-break in first-seen order.
func CategoryBreakdown(tasks []entities.Task) []Slice {
	counts := map[string]int{}
	var order []string
	for i := range tasks {
		category := tasks[i].Category
		if category == "" {
			category = entities.CategoryOther
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	slices := make([]Slice, 0, len(order))
	for _, name := range order {
		color, ok := categoryColors[name]
		if !ok {
			color = fallbackColor
		}
		slices = append(slices, Slice{
			Name:    name,
			Count:   counts[name],
			Percent: Percent(counts[name], len(tasks)),
			Color:   color,
		})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Count > slices[j].Count
	})
	return slices
}

// PriorityBreakdown groups tasks by priority, ordered high to low
func PriorityBreakdown(tasks []entities.Task) []Slice {
	counts := map[entities.Priority]int{}
	for i := range tasks {
		counts[tasks[i].Priority]++
	}

	slices := make([]Slice, 0, 3)
	for _, priority := range []entities.Priority{entities.PriorityHigh, entities.PriorityMedium, entities.PriorityLow} {
		slices = append(slices, Slice{
			Name:    priority.Label(),
			Count:   counts[priority],
			Percent: Percent(counts[priority], len(tasks)),
			Color:   priorityColors[priority],
		})
	}
	return slices
}

// StatusBreakdown groups tasks by status in display order
func StatusBreakdown(tasks []entities.Task) []Slice {
	counts := map[entities.Status]int{}
	for i := range tasks {
		counts[tasks[i].Status]++
	}

	statusColors := map[entities.Status]string{
		entities.StatusDone:       "#10b981",
		entities.StatusInProgress: "#f59e0b",
		entities.StatusOpen:       "#6b7280",
	}

	slices := make([]Slice, 0, 3)
	for _, status := range []entities.Status{entities.StatusDone, entities.StatusInProgress, entities.StatusOpen} {
		slices = append(slices, Slice{
			Name:    status.Label(),
			Count:   counts[status],
			Percent: Percent(counts[status], len(tasks)),
			Color:   statusColors[status],
		})
	}
	return slices
}
