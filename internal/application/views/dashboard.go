package views

import (
	"fmt"
	"sort"
	"time"

	"github.com/spartan/planner/internal/domain/entities"
)

// Task sort modes for the dashboard list
const (
	SortByPriority = "priority"
	SortByDueDate  = "due_date"
)

// StatusFilterAll passes every task through FilterByStatus
const StatusFilterAll = "All"

// FilterByStatus keeps tasks whose display status label matches filter.
// The "All" filter is a passthrough.
func FilterByStatus(tasks []entities.Task, filter string) []entities.Task {
	if filter == "" || filter == StatusFilterAll {
		return tasks
	}
	out := make([]entities.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status.Label() == filter {
			out = append(out, task)
		}
	}
	return out
}

// SortTasks orders tasks for display: by descending priority rank, or by
// ascending due date with no-due tasks first. Unknown modes leave the order
// untouched.
func SortTasks(tasks []entities.Task, mode string) []entities.Task {
	out := append([]entities.Task(nil), tasks...)
	switch mode {
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case SortByDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DueOrEpoch().Before(out[j].DueOrEpoch())
		})
	}
	return out
}

// DueLabel renders a task due date relative to now for the dashboard list
func DueLabel(task *entities.Task, now time.Time) string {
	if task.DueAt == nil {
		return "No due date"
	}

	due := *task.DueAt
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	days := int(dueDay.Sub(today).Hours() / 24)

	switch {
	case days < -1:
		return fmt.Sprintf("Overdue (%d days)", -days)
	case days == -1:
		return "Overdue (1 day)"
	case days == 0:
		return "Due Today"
	case days == 1:
		return "Due Tomorrow"
	case days <= 7:
		return fmt.Sprintf("Due in %d days", days)
	default:
		return "Due " + due.Format("Jan 2")
	}
}
