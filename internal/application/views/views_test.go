package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/domain/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func taskDue(title string, due time.Time, priority entities.Priority, status entities.Status) entities.Task {
	return entities.Task{Title: title, DueAt: &due, Priority: priority, Status: status}
}

func TestWeekDaysSundayThroughSaturday(t *testing.T) {
	// 2026-03-11 is a Wednesday
	days := WeekDays(date(2026, time.March, 11))

	require.Len(t, days, 7)
	assert.Equal(t, date(2026, time.March, 8), days[0].Date, "week opens on Sunday")
	assert.Equal(t, date(2026, time.March, 14), days[6].Date, "week closes on Saturday")
	for i, day := range days {
		assert.Equal(t, time.Weekday(i), day.Date.Weekday())
	}
}

func TestWeekDaysAnchoredOnSunday(t *testing.T) {
	sunday := date(2026, time.March, 8)
	days := WeekDays(sunday)
	assert.Equal(t, sunday, days[0].Date, "a Sunday anchor starts its own week")
}

func TestMonthGridPadsToFullWeeks(t *testing.T) {
	// March 2026 starts on a Sunday and ends on a Tuesday
	days := MonthGrid(date(2026, time.March, 15))

	require.Equal(t, 35, len(days), "grid is whole weeks")
	assert.Equal(t, date(2026, time.March, 1), days[0].Date)
	assert.False(t, days[0].OtherMonth)
	assert.Equal(t, date(2026, time.April, 4), days[34].Date)
	assert.True(t, days[34].OtherMonth, "trailing April days are marked")
}

func TestWeekAndMonthNavigation(t *testing.T) {
	anchor := date(2026, time.March, 11)

	assert.Equal(t, date(2026, time.March, 18), NextWeek(anchor))
	assert.Equal(t, date(2026, time.March, 4), PrevWeek(anchor))
	assert.Equal(t, time.April, NextMonth(anchor).Month())
	assert.Equal(t, time.February, PrevMonth(anchor).Month())
}

func TestClassesForDay(t *testing.T) {
	sessions := schedule.Sessions()

	monday := ClassesForDay(sessions, date(2026, time.March, 9))
	require.Len(t, monday, 2)
	assert.Equal(t, "CS 122", monday[0].Course)

	friday := ClassesForDay(sessions, date(2026, time.March, 13))
	assert.Empty(t, friday)
}

func TestTasksForDay(t *testing.T) {
	tasks := []entities.Task{
		taskDue("due 11th", time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC), entities.PriorityLow, entities.StatusOpen),
		taskDue("due 12th", date(2026, time.March, 12), entities.PriorityLow, entities.StatusOpen),
		{Title: "no due date"},
	}

	got := TasksForDay(tasks, date(2026, time.March, 11))
	require.Len(t, got, 1)
	assert.Equal(t, "due 11th", got[0].Title)
}

func TestEventsForDay(t *testing.T) {
	allDay := entities.Event{
		Title:     "conference",
		IsAllDay:  true,
		StartDate: date(2026, time.March, 10),
		EndDate:   date(2026, time.March, 12),
	}
	spanning := entities.Event{
		Title:     "hackathon",
		StartDate: time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC),
	}
	noEnd := entities.Event{
		Title:     "office hours",
		StartDate: time.Date(2026, time.March, 11, 14, 0, 0, 0, time.UTC),
	}
	events := []entities.Event{allDay, spanning, noEnd}

	onStart := EventsForDay(events, date(2026, time.March, 10))
	assert.Len(t, onStart, 2, "all-day and spanning events show on their start day")

	middle := EventsForDay(events, date(2026, time.March, 11))
	require.Len(t, middle, 2)
	assert.Equal(t, "hackathon", middle[0].Title, "timed span covers the middle day")
	assert.Equal(t, "office hours", middle[1].Title)

	onEnd := EventsForDay(events, date(2026, time.March, 12))
	require.Len(t, onEnd, 1)
	assert.Equal(t, "hackathon", onEnd[0].Title, "all-day events never repeat past their start day")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 33.3, Percent(1, 3))
	assert.Equal(t, 50.0, Percent(2, 4))
	assert.Equal(t, 0.0, Percent(0, 0), "empty totals never divide by zero")
	assert.Equal(t, 100.0, Percent(5, 5))
}

func TestCategoryBreakdown(t *testing.T) {
	tasks := []entities.Task{
		{Category: "Homework"},
		{Category: "Homework"},
		{Category: "Exam"},
		{Category: ""},
	}

	slices := CategoryBreakdown(tasks)

	require.Len(t, slices, 3)
	assert.Equal(t, "Homework", slices[0].Name)
	assert.Equal(t, 2, slices[0].Count)
	assert.Equal(t, 50.0, slices[0].Percent)
	assert.Equal(t, "#6366f1", slices[0].Color)
	assert.Equal(t, "Exam", slices[1].Name, "ties keep first-seen order")
	assert.Equal(t, "Other", slices[2].Name, "blank category folds into Other")
	assert.Equal(t, "#6b7280", slices[2].Color)
}

func TestCategoryBreakdownUnknownCategoryColor(t *testing.T) {
	slices := CategoryBreakdown([]entities.Task{{Category: "Gardening"}})
	require.Len(t, slices, 1)
	assert.Equal(t, fallbackColor, slices[0].Color)
}

func TestPriorityBreakdownOrderedHighToLow(t *testing.T) {
	tasks := []entities.Task{
		{Priority: entities.PriorityLow},
		{Priority: entities.PriorityHigh},
		{Priority: entities.PriorityLow},
	}

	slices := PriorityBreakdown(tasks)

	require.Len(t, slices, 3)
	assert.Equal(t, "High", slices[0].Name)
	assert.Equal(t, 1, slices[0].Count)
	assert.Equal(t, "Medium", slices[1].Name)
	assert.Equal(t, 0, slices[1].Count, "empty buckets still render")
	assert.Equal(t, "Low", slices[2].Name)
	assert.Equal(t, 2, slices[2].Count)
	assert.Equal(t, 66.7, slices[2].Percent)
}

func TestStatusBreakdown(t *testing.T) {
	tasks := []entities.Task{
		{Status: entities.StatusDone},
		{Status: entities.StatusOpen},
		{Status: entities.StatusOpen},
	}

	slices := StatusBreakdown(tasks)
	require.Len(t, slices, 3)
	assert.Equal(t, "Completed", slices[0].Name)
	assert.Equal(t, 1, slices[0].Count)
	assert.Equal(t, "Not Started", slices[2].Name)
	assert.Equal(t, 2, slices[2].Count)
}

func TestFilterByStatus(t *testing.T) {
	tasks := []entities.Task{
		{Title: "a", Status: entities.StatusOpen},
		{Title: "b", Status: entities.StatusDone},
	}

	assert.Len(t, FilterByStatus(tasks, StatusFilterAll), 2)
	assert.Len(t, FilterByStatus(tasks, ""), 2)

	done := FilterByStatus(tasks, "Completed")
	require.Len(t, done, 1)
	assert.Equal(t, "b", done[0].Title)
}

func TestSortTasksByPriority(t *testing.T) {
	tasks := []entities.Task{
		{Title: "low", Priority: entities.PriorityLow},
		{Title: "high", Priority: entities.PriorityHigh},
		{Title: "mid", Priority: entities.PriorityMedium},
	}

	sorted := SortTasks(tasks, SortByPriority)
	assert.Equal(t, "high", sorted[0].Title)
	assert.Equal(t, "mid", sorted[1].Title)
	assert.Equal(t, "low", sorted[2].Title)
	assert.Equal(t, "low", tasks[0].Title, "input order is untouched")
}

func TestSortTasksByDueDateNoDueFirst(t *testing.T) {
	due := date(2026, time.March, 20)
	tasks := []entities.Task{
		taskDue("dated", due, entities.PriorityLow, entities.StatusOpen),
		{Title: "undated"},
	}

	sorted := SortTasks(tasks, SortByDueDate)
	assert.Equal(t, "undated", sorted[0].Title)
	assert.Equal(t, "dated", sorted[1].Title)
}

func TestDueLabel(t *testing.T) {
	now := time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{"no due date", nil, "No due date"},
		{"today", timePtr(date(2026, time.March, 11)), "Due Today"},
		{"tomorrow", timePtr(date(2026, time.March, 12)), "Due Tomorrow"},
		{"this week", timePtr(date(2026, time.March, 15)), "Due in 4 days"},
		{"far out", timePtr(date(2026, time.April, 2)), "Due Apr 2"},
		{"yesterday", timePtr(date(2026, time.March, 10)), "Overdue (1 day)"},
		{"long overdue", timePtr(date(2026, time.March, 5)), "Overdue (6 days)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := entities.Task{DueAt: tt.due}
			assert.Equal(t, tt.want, DueLabel(&task, now))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestDeleteConfirmTwoClicks(t *testing.T) {
	confirm := NewDeleteConfirm()
	key := ConfirmKey("task", "t1")

	assert.False(t, confirm.Click(key), "first click arms")
	assert.Equal(t, key, confirm.Armed())
	assert.True(t, confirm.Click(key), "second click confirms")
	assert.Empty(t, confirm.Armed(), "confirmation disarms")
}

func TestDeleteConfirmSwitchingTargetsRearms(t *testing.T) {
	confirm := NewDeleteConfirm()

	assert.False(t, confirm.Click(ConfirmKey("task", "t1")))
	assert.False(t, confirm.Click(ConfirmKey("event", "t1")), "same id under another kind is a different target")
	assert.Equal(t, "event-t1", confirm.Armed())
	assert.True(t, confirm.Click(ConfirmKey("event", "t1")))
}

func TestDeleteConfirmReset(t *testing.T) {
	confirm := NewDeleteConfirm()
	confirm.Click("task-t1")
	confirm.Reset()
	assert.False(t, confirm.Click("task-t1"), "reset returns to the armed step")
}
