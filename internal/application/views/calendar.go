// Package views derives display structures from the stored models: calendar
// grids, report breakdowns, dashboard orderings, and the two-step delete
// confirmation. Everything here is pure computation over data the services
// already fetched.
package views

import (
	"time"

	"github.com/spartan/planner/internal/domain/entities"
)

// Day is one calendar cell. OtherMonth marks leading and trailing cells in
// a month grid that belong to the adjacent months.
type Day struct {
	Date       time.Time `json:"date"`
	OtherMonth bool      `json:"other_month"`
}

// WeekStart returns the Sunday on or before t, at midnight in t's location
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// WeekDays returns the seven days of the week containing anchor, Sunday
// through Saturday
func WeekDays(anchor time.Time) []Day {
	start := WeekStart(anchor)
	days := make([]Day, 7)
	for i := range days {
		days[i] = Day{Date: start.AddDate(0, 0, i)}
	}
	return days
}

// MonthGrid returns the month containing anchor as full weeks, padded with
// adjacent-month days so every row holds exactly seven cells
func MonthGrid(anchor time.Time) []Day {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	start := WeekStart(first)
	end := WeekStart(last).AddDate(0, 0, 6)

	var days []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{Date: d, OtherMonth: d.Month() != anchor.Month()})
	}
	return days
}

// NextWeek and PrevWeek step the anchor by whole weeks
func NextWeek(anchor time.Time) time.Time { return anchor.AddDate(0, 0, 7) }
func PrevWeek(anchor time.Time) time.Time { return anchor.AddDate(0, 0, -7) }

// NextMonth and PrevMonth step the anchor by whole months
func NextMonth(anchor time.Time) time.Time { return anchor.AddDate(0, 1, 0) }
func PrevMonth(anchor time.Time) time.Time { return anchor.AddDate(0, -1, 0) }

// Today truncates now to midnight for use as a calendar anchor
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ClassesForDay returns the schedule sessions recurring on day's weekday
func ClassesForDay(sessions []entities.ClassSession, day time.Time) []entities.ClassSession {
	weekday := day.Weekday().String()
	out := make([]entities.ClassSession, 0)
	for _, session := range sessions {
		if session.Day == weekday {
			out = append(out, session)
		}
	}
	return out
}

// TasksForDay returns the tasks due on the given calendar day
func TasksForDay(tasks []entities.Task, day time.Time) []entities.Task {
	out := make([]entities.Task, 0)
	for _, task := range tasks {
		if task.DueAt != nil && SameDay(*task.DueAt, day) {
			out = append(out, task)
		}
	}
	return out
}

// EventsForDay returns the events visible on the given calendar day. An
// all-day event shows only on its start day; a timed event shows when its
// start or end falls on the day, or when its span encloses the day.
func EventsForDay(events []entities.Event, day time.Time) []entities.Event {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	out := make([]entities.Event, 0)
	for _, event := range events {
		if event.IsAllDay {
			if SameDay(event.StartDate, day) {
				out = append(out, event)
			}
			continue
		}
		end := event.End()
		startsToday := SameDay(event.StartDate, day)
		endsToday := SameDay(end, day)
		encloses := event.StartDate.Before(dayStart) && !end.Before(dayEnd)
		if startsToday || endsToday || encloses {
			out = append(out, event)
		}
	}
	return out
}
