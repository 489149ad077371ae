// Package schedule holds the static class schedule. The sessions are a
// read-only fixture shared by the calendar views; they are not persisted.
package schedule

import "github.com/spartan/planner/internal/domain/entities"

var sessions = []entities.ClassSession{
	{
		ID:         1,
		Course:     "CS 122",
		Title:      "Advanced Python Programming",
		Day:        "Monday",
		StartTime:  "10:00",
		EndTime:    "11:15",
		Location:   "ENG 189",
		Instructor: "Dr. Smith",
		Color:      "#667eea",
	},
	{
		ID:         2,
		Course:     "CS 22B",
		Title:      "Python Data Analysis",
		Day:        "Monday",
		StartTime:  "14:00",
		EndTime:    "15:15",
		Location:   "ENG 201",
		Instructor: "Dr. Johnson",
		Color:      "#764ba2",
	},
	{
		ID:         3,
		Course:     "CS 163",
		Title:      "Data Science Project",
		Day:        "Wednesday",
		StartTime:  "10:00",
		EndTime:    "11:15",
		Location:   "ENG 189",
		Instructor: "Dr. Williams",
		Color:      "#f093fb",
	},
	{
		ID:         4,
		Course:     "CS 171",
		Title:      "Intro Machine Learning",
		Day:        "Wednesday",
		StartTime:  "14:00",
		EndTime:    "15:15",
		Location:   "ENG 205",
		Instructor: "Dr. Brown",
		Color:      "#4facfe",
	},
	{
		ID:         5,
		Course:     "KIN 35B",
		Title:      "Intermediate Weight Training",
		Day:        "Tuesday",
		StartTime:  "16:00",
		EndTime:    "17:00",
		Location:   "GYM A",
		Instructor: "Coach Martinez",
		Color:      "#30d158",
	},
	{
		ID:         6,
		Course:     "SSCI 101",
		Title:      "Leadership",
		Day:        "Thursday",
		StartTime:  "11:00",
		EndTime:    "12:15",
		Location:   "CL 201",
		Instructor: "Dr. Davis",
		Color:      "#ff9f0a",
	},
}

// Sessions returns a copy of the class schedule
func Sessions() []entities.ClassSession {
	out := make([]entities.ClassSession, len(sessions))
	copy(out, sessions)
	return out
}

// Courses returns the selectable course names for the task form
func Courses() []string {
	return []string{
		"CS 22B - Python Data Analysis",
		"CS 122 - Adv Python Prog",
		"CS 163 - Data Science Project",
		"CS 171 - Intro Machine Learn",
		"KIN 35B - Inter Wt Training",
		"SSCI 101 - Leadership",
		"Other",
	}
}
