package aiassist

import (
	"sort"
	"time"

	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
)

var NowFunc = time.Now // mockable

const (
	maxAssignmentsPerDay = 2
	minSessionsPerDay    = 3

	firstAssignmentSlot  = "19:30-21:00"
	secondAssignmentSlot = "21:00-22:00"
	bufferSlot           = "22:00-22:30"

	baseFocusScore       = 60
	maxFocusScore        = 100
	assignmentFocusBonus = 10
	classFocusBonus      = 5
)

// GeneratePlan builds a day-by-day study plan starting today, one entry per
// day. Incomplete assignments are ordered once (due date ascending, priority
// descending on ties) and consumed by a single cursor shared across all days:
// each assignment lands in exactly one day, in due-date order, never repeated.
// This is a deliberate greedy, non-backtracking allocator; a day overloaded
// with classes still pulls its two assignments.
func GeneratePlan(courses []course.Course, assignments []assignment.Assignment, dayCount int) []StudyPlanDay {
	plan := make([]StudyPlanDay, 0, max(dayCount, 0))
	if dayCount <= 0 {
		return plan
	}

	pending := make([]assignment.Assignment, 0, len(assignments))
	for _, asg := range assignments {
		if !asg.Status.Completed() {
			pending = append(pending, asg)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].DueAt.Equal(pending[j].DueAt) {
			return pending[i].DueAt.Before(pending[j].DueAt)
		}
		return pending[i].Priority.Rank() > pending[j].Priority.Rank()
	})

	today := NowFunc()
	cursor := 0

	for offset := 0; offset < dayCount; offset++ {
		date := today.AddDate(0, 0, offset)
		weekday := isoWeekday(date)

		var sessions []PlannedSession
		var classCount int
		for _, crs := range courses {
			if crs.Weekday != weekday {
				continue
			}
			detail := crs.TimeRange()
			if crs.Location != "" {
				detail += " · " + crs.Location
			}
			sessions = append(sessions, PlannedSession{
				Label:     crs.Name,
				Detail:    detail,
				TimeRange: crs.TimeRange(),
				Kind:      SessionClass,
				CourseID:  crs.ID,
			})
			classCount++
		}

		slots := [maxAssignmentsPerDay]string{firstAssignmentSlot, secondAssignmentSlot}
		var priorityAssignments []string
		var assignmentCount int
		for assignmentCount < maxAssignmentsPerDay && cursor < len(pending) {
			asg := pending[cursor]
			cursor++
			sessions = append(sessions, PlannedSession{
				Label:        asg.Title,
				Detail:       "due " + asg.DueAt.Local().Format("01-02 15:04"),
				TimeRange:    slots[assignmentCount],
				Kind:         SessionAssignment,
				AssignmentID: asg.ID,
			})
			priorityAssignments = append(priorityAssignments, asg.Title)
			assignmentCount++
		}

		if len(sessions) < minSessionsPerDay {
			sessions = append(sessions, PlannedSession{
				Label:     "Review buffer",
				Detail:    "Recap today's material and preview tomorrow",
				TimeRange: bufferSlot,
				Kind:      SessionBuffer,
			})
		}

		focus := baseFocusScore + assignmentFocusBonus*assignmentCount + classFocusBonus*classCount
		if focus > maxFocusScore {
			focus = maxFocusScore
		}

		plan = append(plan, StudyPlanDay{
			Date:                date.Format("2006-01-02"),
			Sessions:            sessions,
			PriorityAssignments: priorityAssignments,
			FocusScore:          focus,
		})
	}
	return plan
}

// isoWeekday maps Go's Sunday-based weekday to ISO (1=Monday .. 7=Sunday).
func isoWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}
