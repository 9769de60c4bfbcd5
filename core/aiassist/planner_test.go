package aiassist

import (
	"testing"
	"time"

	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
)

// a Monday, so weekday math is predictable
var plannerNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func mockPlannerNow(t *testing.T) {
	t.Helper()
	NowFunc = func() time.Time { return plannerNow }
	t.Cleanup(func() { NowFunc = time.Now })
}

func TestGeneratePlanSize(t *testing.T) {
	mockPlannerNow(t)

	tests := []struct {
		name     string
		dayCount int
		want     int
	}{
		{name: "negative", dayCount: -1, want: 0},
		{name: "zero", dayCount: 0, want: 0},
		{name: "one", dayCount: 1, want: 1},
		{name: "week", dayCount: 7, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := GeneratePlan(nil, nil, tt.dayCount)
			if len(plan) != tt.want {
				t.Errorf("GeneratePlan() returned %d days, want %d", len(plan), tt.want)
			}
		})
	}
}

func TestGeneratePlanAssignmentCursor(t *testing.T) {
	mockPlannerNow(t)

	// three assignments due on consecutive days, no courses
	asgs := []assignment.Assignment{
		{ID: "a0", Title: "hw0", DueAt: plannerNow, Priority: assignment.PriorityMedium, Status: assignment.StatusPending},
		{ID: "a1", Title: "hw1", DueAt: plannerNow.AddDate(0, 0, 1), Priority: assignment.PriorityMedium, Status: assignment.StatusPending},
		{ID: "a2", Title: "hw2", DueAt: plannerNow.AddDate(0, 0, 2), Priority: assignment.PriorityMedium, Status: assignment.StatusPending},
	}

	plan := GeneratePlan(nil, asgs, 3)
	if len(plan) != 3 {
		t.Fatalf("plan has %d days, want 3", len(plan))
	}

	// two assignments fit per day, so day 0 takes hw0+hw1 and day 1 takes hw2
	day0 := assignmentSessions(plan[0])
	if len(day0) != 2 || day0[0].AssignmentID != "a0" || day0[1].AssignmentID != "a1" {
		t.Errorf("day 0 assignments = %v, want [a0 a1]", sessionIDs(day0))
	}
	if day0[0].TimeRange != "19:30-21:00" || day0[1].TimeRange != "21:00-22:00" {
		t.Errorf("day 0 slots = %q %q, want fixed evening slots", day0[0].TimeRange, day0[1].TimeRange)
	}
	day1 := assignmentSessions(plan[1])
	if len(day1) != 1 || day1[0].AssignmentID != "a2" {
		t.Errorf("day 1 assignments = %v, want [a2]", sessionIDs(day1))
	}
	if len(assignmentSessions(plan[2])) != 0 {
		t.Errorf("day 2 should have no assignments, cursor is exhausted")
	}

	// every day here has < 3 sessions, so each gets a buffer
	for i, day := range plan {
		var buffers int
		for _, s := range day.Sessions {
			if s.Kind == SessionBuffer {
				buffers++
				if s.TimeRange != "22:00-22:30" {
					t.Errorf("day %d buffer slot = %q, want 22:00-22:30", i, s.TimeRange)
				}
			}
		}
		if buffers != 1 {
			t.Errorf("day %d has %d buffer sessions, want 1", i, buffers)
		}
	}
}

func TestGeneratePlanOnePerDayExample(t *testing.T) {
	mockPlannerNow(t)

	// one assignment per day when only one remains at each cursor step
	asgs := []assignment.Assignment{
		{ID: "a0", Title: "hw0", DueAt: plannerNow, Priority: assignment.PriorityMedium, Status: assignment.StatusPending},
	}
	plan := GeneratePlan(nil, asgs, 3)

	if got := plan[0].PriorityAssignments; len(got) != 1 || got[0] != "hw0" {
		t.Errorf("day 0 priority assignments = %v, want [hw0]", got)
	}
	for i := 1; i < 3; i++ {
		if len(plan[i].PriorityAssignments) != 0 {
			t.Errorf("day %d priority assignments = %v, want none", i, plan[i].PriorityAssignments)
		}
	}
}

func TestGeneratePlanOrdering(t *testing.T) {
	mockPlannerNow(t)

	due := plannerNow.AddDate(0, 0, 1)
	asgs := []assignment.Assignment{
		{ID: "low", Title: "low prio", DueAt: due, Priority: assignment.PriorityLow, Status: assignment.StatusPending},
		{ID: "high", Title: "high prio", DueAt: due, Priority: assignment.PriorityHigh, Status: assignment.StatusPending},
		{ID: "early", Title: "due first", DueAt: plannerNow, Priority: assignment.PriorityLow, Status: assignment.StatusPending},
		{ID: "done", Title: "already done", DueAt: plannerNow, Priority: assignment.PriorityHigh, Status: assignment.StatusCompleted},
	}
	plan := GeneratePlan(nil, asgs, 2)

	day0 := assignmentSessions(plan[0])
	if len(day0) != 2 || day0[0].AssignmentID != "early" || day0[1].AssignmentID != "high" {
		t.Errorf("day 0 = %v, want [early high] (due asc, priority desc on ties)", sessionIDs(day0))
	}
	day1 := assignmentSessions(plan[1])
	if len(day1) != 1 || day1[0].AssignmentID != "low" {
		t.Errorf("day 1 = %v, want [low]", sessionIDs(day1))
	}

	// completed assignments are never scheduled
	for _, day := range plan {
		for _, s := range assignmentSessions(day) {
			if s.AssignmentID == "done" {
				t.Error("completed assignment was scheduled")
			}
		}
	}
}

func TestGeneratePlanClassSessions(t *testing.T) {
	mockPlannerNow(t) // Monday

	courses := []course.Course{
		{ID: "c1", Name: "Linear Algebra", Weekday: 1, StartTime: "08:00", EndTime: "09:40", Location: "A-201"},
		{ID: "c2", Name: "Signals", Weekday: 1, StartTime: "10:00", EndTime: "11:40", Location: "B-105"},
		{ID: "c3", Name: "Physics", Weekday: 3, StartTime: "14:00", EndTime: "15:40"},
	}
	plan := GeneratePlan(courses, nil, 3)

	monday := classSessions(plan[0])
	if len(monday) != 2 {
		t.Fatalf("Monday has %d class sessions, want 2", len(monday))
	}
	// course-list order preserved
	if monday[0].CourseID != "c1" || monday[1].CourseID != "c2" {
		t.Errorf("Monday classes = %v, want [c1 c2]", sessionIDs(monday))
	}
	if monday[0].TimeRange != "08:00-09:40" {
		t.Errorf("class time range = %q, want 08:00-09:40", monday[0].TimeRange)
	}

	if got := len(classSessions(plan[1])); got != 0 {
		t.Errorf("Tuesday has %d class sessions, want 0", got)
	}
	wednesday := classSessions(plan[2])
	if len(wednesday) != 1 || wednesday[0].CourseID != "c3" {
		t.Errorf("Wednesday classes = %v, want [c3]", sessionIDs(wednesday))
	}
}

func TestGeneratePlanFocusScore(t *testing.T) {
	mockPlannerNow(t)

	courses := []course.Course{
		{ID: "c1", Name: "A", Weekday: 1, StartTime: "08:00", EndTime: "09:00"},
		{ID: "c2", Name: "B", Weekday: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: "c3", Name: "C", Weekday: 1, StartTime: "10:00", EndTime: "11:00"},
		{ID: "c4", Name: "D", Weekday: 1, StartTime: "11:00", EndTime: "12:00"},
		{ID: "c5", Name: "E", Weekday: 1, StartTime: "13:00", EndTime: "14:00"},
	}
	asgs := []assignment.Assignment{
		{ID: "a1", Title: "hw1", DueAt: plannerNow, Priority: assignment.PriorityHigh, Status: assignment.StatusPending},
		{ID: "a2", Title: "hw2", DueAt: plannerNow, Priority: assignment.PriorityHigh, Status: assignment.StatusPending},
	}

	// 2 assignments + 5 classes: 60 + 20 + 25 = 105, capped at 100
	plan := GeneratePlan(courses, asgs, 1)
	if got := plan[0].FocusScore; got != 100 {
		t.Errorf("FocusScore = %d, want capped 100", got)
	}

	// idle day: base score only
	plan = GeneratePlan(nil, nil, 1)
	if got := plan[0].FocusScore; got != 60 {
		t.Errorf("FocusScore = %d, want base 60", got)
	}

	// 1 assignment, no classes: 60 + 10
	plan = GeneratePlan(nil, asgs[:1], 1)
	if got := plan[0].FocusScore; got != 70 {
		t.Errorf("FocusScore = %d, want 70", got)
	}
}

func TestIsoWeekday(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 1}, // Monday
		{time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), 6}, // Saturday
		{time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), 7}, // Sunday
	}
	for _, tt := range tests {
		if got := isoWeekday(tt.date); got != tt.want {
			t.Errorf("isoWeekday(%s) = %d, want %d", tt.date.Weekday(), got, tt.want)
		}
	}
}

func assignmentSessions(day StudyPlanDay) []PlannedSession {
	return sessionsOfKind(day, SessionAssignment)
}

func classSessions(day StudyPlanDay) []PlannedSession {
	return sessionsOfKind(day, SessionClass)
}

func sessionsOfKind(day StudyPlanDay, kind SessionKind) []PlannedSession {
	var out []PlannedSession
	for _, s := range day.Sessions {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func sessionIDs(sessions []PlannedSession) []string {
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if s.AssignmentID != "" {
			ids = append(ids, s.AssignmentID)
		} else {
			ids = append(ids, s.CourseID)
		}
	}
	return ids
}
