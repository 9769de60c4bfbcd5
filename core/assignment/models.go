package assignment

import (
	"time"

	"github.com/mkabeya/ratiba/core"
)

// Priority orders assignments within a due date: LOW < MEDIUM < HIGH.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var priorityRanks = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// Rank returns the sortable weight of the priority; unknown values rank lowest.
func (p Priority) Rank() int {
	return priorityRanks[p]
}

// Status tracks assignment progress; StatusCompleted is terminal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) Completed() bool {
	return s == StatusCompleted
}

type Assignment struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	CourseID  string    `json:"course_id,omitempty"` // optional course reference
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	DueAt     time.Time `json:"due_at"`
	Priority  Priority  `json:"priority"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	CourseID string    `json:"course_id"`
	Title    string    `json:"title" validate:"required"`
	Notes    string    `json:"notes"`
	DueAt    time.Time `json:"due_at" validate:"required"`
	Priority Priority  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	if na.Priority == "" {
		na.Priority = PriorityMedium
	}
	return core.Validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
type UpdateAssignment struct {
	CourseID string    `json:"course_id"`
	Title    string    `json:"title"`
	Notes    string    `json:"notes"`
	DueAt    time.Time `json:"due_at"`
	Priority Priority  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status   Status    `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

func (ua *UpdateAssignment) Validate() error {
	ua.Title = core.CleanString(ua.Title)
	return core.Validate.Struct(ua)
}

// QueryFilter applies AND operation on available fields.
type QueryFilter struct {
	OwnerID   string
	CourseID  string
	Status    Status
	DueBefore time.Time
	DueAfter  time.Time
}
