package course

import (
	"time"

	"github.com/mkabeya/ratiba/core"
)

// Course is one fixed weekly class slot on a student's timetable.
type Course struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Weekday   int       `json:"weekday"` // ISO: 1=Monday .. 7=Sunday
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Location  string    `json:"location"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeRange renders the slot as "HH:MM-HH:MM".
func (c Course) TimeRange() string {
	return c.StartTime + "-" + c.EndTime
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name      string `json:"name" validate:"required"`
	Weekday   int    `json:"weekday" validate:"required,min=1,max=7"`
	StartTime string `json:"start_time" validate:"required,timeofday"`
	EndTime   string `json:"end_time" validate:"required,timeofday,gtfield=StartTime"`
	Location  string `json:"location"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Location = core.CleanString(nc.Location)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Name      string `json:"name"`
	Weekday   int    `json:"weekday" validate:"omitempty,min=1,max=7"`
	StartTime string `json:"start_time" validate:"omitempty,timeofday"`
	EndTime   string `json:"end_time" validate:"omitempty,timeofday"`
	Location  string `json:"location"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
}

func (uc *UpdateCourse) Validate() error {
	uc.Name = core.CleanString(uc.Name)
	uc.Location = core.CleanString(uc.Location)
	return core.Validate.Struct(uc)
}

// QueryFilter applies AND operation on available fields.
type QueryFilter struct {
	OwnerID string
	Weekday int
}
