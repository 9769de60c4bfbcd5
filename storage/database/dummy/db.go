package dummydb

import (
	"sync"

	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/core/note"
	"github.com/mkabeya/ratiba/core/user"
)

type (
	DB struct {
		user       *userTable
		course     *courseTable
		assignment *assignmentTable
		group      *groupTable
		note       *noteTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*assignment.Assignment
	}

	groupTable struct {
		sync.RWMutex
		table    map[string]*group.Group
		members  map[string]map[string]bool // groupID -> userID set
		messages map[string][]group.Message // groupID -> messages, insertion order
	}

	noteTable struct {
		sync.RWMutex
		table map[string]*note.Note
	}
)

func Open() *DB {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		course:     &courseTable{table: make(map[string]*course.Course)},
		assignment: &assignmentTable{table: make(map[string]*assignment.Assignment)},
		group: &groupTable{
			table:    make(map[string]*group.Group),
			members:  make(map[string]map[string]bool),
			messages: make(map[string][]group.Message),
		},
		note: &noteTable{table: make(map[string]*note.Note)},
	}
	return db
}
