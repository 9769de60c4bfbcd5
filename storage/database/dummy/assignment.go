package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mkabeya/ratiba/core/assignment"
)

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	asg.ID = uuid.New().String()
	repo.db.table[asg.ID] = &asg
	return asg, nil
}

func (repo *assignmentRepository) QueryAssignments(_ context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	asgs := make([]assignment.Assignment, 0, len(repo.db.table))
	for _, asg := range repo.db.table {
		if filter.OwnerID != "" && asg.OwnerID != filter.OwnerID {
			continue
		}
		if filter.CourseID != "" && asg.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && asg.Status != filter.Status {
			continue
		}
		if !filter.DueBefore.IsZero() && !asg.DueAt.Before(filter.DueBefore) {
			continue
		}
		if !filter.DueAfter.IsZero() && !asg.DueAt.After(filter.DueAfter) {
			continue
		}
		asgs = append(asgs, *asg)
	}
	sort.Slice(asgs, func(i, j int) bool { return asgs[i].DueAt.Before(asgs[j].DueAt) })
	return asgs, nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id string) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if asg, ok := repo.db.table[id]; ok {
		return *asg, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing, ok := repo.db.table[asg.ID]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	if asg.CourseID != "" {
		existing.CourseID = asg.CourseID
	}
	if asg.Title != "" {
		existing.Title = asg.Title
	}
	if asg.Notes != "" {
		existing.Notes = asg.Notes
	}
	if !asg.DueAt.IsZero() {
		existing.DueAt = asg.DueAt
	}
	if asg.Priority != "" {
		existing.Priority = asg.Priority
	}
	if asg.Status != "" {
		existing.Status = asg.Status
	}
	if !asg.UpdatedAt.IsZero() {
		existing.UpdatedAt = asg.UpdatedAt
	}
	return *existing, nil
}

func (repo *assignmentRepository) DeleteAssignmentsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
