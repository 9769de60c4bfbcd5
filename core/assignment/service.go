package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("assignment not found")

type (
	Repository interface {
		CreateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		// QueryAssignments returns assignments ordered by due date ascending.
		QueryAssignments(ctx context.Context, filter QueryFilter) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		UpdateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		DeleteAssignmentsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ownerID string, na NewAssignment) (Assignment, error) {
	now := time.Now().UTC()
	asg := Assignment{
		OwnerID:   ownerID,
		CourseID:  na.CourseID,
		Title:     na.Title,
		Notes:     na.Notes,
		DueAt:     na.DueAt.UTC(),
		Priority:  na.Priority,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateAssignment(ctx, asg)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx, filter)
}

func (svc *Service) QueryByOwner(ctx context.Context, ownerID string) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx, QueryFilter{OwnerID: ownerID})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ua UpdateAssignment) (Assignment, error) {
	asg := Assignment{
		ID:        id,
		CourseID:  ua.CourseID,
		Title:     ua.Title,
		Notes:     ua.Notes,
		DueAt:     ua.DueAt,
		Priority:  ua.Priority,
		Status:    ua.Status,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateAssignment(ctx, asg)
}

// Complete marks the assignment done; the terminal state excludes it from study plans.
func (svc *Service) Complete(ctx context.Context, id string) (Assignment, error) {
	return svc.Update(ctx, id, UpdateAssignment{Status: StatusCompleted})
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteAssignmentsByID(ctx, ids...)
}
