package course

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// QueryCourses returns courses ordered by weekday then start time.
		QueryCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ownerID string, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		OwnerID:   ownerID,
		Name:      nc.Name,
		Weekday:   nc.Weekday,
		StartTime: nc.StartTime,
		EndTime:   nc.EndTime,
		Location:  nc.Location,
		Color:     nc.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) QueryByOwner(ctx context.Context, ownerID string) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, QueryFilter{OwnerID: ownerID})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	crs := Course{
		ID:        id,
		Name:      uc.Name,
		Weekday:   uc.Weekday,
		StartTime: uc.StartTime,
		EndTime:   uc.EndTime,
		Location:  uc.Location,
		Color:     uc.Color,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}
