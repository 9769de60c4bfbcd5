package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mkabeya/ratiba/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs.ID = uuid.New().String()
	repo.db.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.table))
	for _, crs := range repo.db.table {
		if filter.OwnerID != "" && crs.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Weekday != 0 && crs.Weekday != filter.Weekday {
			continue
		}
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Weekday != courses[j].Weekday {
			return courses[i].Weekday < courses[j].Weekday
		}
		return courses[i].StartTime < courses[j].StartTime
	})
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if crs, ok := repo.db.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing, ok := repo.db.table[crs.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	if crs.Name != "" {
		existing.Name = crs.Name
	}
	if crs.Weekday != 0 {
		existing.Weekday = crs.Weekday
	}
	if crs.StartTime != "" {
		existing.StartTime = crs.StartTime
	}
	if crs.EndTime != "" {
		existing.EndTime = crs.EndTime
	}
	if crs.Location != "" {
		existing.Location = crs.Location
	}
	if crs.Color != "" {
		existing.Color = crs.Color
	}
	if !crs.UpdatedAt.IsZero() {
		existing.UpdatedAt = crs.UpdatedAt
	}
	return *existing, nil
}

func (repo *courseRepository) DeleteCoursesByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
