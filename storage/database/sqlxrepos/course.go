package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/course"
)

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{exec: exec}
}

type courseRow struct {
	ID        string      `db:"id"`
	OwnerID   string      `db:"owner_id"`
	Name      string      `db:"name"`
	Weekday   int         `db:"weekday"`
	StartTime string      `db:"start_time"`
	EndTime   string      `db:"end_time"`
	Location  null.String `db:"location"`
	Color     null.String `db:"color"`
	CreatedAt null.Time   `db:"created_at"`
	UpdatedAt null.Time   `db:"updated_at"`
}

func (repo courseRepository) row(crs course.Course) courseRow {
	return courseRow{
		ID:        crs.ID,
		OwnerID:   crs.OwnerID,
		Name:      crs.Name,
		Weekday:   crs.Weekday,
		StartTime: crs.StartTime,
		EndTime:   crs.EndTime,
		Location:  null.NewString(crs.Location, crs.Location != ""),
		Color:     null.NewString(crs.Color, crs.Color != ""),
		CreatedAt: null.NewTime(crs.CreatedAt.UTC(), !crs.CreatedAt.IsZero()),
		UpdatedAt: null.NewTime(crs.UpdatedAt.UTC(), !crs.UpdatedAt.IsZero()),
	}
}

func (repo courseRepository) unrow(row courseRow) course.Course {
	return course.Course{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Weekday:   row.Weekday,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
		Location:  row.Location.String,
		Color:     row.Color.String,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.New().String()
	query := `
		INSERT INTO course (id, owner_id, name, weekday, start_time, end_time, location, color, created_at, updated_at)
		VALUES (:id, :owner_id, :name, :weekday, :start_time, :end_time, :location, :color, :created_at, :updated_at)`
	if _, err := repo.exec.NamedExecContext(ctx, query, repo.row(crs)); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	query := `SELECT * FROM course WHERE true`
	var args []interface{}
	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	if filter.Weekday != 0 {
		query += ` AND weekday = ?`
		args = append(args, filter.Weekday)
	}
	query += ` ORDER BY weekday, start_time`

	var rows []courseRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, repo.unrow(row))
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var row courseRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(`SELECT * FROM course WHERE id = ?`), id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting course")
	}
	return repo.unrow(row), nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	query := `
		UPDATE course
		SET name       = COALESCE(NULLIF(:name, ''), name),
		    weekday    = CASE WHEN :weekday = 0 THEN weekday ELSE :weekday END,
		    start_time = COALESCE(NULLIF(:start_time, ''), start_time),
		    end_time   = COALESCE(NULLIF(:end_time, ''), end_time),
		    location   = COALESCE(:location, location),
		    color      = COALESCE(:color, color),
		    updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.exec.NamedExecContext(ctx, query, repo.row(crs))
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.GetCourseByID(ctx, crs.ID)
}

func (repo courseRepository) DeleteCoursesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM course WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}
