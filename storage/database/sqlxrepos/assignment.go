package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/assignment"
)

type assignmentRepository struct {
	exec core.DBExecutor
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(exec core.DBExecutor) *assignmentRepository {
	return &assignmentRepository{exec: exec}
}

type assignmentRow struct {
	ID        string      `db:"id"`
	OwnerID   string      `db:"owner_id"`
	CourseID  null.String `db:"course_id"`
	Title     string      `db:"title"`
	Notes     null.String `db:"notes"`
	DueAt     time.Time   `db:"due_at"`
	Priority  string      `db:"priority"`
	Status    string      `db:"status"`
	CreatedAt null.Time   `db:"created_at"`
	UpdatedAt null.Time   `db:"updated_at"`
}

func (repo assignmentRepository) row(asg assignment.Assignment) assignmentRow {
	return assignmentRow{
		ID:        asg.ID,
		OwnerID:   asg.OwnerID,
		CourseID:  null.NewString(asg.CourseID, asg.CourseID != ""),
		Title:     asg.Title,
		Notes:     null.NewString(asg.Notes, asg.Notes != ""),
		DueAt:     asg.DueAt.UTC(),
		Priority:  string(asg.Priority),
		Status:    string(asg.Status),
		CreatedAt: null.NewTime(asg.CreatedAt.UTC(), !asg.CreatedAt.IsZero()),
		UpdatedAt: null.NewTime(asg.UpdatedAt.UTC(), !asg.UpdatedAt.IsZero()),
	}
}

func (repo assignmentRepository) unrow(row assignmentRow) assignment.Assignment {
	return assignment.Assignment{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		CourseID:  row.CourseID.String,
		Title:     row.Title,
		Notes:     row.Notes.String,
		DueAt:     row.DueAt,
		Priority:  assignment.Priority(row.Priority),
		Status:    assignment.Status(row.Status),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func (repo assignmentRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return assignment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	asg.ID = uuid.New().String()
	query := `
		INSERT INTO assignment (id, owner_id, course_id, title, notes, due_at, priority, status, created_at, updated_at)
		VALUES (:id, :owner_id, :course_id, :title, :notes, :due_at, :priority, :status, :created_at, :updated_at)`
	if _, err := repo.exec.NamedExecContext(ctx, query, repo.row(asg)); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return asg, nil
}

func (repo assignmentRepository) QueryAssignments(ctx context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	query := `SELECT * FROM assignment WHERE true`
	var args []interface{}
	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	if filter.CourseID != "" {
		query += ` AND course_id = ?`
		args = append(args, filter.CourseID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if !filter.DueBefore.IsZero() {
		query += ` AND due_at < ?`
		args = append(args, filter.DueBefore.UTC())
	}
	if !filter.DueAfter.IsZero() {
		query += ` AND due_at > ?`
		args = append(args, filter.DueAfter.UTC())
	}
	query += ` ORDER BY due_at`

	var rows []assignmentRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		asgs = append(asgs, repo.unrow(row))
	}
	return asgs, nil
}

func (repo assignmentRepository) GetAssignmentByID(ctx context.Context, id string) (assignment.Assignment, error) {
	var row assignmentRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(`SELECT * FROM assignment WHERE id = ?`), id); err != nil {
		return assignment.Assignment{}, repo.trapNoRowsErr(err, "getting assignment")
	}
	return repo.unrow(row), nil
}

func (repo assignmentRepository) UpdateAssignment(ctx context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	query := `UPDATE assignment SET updated_at = ?`
	args := []interface{}{time.Now().UTC()}

	set := func(col string, val interface{}) {
		query += `, ` + col + ` = ?`
		args = append(args, val)
	}
	if asg.CourseID != "" {
		set("course_id", asg.CourseID)
	}
	if asg.Title != "" {
		set("title", asg.Title)
	}
	if asg.Notes != "" {
		set("notes", asg.Notes)
	}
	if !asg.DueAt.IsZero() {
		set("due_at", asg.DueAt.UTC())
	}
	if asg.Priority != "" {
		set("priority", string(asg.Priority))
	}
	if asg.Status != "" {
		set("status", string(asg.Status))
	}

	query += ` WHERE id = ?`
	args = append(args, asg.ID)

	res, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return repo.GetAssignmentByID(ctx, asg.ID)
}

func (repo assignmentRepository) DeleteAssignmentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM assignment WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting assignments")
	}
	return nil
}
