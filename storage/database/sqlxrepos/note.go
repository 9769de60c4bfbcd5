package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/note"
)

type noteRepository struct {
	exec core.DBExecutor
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(exec core.DBExecutor) *noteRepository {
	return &noteRepository{exec: exec}
}

type noteRow struct {
	ID          string      `db:"id"`
	OwnerID     string      `db:"owner_id"`
	Title       null.String `db:"title"`
	Content     null.String `db:"content"`
	Attachments []byte      `db:"attachments"`
	Summary     null.String `db:"summary"`
	CreatedAt   null.Time   `db:"created_at"`
	UpdatedAt   null.Time   `db:"updated_at"`
}

func (repo noteRepository) row(nt note.Note) (noteRow, error) {
	atts, err := json.Marshal(nt.Attachments)
	if err != nil {
		return noteRow{}, errors.Wrap(err, "encoding attachments")
	}
	return noteRow{
		ID:          nt.ID,
		OwnerID:     nt.OwnerID,
		Title:       null.NewString(nt.Title, nt.Title != ""),
		Content:     null.NewString(nt.Content, nt.Content != ""),
		Attachments: atts,
		Summary:     null.NewString(nt.Summary, nt.Summary != ""),
		CreatedAt:   null.NewTime(nt.CreatedAt.UTC(), !nt.CreatedAt.IsZero()),
		UpdatedAt:   null.NewTime(nt.UpdatedAt.UTC(), !nt.UpdatedAt.IsZero()),
	}, nil
}

func (repo noteRepository) unrow(row noteRow) (note.Note, error) {
	var atts []note.Attachment
	if len(row.Attachments) > 0 {
		if err := json.Unmarshal(row.Attachments, &atts); err != nil {
			return note.Note{}, errors.Wrap(err, "decoding attachments")
		}
	}
	return note.Note{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Title:       row.Title.String,
		Content:     row.Content.String,
		Attachments: atts,
		Summary:     row.Summary.String,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}, nil
}

func (repo noteRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return note.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo noteRepository) CreateNote(ctx context.Context, nt note.Note) (note.Note, error) {
	nt.ID = uuid.New().String()
	row, err := repo.row(nt)
	if err != nil {
		return note.Note{}, err
	}
	query := `
		INSERT INTO note (id, owner_id, title, content, attachments, summary, created_at, updated_at)
		VALUES (:id, :owner_id, :title, :content, :attachments, :summary, :created_at, :updated_at)`
	if _, err := repo.exec.NamedExecContext(ctx, query, row); err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return nt, nil
}

func (repo noteRepository) QueryNotesByOwner(ctx context.Context, ownerID string) ([]note.Note, error) {
	query := `SELECT * FROM note WHERE owner_id = ? ORDER BY updated_at DESC`
	var rows []noteRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(query), ownerID); err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	notes := make([]note.Note, 0, len(rows))
	for _, row := range rows {
		nt, err := repo.unrow(row)
		if err != nil {
			return nil, err
		}
		notes = append(notes, nt)
	}
	return notes, nil
}

func (repo noteRepository) GetNoteByID(ctx context.Context, id string) (note.Note, error) {
	var row noteRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(`SELECT * FROM note WHERE id = ?`), id); err != nil {
		return note.Note{}, repo.trapNoRowsErr(err, "getting note")
	}
	return repo.unrow(row)
}

func (repo noteRepository) UpdateNote(ctx context.Context, nt note.Note) (note.Note, error) {
	query := `UPDATE note SET updated_at = ?`
	args := []interface{}{time.Now().UTC()}

	set := func(col string, val interface{}) {
		query += `, ` + col + ` = ?`
		args = append(args, val)
	}
	if nt.Title != "" {
		set("title", nt.Title)
	}
	if nt.Content != "" {
		set("content", nt.Content)
	}
	if nt.Attachments != nil {
		atts, err := json.Marshal(nt.Attachments)
		if err != nil {
			return note.Note{}, errors.Wrap(err, "encoding attachments")
		}
		set("attachments", atts)
	}

	query += ` WHERE id = ?`
	args = append(args, nt.ID)

	res, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "updating note")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return note.Note{}, note.ErrNotFound
	}
	return repo.GetNoteByID(ctx, nt.ID)
}

func (repo noteRepository) SaveNoteSummary(ctx context.Context, id, summary string) error {
	query := `UPDATE note SET summary = ? WHERE id = ?`
	res, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), summary, id)
	if err != nil {
		return errors.Wrap(err, "saving note summary")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return note.ErrNotFound
	}
	return nil
}

func (repo noteRepository) DeleteNotesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM note WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting notes")
	}
	return nil
}
