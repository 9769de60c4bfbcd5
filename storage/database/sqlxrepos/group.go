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
	"github.com/mkabeya/ratiba/core/group"
)

type groupRepository struct {
	exec core.DBExecutor
}

var _ group.Repository = (*groupRepository)(nil) // interface compliance check

func NewGroupRepository(exec core.DBExecutor) *groupRepository {
	return &groupRepository{exec: exec}
}

type groupRow struct {
	ID        string      `db:"id"`
	Name      string      `db:"name"`
	Subject   null.String `db:"subject"`
	OwnerID   string      `db:"owner_id"`
	CreatedAt null.Time   `db:"created_at"`
}

type messageRow struct {
	ID         string      `db:"id"`
	GroupID    string      `db:"group_id"`
	AuthorID   string      `db:"author_id"`
	AuthorName null.String `db:"author_name"`
	Content    string      `db:"content"`
	CreatedAt  null.Time   `db:"created_at"`
}

func (repo groupRepository) unrowGroup(row groupRow) group.Group {
	return group.Group{
		ID:        row.ID,
		Name:      row.Name,
		Subject:   row.Subject.String,
		OwnerID:   row.OwnerID,
		CreatedAt: row.CreatedAt.Time,
	}
}

func (repo groupRepository) unrowMessage(row messageRow) group.Message {
	return group.Message{
		ID:         row.ID,
		GroupID:    row.GroupID,
		AuthorID:   row.AuthorID,
		AuthorName: row.AuthorName.String,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt.Time,
	}
}

func (repo groupRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return group.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo groupRepository) CreateGroup(ctx context.Context, grp group.Group) (group.Group, error) {
	grp.ID = uuid.New().String()
	row := groupRow{
		ID:        grp.ID,
		Name:      grp.Name,
		Subject:   null.NewString(grp.Subject, grp.Subject != ""),
		OwnerID:   grp.OwnerID,
		CreatedAt: null.NewTime(grp.CreatedAt.UTC(), !grp.CreatedAt.IsZero()),
	}
	query := `
		INSERT INTO study_group (id, name, subject, owner_id, created_at)
		VALUES (:id, :name, :subject, :owner_id, :created_at)`
	if _, err := repo.exec.NamedExecContext(ctx, query, row); err != nil {
		return group.Group{}, errors.Wrap(err, "inserting group")
	}
	return grp, nil
}

func (repo groupRepository) GetGroupByID(ctx context.Context, id string) (group.Group, error) {
	var row groupRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(`SELECT * FROM study_group WHERE id = ?`), id); err != nil {
		return group.Group{}, repo.trapNoRowsErr(err, "getting group")
	}
	return repo.unrowGroup(row), nil
}

func (repo groupRepository) QueryGroupsByMember(ctx context.Context, userID string) ([]group.Group, error) {
	query := `
		SELECT g.*
		FROM study_group g
		JOIN study_group_member m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.created_at`
	var rows []groupRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(query), userID); err != nil {
		return nil, errors.Wrap(err, "querying groups")
	}
	groups := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, repo.unrowGroup(row))
	}
	return groups, nil
}

func (repo groupRepository) AddGroupMember(ctx context.Context, groupID, userID string) error {
	query := `
		INSERT INTO study_group_member (group_id, user_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING`
	if _, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), groupID, userID); err != nil {
		return errors.Wrap(err, "adding group member")
	}
	return nil
}

func (repo groupRepository) IsGroupMember(ctx context.Context, groupID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM study_group_member WHERE group_id = ? AND user_id = ?)`
	if err := repo.exec.GetContext(ctx, &exists, repo.exec.Rebind(query), groupID, userID); err != nil {
		return false, errors.Wrap(err, "checking group membership")
	}
	return exists, nil
}

func (repo groupRepository) DeleteGroupsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM study_group WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting groups")
	}
	return nil
}

func (repo groupRepository) CreateMessage(ctx context.Context, msg group.Message) (group.Message, error) {
	msg.ID = uuid.New().String()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	row := messageRow{
		ID:         msg.ID,
		GroupID:    msg.GroupID,
		AuthorID:   msg.AuthorID,
		AuthorName: null.NewString(msg.AuthorName, msg.AuthorName != ""),
		Content:    msg.Content,
		CreatedAt:  null.TimeFrom(msg.CreatedAt.UTC()),
	}
	query := `
		INSERT INTO group_message (id, group_id, author_id, author_name, content, created_at)
		VALUES (:id, :group_id, :author_id, :author_name, :content, :created_at)`
	if _, err := repo.exec.NamedExecContext(ctx, query, row); err != nil {
		return group.Message{}, errors.Wrap(err, "inserting message")
	}
	return msg, nil
}

func (repo groupRepository) QueryMessages(ctx context.Context, groupID string, limit int) ([]group.Message, error) {
	query := `SELECT * FROM group_message WHERE group_id = ? ORDER BY created_at DESC LIMIT ?`
	var rows []messageRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(query), groupID, limit); err != nil {
		return nil, errors.Wrap(err, "querying messages")
	}
	msgs := make([]group.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, repo.unrowMessage(row))
	}
	return msgs, nil
}
