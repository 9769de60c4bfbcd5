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
	"github.com/mkabeya/ratiba/core/user"
)

type userRepository struct {
	exec core.DBExecutor
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) *userRepository {
	return &userRepository{exec: exec}
}

type userRow struct {
	ID           string     `db:"id"`
	Name         null.String `db:"name"`
	Username     null.String `db:"username"`
	Email        null.String `db:"email"`
	IsStaff      null.Bool   `db:"is_staff"`
	IsActive     null.Bool   `db:"is_active"`
	PasswordHash null.Bytes  `db:"password_hash"`
	CreatedAt    null.Time   `db:"created_at"`
	UpdatedAt    null.Time   `db:"updated_at"`
	LastLogin    null.Time   `db:"last_login"`
}

func (repo userRepository) row(usr user.User) userRow {
	return userRow{
		ID:           usr.ID,
		Name:         null.NewString(usr.Name, usr.Name != ""),
		Username:     null.NewString(usr.Username, usr.Username != ""),
		Email:        null.NewString(usr.Email, usr.Email != ""),
		IsStaff:      null.BoolFrom(usr.IsStaff),
		IsActive:     null.BoolFromPtr(usr.IsActive),
		PasswordHash: null.BytesFrom(usr.PasswordHash),
		CreatedAt:    null.NewTime(usr.CreatedAt.UTC(), !usr.CreatedAt.IsZero()),
		UpdatedAt:    null.NewTime(usr.UpdatedAt.UTC(), !usr.UpdatedAt.IsZero()),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (repo userRepository) unrow(row userRow) user.User {
	return user.User{
		ID:           row.ID,
		Name:         row.Name.String,
		Username:     row.Username.String,
		Email:        row.Email.String,
		IsStaff:      row.IsStaff.Bool,
		IsActive:     row.IsActive.Ptr(),
		PasswordHash: row.PasswordHash.Bytes,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
		LastLogin:    row.LastLogin.Time,
	}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	query := `SELECT username, email FROM "user" WHERE (username = ? OR email = ?)`
	args := []interface{}{username, email}

	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		inQuery, inArgs, err := sqlx.In(`id NOT IN (?)`, ids)
		if err != nil {
			return errors.Wrap(err, "building exclusion clause")
		}
		query += " AND " + inQuery
		args = append(args, inArgs...)
	}

	var rows []userRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	for _, row := range rows {
		if username != "" && row.Username.String == username {
			return user.ErrUsernameExists
		}
		if email != "" && row.Email.String == email {
			return user.ErrEmailExists
		}
	}
	if len(rows) > 0 {
		return user.ErrUserExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	row := repo.row(usr)
	query := `
		INSERT INTO "user" (id, name, username, email, is_staff, is_active, password_hash, created_at, updated_at, last_login)
		VALUES (:id, :name, :username, :email, :is_staff, :is_active, :password_hash, :created_at, :updated_at, :last_login)`
	if _, err := repo.exec.NamedExecContext(ctx, query, row); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	query := `SELECT * FROM "user" ORDER BY created_at`
	if err := repo.exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, repo.unrow(row))
	}
	return users, nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	query := `SELECT * FROM "user" WHERE true`
	var args []interface{}
	if filter.ID != "" {
		query += ` AND id = ?`
		args = append(args, filter.ID)
	}
	if filter.Username != "" {
		query += ` AND username = ?`
		args = append(args, filter.Username)
	}
	if filter.Email != "" {
		query += ` AND email = ?`
		args = append(args, filter.Email)
	}
	if filter.UsernameOrEmail != "" {
		query += ` AND (username = ? OR email = ?)`
		args = append(args, filter.UsernameOrEmail, filter.UsernameOrEmail)
	}
	if len(args) == 0 {
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(query), args...); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user")
	}
	return repo.unrow(row), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	query := `UPDATE "user" SET updated_at = ?`
	args := []interface{}{time.Now().UTC()}

	set := func(col string, val interface{}) {
		query += `, ` + col + ` = ?`
		args = append(args, val)
	}
	if usr.Name != "" {
		set("name", usr.Name)
	}
	if usr.Username != "" {
		set("username", usr.Username)
	}
	if usr.Email != "" {
		set("email", usr.Email)
	}
	if len(usr.PasswordHash) > 0 {
		set("password_hash", usr.PasswordHash)
	}
	if !usr.LastLogin.IsZero() {
		set("last_login", usr.LastLogin.UTC())
	}
	if usr.IsStaff {
		// promotion only; the flag cannot be revoked through a partial update
		set("is_staff", true)
	}
	if isActive != nil {
		set("is_active", *isActive)
	}

	query += ` WHERE id = ?`
	args = append(args, usr.ID)

	res, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUser(ctx, user.GetFilter{ID: usr.ID})
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
