package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/solara/venue-reservation/internal/model"
	"github.com/solara/venue-reservation/internal/utils"
)

// UserRepo provides access to the `users` table.  Emails are
// normalized to lower case on write and lookup.
type UserRepo struct{ db *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create hashes the password and inserts a new user, returning its ID.
// A duplicate email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.  It returns
// (nil, nil) when no such user exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=? LIMIT 1", email)
}

// FindByID fetches a user by primary key.  It returns (nil, nil) when
// no such user exists; it joins the transaction attached to ctx, so
// the admission service sees a consistent identity snapshot.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.scanOne(ctx, "SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := conn(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
