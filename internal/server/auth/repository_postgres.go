package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository stores users in Postgres via pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates a repository over the pool.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func (r *PostgresUserRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// Save inserts the user, generating an identifier when absent and
// reading back the defaulted creation timestamp.
func (r *PostgresUserRepository) Save(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, username, email, hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, user.ID, user.Name, user.Username, user.Email, user.Hash)
	return row.Scan(&user.CreatedAt)
}

// FindByLogin matches username or email, case-insensitive.
func (r *PostgresUserRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, username, email, hash, created_at
		FROM users
		WHERE lower(username) = lower($1) OR lower(email) = lower($1)
		LIMIT 1
	`, login)
	return scanUser(row)
}

// FindByID returns the user with the identifier.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, username, email, hash, created_at
		FROM users
		WHERE id = $1
		LIMIT 1
	`, id)
	return scanUser(row)
}

// FindConflict returns a user already holding the username or email.
func (r *PostgresUserRepository) FindConflict(ctx context.Context, username, email string) (*User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, username, email, hash, created_at
		FROM users
		WHERE lower(username) = lower($1) OR lower(email) = lower($2)
		LIMIT 1
	`, username, email)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.Hash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
