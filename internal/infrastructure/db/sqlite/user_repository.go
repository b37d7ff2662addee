package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/tagblog/tagblog/internal/core/domain"
)

// UserRepository persists user rows in the user table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user (username, discriminator, password_hash, salt) VALUES (?, ?, ?, ?)`,
		user.Username, user.Discriminator, user.PasswordHash, user.Salt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user id: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, discriminator, password_hash, salt, created FROM user WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByTag(ctx context.Context, username string, discriminator int) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, discriminator, password_hash, salt, created FROM user
		 WHERE username = ? AND discriminator = ?`, username, discriminator)
	return scanUser(row)
}

func (r *UserRepository) FindAllByUsername(ctx context.Context, username string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, discriminator, password_hash, salt, created FROM user
		 WHERE username = ? ORDER BY discriminator`, username)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Discriminator, &u.PasswordHash, &u.Salt, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UsedDiscriminators(ctx context.Context, username string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT discriminator FROM user WHERE username = ?`, username)
	if err != nil {
		return nil, fmt.Errorf("query discriminators: %w", err)
	}
	defer rows.Close()

	var used []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan discriminator: %w", err)
		}
		used = append(used, d)
	}
	return used, rows.Err()
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Discriminator, &u.PasswordHash, &u.Salt, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// isUniqueViolation detects the UNIQUE(username, discriminator) constraint
// firing under a registration race.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
