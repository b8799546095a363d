package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/studysphere/studysphere-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB, dialect Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

// Create inserts a new user. The caller assigns the ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := rebind(r.dialect, `INSERT INTO users (id, first_name, last_name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	return withConn(ctx, r.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query,
			user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.CreatedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := rebind(r.dialect, `SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users WHERE email = ?`)
	return r.getOne(ctx, query, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := rebind(r.dialect, `SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users WHERE id = ?`)
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, arg).Scan(
			&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &user.CreatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
