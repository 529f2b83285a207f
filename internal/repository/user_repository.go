package repository

import (
	"context"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles login account data access.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UserCodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, user *model.User) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, user_code, name, email, password_hash, role, student_details, faculty_details, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.UserCode, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.StudentDetails, &u.FacultyDetails, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by their unique email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// UserCodeExists reports whether a bulk-import code is already taken.
func (r *userRepository) UserCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_code = $1)`, code).Scan(&exists)
	return exists, err
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (user_code, name, email, password_hash, role, student_details, faculty_details, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		u.UserCode, u.Name, u.Email, u.PasswordHash, u.Role, u.StudentDetails, u.FacultyDetails, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	return mapError(err)
}

// UpdatePassword replaces the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, u *model.User) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		u.PasswordHash, u.UpdatedAt, u.ID,
	))
}
