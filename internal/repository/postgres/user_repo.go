package postgres

import (
	"context"
	"errors"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, auth0_id, email, name, picture_url, created_at, updated_at, last_seen_at`

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByAuth0ID retrieves a user by Auth0 ID.
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE auth0_id = $1`, auth0ID)
	return scanUser(row)
}

// CreateOrGetByAuth0ID creates the user on first login and refreshes
// last_seen_at on subsequent ones.
func (r *UserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (auth0_id, email, name, picture_url, last_seen_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (auth0_id) DO UPDATE
		SET last_seen_at = now(), updated_at = now()
		RETURNING `+userColumns,
		auth0ID, email, name, pictureURL,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Auth0ID, &u.Email, &u.Name, &u.PictureURL,
		&u.CreatedAt, &u.UpdatedAt, &u.LastSeenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
