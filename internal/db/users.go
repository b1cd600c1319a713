package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentionwatch/internal/models"
)

const userColumns = `id, sub, username, display_name, email, picture, plan_type, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Sub,
		&user.Username,
		&user.DisplayName,
		&user.Email,
		&user.Picture,
		&user.PlanType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUser creates or updates a user based on their OIDC subject.
func (d *DB) UpsertUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (sub, username, display_name, email, picture, plan_type)
		VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, ''), 'free'))
		ON CONFLICT (sub) DO UPDATE SET
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			picture = EXCLUDED.picture,
			updated_at = NOW()
		RETURNING id, plan_type, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		user.Sub,
		user.Username,
		user.DisplayName,
		user.Email,
		user.Picture,
		user.PlanType,
	).Scan(&user.ID, &user.PlanType, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserBySub retrieves a user by their OIDC subject identifier.
func (d *DB) GetUserBySub(ctx context.Context, sub string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE sub = $1`
	return scanUser(d.Pool.QueryRow(ctx, query, sub))
}

// GetUserByID retrieves a user by their UUID.
func (d *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(d.Pool.QueryRow(ctx, query, id))
}

// GetUserCount returns the total number of users.
func (d *DB) GetUserCount(ctx context.Context) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// TrackableUser pairs a user with their non-empty keyword set for batch runs.
type TrackableUser struct {
	ID       uuid.UUID
	Username string
	Keywords []string
}

// GetTrackableUsers returns every user with at least one tracked keyword.
func (d *DB) GetTrackableUsers(ctx context.Context) ([]TrackableUser, error) {
	query := `
		SELECT u.id, u.username, s.keywords
		FROM users u
		JOIN settings s ON s.user_id = u.id
		WHERE cardinality(s.keywords) > 0
		ORDER BY u.created_at ASC
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []TrackableUser
	for rows.Next() {
		var u TrackableUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Keywords); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
