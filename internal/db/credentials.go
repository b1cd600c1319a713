package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentionwatch/internal/models"
)

// UpsertCredential stores or refreshes the bearer token for a (user, provider)
// pair. Called from the OAuth callback when a user links their account.
func (d *DB) UpsertCredential(ctx context.Context, cred *models.Credential) error {
	query := `
		INSERT INTO credentials (user_id, provider, access_token, refresh_token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, provider) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		cred.UserID,
		cred.Provider,
		cred.AccessToken,
		cred.RefreshToken,
		cred.ExpiresAt,
	).Scan(&cred.UpdatedAt)
}

// GetCredential retrieves the stored bearer token for a (user, provider) pair.
// Returns ErrCredentialNotFound if the user never linked an account.
func (d *DB) GetCredential(ctx context.Context, userID uuid.UUID, provider string) (*models.Credential, error) {
	query := `
		SELECT user_id, provider, access_token, refresh_token, expires_at, updated_at
		FROM credentials WHERE user_id = $1 AND provider = $2
	`

	var cred models.Credential
	err := d.Pool.QueryRow(ctx, query, userID, provider).Scan(
		&cred.UserID,
		&cred.Provider,
		&cred.AccessToken,
		&cred.RefreshToken,
		&cred.ExpiresAt,
		&cred.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// DeleteCredential removes a stored credential, unlinking the account.
func (d *DB) DeleteCredential(ctx context.Context, userID uuid.UUID, provider string) error {
	result, err := d.Pool.Exec(ctx,
		`DELETE FROM credentials WHERE user_id = $1 AND provider = $2`, userID, provider)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCredentialNotFound
	}
	return nil
}
