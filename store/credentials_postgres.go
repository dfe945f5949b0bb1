package store

import (
	"context"
	"fmt"

	"coinbot/database"
	"coinbot/models"
)

// PostgresCredentialStore persists captured OAuth2 tokens.
type PostgresCredentialStore struct {
	db *database.DB
}

// NewPostgresCredentialStore creates a new Postgres-backed credential store.
func NewPostgresCredentialStore(db *database.DB) *PostgresCredentialStore {
	return &PostgresCredentialStore{db: db}
}

func (s *PostgresCredentialStore) Put(ctx context.Context, cred *models.Credential) error {
	query := `
		INSERT INTO credentials (user_id, access_token, token_type, captured_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET access_token = $2, token_type = $3, captured_at = $4
	`

	if _, err := s.db.Pool.Exec(ctx, query, cred.UserID, cred.AccessToken, cred.TokenType, cred.CapturedAt); err != nil {
		return fmt.Errorf("failed to save credential for user %s: %w", cred.UserID, err)
	}
	return nil
}

func (s *PostgresCredentialStore) All(ctx context.Context) ([]*models.Credential, error) {
	query := `
		SELECT user_id, access_token, token_type, captured_at
		FROM credentials
		ORDER BY captured_at
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	var creds []*models.Credential
	for rows.Next() {
		var cred models.Credential
		if err := rows.Scan(&cred.UserID, &cred.AccessToken, &cred.TokenType, &cred.CapturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, &cred)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return creds, nil
}

func (s *PostgresCredentialStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count credentials: %w", err)
	}
	return count, nil
}
