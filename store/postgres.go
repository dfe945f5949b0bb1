package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"coinbot/database"
	"coinbot/models"
)

// PostgresAccountStore persists accounts in a single table keyed by
// account ID, with cooldown timestamps stored as JSONB. Data survives
// restarts; the daily reset is not armed in this deployment mode.
type PostgresAccountStore struct {
	db *database.DB
}

// NewPostgresAccountStore creates a new Postgres-backed account store.
func NewPostgresAccountStore(db *database.DB) *PostgresAccountStore {
	return &PostgresAccountStore{db: db}
}

// Get retrieves an account, returning a fresh zero account for IDs
// that have no row yet.
func (s *PostgresAccountStore) Get(ctx context.Context, accountID string) (*models.Account, error) {
	query := `
		SELECT balance, cooldowns
		FROM accounts
		WHERE account_id = $1
	`

	var balance int64
	var cooldownsRaw []byte
	err := s.db.Pool.QueryRow(ctx, query, accountID).Scan(&balance, &cooldownsRaw)
	if err == pgx.ErrNoRows {
		return models.NewAccount(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}

	cooldowns := make(map[string]int64)
	if len(cooldownsRaw) > 0 {
		if err := json.Unmarshal(cooldownsRaw, &cooldowns); err != nil {
			return nil, fmt.Errorf("failed to decode cooldowns for account %s: %w", accountID, err)
		}
	}

	return &models.Account{
		Balance:   balance,
		Cooldowns: cooldowns,
	}, nil
}

// Set upserts the account row.
func (s *PostgresAccountStore) Set(ctx context.Context, accountID string, account *models.Account) error {
	cooldownsRaw, err := json.Marshal(account.Cooldowns)
	if err != nil {
		return fmt.Errorf("failed to encode cooldowns for account %s: %w", accountID, err)
	}

	query := `
		INSERT INTO accounts (account_id, balance, cooldowns, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (account_id)
		DO UPDATE SET balance = $2, cooldowns = $3, updated_at = NOW()
	`

	if _, err := s.db.Pool.Exec(ctx, query, accountID, account.Balance, cooldownsRaw); err != nil {
		return fmt.Errorf("failed to save account %s: %w", accountID, err)
	}
	return nil
}

// Reset wipes every account row.
func (s *PostgresAccountStore) Reset(ctx context.Context) error {
	if _, err := s.db.Pool.Exec(ctx, `TRUNCATE accounts`); err != nil {
		return fmt.Errorf("failed to reset accounts: %w", err)
	}
	return nil
}
