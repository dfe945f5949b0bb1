package service

import (
	"context"
	"time"

	"coinbot/models"
)

// AccountStore defines the interface for ledger persistence. Both the
// in-memory and Postgres backends implement it; the economy operations
// never know which one they are talking to.
type AccountStore interface {
	// Get retrieves the account for the given ID, returning a fresh
	// zero-balance account for IDs that have never been seen.
	Get(ctx context.Context, accountID string) (*models.Account, error)

	// Set unconditionally overwrites the stored account. The store does
	// not clamp balances; non-negativity is the caller's policy.
	Set(ctx context.Context, accountID string, account *models.Account) error

	// Reset wipes every account. Fired by the scheduled daily reset.
	Reset(ctx context.Context) error
}

// CredentialStore defines the interface for captured OAuth2 tokens.
// It is entirely outside the ledger and is never wiped by the reset.
type CredentialStore interface {
	// Put stores or replaces the credential for a user.
	Put(ctx context.Context, cred *models.Credential) error

	// All returns every stored credential.
	All(ctx context.Context) ([]*models.Credential, error)

	// Count returns the number of stored credentials.
	Count(ctx context.Context) (int, error)
}

// RoleCreator is the external collaborator that creates a guild role
// and assigns it to a member. Role purchase deducts coins only after
// this succeeds.
type RoleCreator interface {
	CreateAndAssignRole(ctx context.Context, guildID, userID, name, color string) error
}

// EconomyService defines the ledger's transactional game operations.
type EconomyService interface {
	// Work pays out a random amount and starts the work cooldown.
	Work(ctx context.Context, accountID string) (*models.WorkResult, error)

	// Rob attempts to steal a cut of the target's balance. The rob
	// cooldown is consumed once all preconditions pass, regardless of
	// whether the coin flip succeeds.
	Rob(ctx context.Context, attackerID, targetID string, targetIsBot bool) (*models.RobResult, error)

	// Give transfers amount from sender to receiver. Insufficient funds
	// reject the transfer outright; nothing is clamped.
	Give(ctx context.Context, senderID, receiverID string, receiverIsBot bool, amount int64) (*models.GiveResult, error)

	// AdminAdjust adds or removes amount for each target account.
	// Removal clamps at zero. Privilege checking is the caller's job.
	AdminAdjust(ctx context.Context, targetIDs []string, amount int64, remove bool) (*models.AdjustResult, error)

	// PurchaseRole buys a custom role through the RoleCreator
	// collaborator, deducting the cost only if role creation succeeds.
	PurchaseRole(ctx context.Context, guildID, accountID, name, color string) (*models.PurchaseResult, error)

	// Balance returns the current balance for an account.
	Balance(ctx context.Context, accountID string) (int64, error)

	// ActionRemaining reports how long until the action is usable again;
	// zero means usable now.
	ActionRemaining(ctx context.Context, accountID string, action models.Action) (time.Duration, error)

	// MarkActionUsed records a successful use of the action. Callers
	// mark only after the action's side effect actually happened.
	MarkActionUsed(ctx context.Context, accountID string, action models.Action) error
}
