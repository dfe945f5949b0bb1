package models

import (
	"time"
)

// WorkResult is the outcome of a successful work shift.
type WorkResult struct {
	Earned     int64
	NewBalance int64
}

// RobResult is the outcome of a robbery attempt that passed all
// preconditions. Success and failure both consume the cooldown.
type RobResult struct {
	Success         bool
	Stolen          int64 // amount transferred on success
	Fine            int64 // amount forfeited on failure
	AttackerBalance int64
	TargetBalance   int64
}

// GiveResult is the outcome of a completed transfer.
type GiveResult struct {
	Amount          int64
	SenderBalance   int64
	ReceiverBalance int64
}

// AdjustResult reports how many accounts an admin adjustment touched.
type AdjustResult struct {
	Amount   int64
	Removed  bool
	Affected int
}

// PurchaseResult is the outcome of a successful role purchase.
type PurchaseResult struct {
	RoleName   string
	Cost       int64
	NewBalance int64
}

// Credential is a captured OAuth2 access token for one user. It lives
// outside the ledger: the scheduled reset never touches it.
type Credential struct {
	UserID      string    `db:"user_id"`
	AccessToken string    `db:"access_token"`
	TokenType   string    `db:"token_type"`
	CapturedAt  time.Time `db:"captured_at"`
}
