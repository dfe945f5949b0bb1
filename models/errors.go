package models

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors: reported synchronously, no state mutated, not retried.
var (
	ErrSelfTarget    = errors.New("cannot target yourself")
	ErrBotTarget     = errors.New("cannot target a bot")
	ErrInvalidAmount = errors.New("amount must be at least 1")
	ErrNoTargets     = errors.New("no target accounts specified")
	ErrInvalidColor  = errors.New("color must be a 6-digit hex code")
)

// CooldownError reports that an action is still cooling down, carrying
// the concrete remaining wait for presentation.
type CooldownError struct {
	Action    Action
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("action %s on cooldown for %s", e.Action, e.Remaining)
}

// InsufficientBalanceError reports a precondition failure with the
// concrete shortfall. Operations that reject (give, role purchase)
// return this instead of clamping.
type InsufficientBalanceError struct {
	Have int64
	Need int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d, need %d", e.Have, e.Need)
}

// TargetTooPoorError reports that a robbery target is below the minimum
// balance threshold.
type TargetTooPoorError struct {
	Balance   int64
	Threshold int64
}

func (e *TargetTooPoorError) Error() string {
	return fmt.Sprintf("target balance %d below robbery threshold %d", e.Balance, e.Threshold)
}
