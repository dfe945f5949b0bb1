package models

import (
	"time"
)

// Action is a named, independently cooled-down capability.
type Action string

const (
	ActionWork        Action = "work"
	ActionRob         Action = "rob"
	ActionTicket      Action = "ticket"
	ActionArashi      Action = "arashi"
	ActionCallExecute Action = "call_execute"
)

// CooldownDurations maps each action to its fixed cooldown length.
// Durations are determined solely by the action name and are not
// per-user or per-guild configurable.
var CooldownDurations = map[Action]time.Duration{
	ActionWork:        time.Hour,
	ActionRob:         30 * time.Minute,
	ActionTicket:      time.Hour,
	ActionArashi:      time.Hour,
	ActionCallExecute: time.Hour,
}

// Account is the per-user ledger record: a coin balance plus the
// last-used timestamp of each cooled-down action. Accounts are created
// lazily on first read and never explicitly deleted.
type Account struct {
	Balance   int64            `json:"balance" db:"balance"`
	Cooldowns map[string]int64 `json:"cooldowns" db:"cooldowns"` // action name -> unix millis of last use
}

// NewAccount returns a fresh account with zero balance and no cooldowns.
func NewAccount() *Account {
	return &Account{
		Balance:   0,
		Cooldowns: make(map[string]int64),
	}
}

// Clone returns a deep copy of the account so callers can mutate it
// without aliasing store-held state.
func (a *Account) Clone() *Account {
	cooldowns := make(map[string]int64, len(a.Cooldowns))
	for k, v := range a.Cooldowns {
		cooldowns[k] = v
	}
	return &Account{
		Balance:   a.Balance,
		Cooldowns: cooldowns,
	}
}
