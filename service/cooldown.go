package service

import (
	"time"

	"coinbot/models"
)

// CooldownRemaining returns how long until the action is usable again
// for the given account. Zero means usable now: either the action has
// never been used or its full duration has elapsed. The clock is
// injected so callers stay deterministic.
func CooldownRemaining(account *models.Account, action models.Action, now time.Time) time.Duration {
	lastMillis, ok := account.Cooldowns[string(action)]
	if !ok {
		return 0
	}

	duration := models.CooldownDurations[action]
	elapsed := now.Sub(time.UnixMilli(lastMillis))
	if elapsed >= duration {
		return 0
	}
	return duration - elapsed
}

// MarkCooldown records now as the last-used timestamp for the action,
// overwriting any prior value.
func MarkCooldown(account *models.Account, action models.Action, now time.Time) {
	if account.Cooldowns == nil {
		account.Cooldowns = make(map[string]int64)
	}
	account.Cooldowns[string(action)] = now.UnixMilli()
}
