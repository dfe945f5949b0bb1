package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coinbot/models"
)

func TestCooldownRemaining_NeverUsed(t *testing.T) {
	account := models.NewAccount()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), CooldownRemaining(account, models.ActionWork, now))
}

func TestCooldownRemaining_WithinWindow(t *testing.T) {
	account := models.NewAccount()
	used := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	MarkCooldown(account, models.ActionWork, used)

	remaining := CooldownRemaining(account, models.ActionWork, used.Add(time.Minute))
	assert.Equal(t, 59*time.Minute, remaining)
}

func TestCooldownRemaining_Elapsed(t *testing.T) {
	account := models.NewAccount()
	used := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	MarkCooldown(account, models.ActionWork, used)

	assert.Equal(t, time.Duration(0), CooldownRemaining(account, models.ActionWork, used.Add(time.Hour)))
	assert.Equal(t, time.Duration(0), CooldownRemaining(account, models.ActionWork, used.Add(2*time.Hour)))
}

func TestCooldownRemaining_ActionsAreIndependent(t *testing.T) {
	account := models.NewAccount()
	used := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	MarkCooldown(account, models.ActionWork, used)

	assert.Equal(t, time.Duration(0), CooldownRemaining(account, models.ActionRob, used.Add(time.Second)))
	assert.Equal(t, time.Duration(0), CooldownRemaining(account, models.ActionTicket, used.Add(time.Second)))
}

func TestCooldownRemaining_RobWindow(t *testing.T) {
	account := models.NewAccount()
	used := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	MarkCooldown(account, models.ActionRob, used)

	remaining := CooldownRemaining(account, models.ActionRob, used.Add(10*time.Minute))
	assert.Equal(t, 20*time.Minute, remaining)
}

func TestMarkCooldown_OverwritesPriorUse(t *testing.T) {
	account := models.NewAccount()
	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	MarkCooldown(account, models.ActionWork, first)
	MarkCooldown(account, models.ActionWork, second)

	remaining := CooldownRemaining(account, models.ActionWork, second.Add(time.Minute))
	assert.Equal(t, 59*time.Minute, remaining)
}

func TestMarkCooldown_NilMap(t *testing.T) {
	account := &models.Account{Balance: 50}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	MarkCooldown(account, models.ActionArashi, now)

	assert.Equal(t, now.UnixMilli(), account.Cooldowns[string(models.ActionArashi)])
}
