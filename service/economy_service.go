package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"coinbot/models"
)

// Canonical game constants. The original deployments disagreed on some
// of these across revisions; these are the fixed values this bot runs.
const (
	WorkPayoutMin = 100
	WorkPayoutMax = 500

	RobSuccessChance    = 0.5
	RobMinTargetBalance = 100
	RobStealMinRate     = 0.10
	RobStealMaxRate     = 0.30
	RobFineCap          = 100

	RoleCost = 10000
)

var colorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

type economyService struct {
	store AccountStore
	roles RoleCreator
	locks *accountLocks

	now func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEconomyService creates a new economy service backed by the given
// account store and role collaborator.
func NewEconomyService(store AccountStore, roles RoleCreator) EconomyService {
	return &economyService{
		store: store,
		roles: roles,
		locks: newAccountLocks(),
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// loadAccount reads an account, failing open to a fresh zero-balance
// account when the backing store is unreachable. The failure is logged;
// the invocation proceeds with new-account semantics.
func (s *economyService) loadAccount(ctx context.Context, accountID string) *models.Account {
	account, err := s.store.Get(ctx, accountID)
	if err != nil {
		log.WithError(err).WithField("accountID", accountID).Warn("Account read failed, treating as new account")
		return models.NewAccount()
	}
	return account
}

func (s *economyService) randFloat() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *economyService) randInt63n(n int64) int64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Int63n(n)
}

func (s *economyService) Work(ctx context.Context, accountID string) (*models.WorkResult, error) {
	unlock := s.locks.Lock(accountID)
	defer unlock()

	now := s.now()
	account := s.loadAccount(ctx, accountID)

	if remaining := CooldownRemaining(account, models.ActionWork, now); remaining > 0 {
		return nil, &models.CooldownError{Action: models.ActionWork, Remaining: remaining}
	}

	earned := WorkPayoutMin + s.randInt63n(WorkPayoutMax-WorkPayoutMin+1)
	account.Balance += earned
	MarkCooldown(account, models.ActionWork, now)

	if err := s.store.Set(ctx, accountID, account); err != nil {
		return nil, fmt.Errorf("failed to save account %s: %w", accountID, err)
	}

	return &models.WorkResult{
		Earned:     earned,
		NewBalance: account.Balance,
	}, nil
}

func (s *economyService) Rob(ctx context.Context, attackerID, targetID string, targetIsBot bool) (*models.RobResult, error) {
	if attackerID == targetID {
		return nil, models.ErrSelfTarget
	}
	if targetIsBot {
		return nil, models.ErrBotTarget
	}

	unlock := s.locks.LockPair(attackerID, targetID)
	defer unlock()

	now := s.now()
	attacker := s.loadAccount(ctx, attackerID)
	target := s.loadAccount(ctx, targetID)

	if remaining := CooldownRemaining(attacker, models.ActionRob, now); remaining > 0 {
		return nil, &models.CooldownError{Action: models.ActionRob, Remaining: remaining}
	}
	if target.Balance < RobMinTargetBalance {
		return nil, &models.TargetTooPoorError{Balance: target.Balance, Threshold: RobMinTargetBalance}
	}

	// All preconditions passed: the attempt consumes the cooldown
	// whether or not the coin flip goes the attacker's way.
	MarkCooldown(attacker, models.ActionRob, now)

	if s.randFloat() >= RobSuccessChance {
		fine := int64(RobFineCap)
		if attacker.Balance < fine {
			fine = attacker.Balance
		}
		attacker.Balance -= fine

		if err := s.store.Set(ctx, attackerID, attacker); err != nil {
			return nil, fmt.Errorf("failed to save attacker %s: %w", attackerID, err)
		}

		return &models.RobResult{
			Success:         false,
			Fine:            fine,
			AttackerBalance: attacker.Balance,
			TargetBalance:   target.Balance,
		}, nil
	}

	rate := RobStealMinRate + s.randFloat()*(RobStealMaxRate-RobStealMinRate)
	stolen := int64(float64(target.Balance) * rate)

	attacker.Balance += stolen
	target.Balance -= stolen

	if err := s.store.Set(ctx, attackerID, attacker); err != nil {
		return nil, fmt.Errorf("failed to save attacker %s: %w", attackerID, err)
	}
	if err := s.store.Set(ctx, targetID, target); err != nil {
		return nil, fmt.Errorf("failed to save target %s: %w", targetID, err)
	}

	return &models.RobResult{
		Success:         true,
		Stolen:          stolen,
		AttackerBalance: attacker.Balance,
		TargetBalance:   target.Balance,
	}, nil
}

func (s *economyService) Give(ctx context.Context, senderID, receiverID string, receiverIsBot bool, amount int64) (*models.GiveResult, error) {
	if senderID == receiverID {
		return nil, models.ErrSelfTarget
	}
	if receiverIsBot {
		return nil, models.ErrBotTarget
	}
	if amount < 1 {
		return nil, models.ErrInvalidAmount
	}

	unlock := s.locks.LockPair(senderID, receiverID)
	defer unlock()

	sender := s.loadAccount(ctx, senderID)
	if sender.Balance < amount {
		return nil, &models.InsufficientBalanceError{Have: sender.Balance, Need: amount}
	}

	receiver := s.loadAccount(ctx, receiverID)

	sender.Balance -= amount
	receiver.Balance += amount

	if err := s.store.Set(ctx, senderID, sender); err != nil {
		return nil, fmt.Errorf("failed to save sender %s: %w", senderID, err)
	}
	if err := s.store.Set(ctx, receiverID, receiver); err != nil {
		return nil, fmt.Errorf("failed to save receiver %s: %w", receiverID, err)
	}

	return &models.GiveResult{
		Amount:          amount,
		SenderBalance:   sender.Balance,
		ReceiverBalance: receiver.Balance,
	}, nil
}

func (s *economyService) AdminAdjust(ctx context.Context, targetIDs []string, amount int64, remove bool) (*models.AdjustResult, error) {
	if amount < 1 {
		return nil, models.ErrInvalidAmount
	}

	// De-duplicate while preserving order: a user matched both directly
	// and through a role is adjusted once.
	seen := make(map[string]bool, len(targetIDs))
	ids := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, models.ErrNoTargets
	}

	unlock := s.locks.LockAll(ids)
	defer unlock()

	for _, id := range ids {
		account := s.loadAccount(ctx, id)
		if remove {
			account.Balance -= amount
			if account.Balance < 0 {
				account.Balance = 0
			}
		} else {
			account.Balance += amount
		}
		if err := s.store.Set(ctx, id, account); err != nil {
			return nil, fmt.Errorf("failed to save account %s: %w", id, err)
		}
	}

	return &models.AdjustResult{
		Amount:   amount,
		Removed:  remove,
		Affected: len(ids),
	}, nil
}

func (s *economyService) PurchaseRole(ctx context.Context, guildID, accountID, name, color string) (*models.PurchaseResult, error) {
	if color != "" {
		if !colorPattern.MatchString(color) {
			return nil, models.ErrInvalidColor
		}
		color = strings.TrimPrefix(color, "#")
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	account := s.loadAccount(ctx, accountID)
	if account.Balance < RoleCost {
		return nil, &models.InsufficientBalanceError{Have: account.Balance, Need: RoleCost}
	}

	// Create and assign the role before touching the balance: a failed
	// role creation must leave the ledger unchanged.
	if err := s.roles.CreateAndAssignRole(ctx, guildID, accountID, name, color); err != nil {
		return nil, fmt.Errorf("role creation failed: %w", err)
	}

	account.Balance -= RoleCost
	if err := s.store.Set(ctx, accountID, account); err != nil {
		return nil, fmt.Errorf("failed to save account %s: %w", accountID, err)
	}

	return &models.PurchaseResult{
		RoleName:   name,
		Cost:       RoleCost,
		NewBalance: account.Balance,
	}, nil
}

func (s *economyService) Balance(ctx context.Context, accountID string) (int64, error) {
	account := s.loadAccount(ctx, accountID)
	return account.Balance, nil
}

func (s *economyService) ActionRemaining(ctx context.Context, accountID string, action models.Action) (time.Duration, error) {
	account := s.loadAccount(ctx, accountID)
	return CooldownRemaining(account, action, s.now()), nil
}

func (s *economyService) MarkActionUsed(ctx context.Context, accountID string, action models.Action) error {
	unlock := s.locks.Lock(accountID)
	defer unlock()

	account := s.loadAccount(ctx, accountID)
	MarkCooldown(account, action, s.now())

	if err := s.store.Set(ctx, accountID, account); err != nil {
		return fmt.Errorf("failed to save account %s: %w", accountID, err)
	}
	return nil
}
