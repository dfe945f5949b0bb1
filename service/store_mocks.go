package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coinbot/models"
)

// MockAccountStore is a mock implementation of AccountStore
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) Get(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountStore) Set(ctx context.Context, accountID string, account *models.Account) error {
	args := m.Called(ctx, accountID, account)
	return args.Error(0)
}

func (m *MockAccountStore) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCredentialStore is a mock implementation of CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Put(ctx context.Context, cred *models.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockCredentialStore) All(ctx context.Context) ([]*models.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Credential), args.Error(1)
}

func (m *MockCredentialStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockRoleCreator is a mock implementation of RoleCreator
type MockRoleCreator struct {
	mock.Mock
}

func (m *MockRoleCreator) CreateAndAssignRole(ctx context.Context, guildID, userID, name, color string) error {
	args := m.Called(ctx, guildID, userID, name, color)
	return args.Error(0)
}
