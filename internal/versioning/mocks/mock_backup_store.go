package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentadmin/internal/models"
)

type MockBackupStore struct {
	mock.Mock
}

func (m *MockBackupStore) Create(ctx context.Context, content, namePrefix string) (*models.Backup, error) {
	args := m.Called(ctx, content, namePrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Backup), args.Error(1)
}

func (m *MockBackupStore) List(ctx context.Context) ([]models.BackupInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BackupInfo), args.Error(1)
}

func (m *MockBackupStore) Get(ctx context.Context, identifier string) (*models.Backup, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Backup), args.Error(1)
}
