package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentadmin/internal/models"
)

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) GetCurrent(ctx context.Context) (*models.TemplateDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TemplateDocument), args.Error(1)
}

func (m *MockTemplateRepository) SetCurrent(ctx context.Context, content string) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}
