package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"interviewapi/internal/model"
)

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) FindForPhase(ctx context.Context, role string, phase model.Phase) ([]model.Question, error) {
	args := m.Called(ctx, role, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}
