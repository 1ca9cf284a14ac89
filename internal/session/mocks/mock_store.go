package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"interviewapi/internal/model"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, s *model.Session, ttl time.Duration) error {
	args := m.Called(ctx, s, ttl)
	return args.Error(0)
}

func (m *MockStore) Find(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	args := m.Called(ctx, id, ttl)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
