package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"interviewapi/internal/model"
	"interviewapi/internal/service"
)

type MockInterviewService struct {
	mock.Mock
}

func (m *MockInterviewService) Start(ctx context.Context, req service.StartRequest) (*service.TurnResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TurnResult), args.Error(1)
}

func (m *MockInterviewService) SubmitAnswer(ctx context.Context, id, answer string) (*service.TurnResult, error) {
	args := m.Called(ctx, id, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TurnResult), args.Error(1)
}

func (m *MockInterviewService) Get(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockInterviewService) Complete(ctx context.Context, id string) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockInterviewService) Report(ctx context.Context, interviewID string) (*model.Report, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockInterviewService) ListReports(ctx context.Context, limit, offset int) (*service.ReportListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportListResult), args.Error(1)
}
