package http_test

import (
	"context"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
	"thoonsheet-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockTransactionService
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, actor policy.Actor, in service.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Get(ctx context.Context, actor policy.Actor, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) List(ctx context.Context, actor policy.Actor, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, actor policy.Actor, id int32, in service.UpdateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, actor policy.Actor, id int32) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockTransactionService) Approve(ctx context.Context, actor policy.Actor, id int32, ownerNotes *string) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, id, ownerNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Reject(ctx context.Context, actor policy.Actor, id int32, ownerNotes *string) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, id, ownerNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Resubmit(ctx context.Context, actor policy.Actor, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockSummaryService
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Report(ctx context.Context, actor policy.Actor, period domain.SummaryPeriod, start, end *time.Time) (*domain.SummaryReport, error) {
	args := m.Called(ctx, actor, period, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryReport), args.Error(1)
}
