package service_test

import (
	"context"
	"testing"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestSummaryService_Report(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyBooksYieldEmptyCollections", func(t *testing.T) {
		mockSummaryRepo := new(MockSummaryRepo)
		svc := service.NewSummaryService(mockSummaryRepo)

		mockSummaryRepo.On("Overall", ctx).Return(&domain.AuditSummary{}, nil).Once()
		mockSummaryRepo.On("ByGroup", ctx).Return(nil, nil).Once()
		mockSummaryRepo.On("ByPeriod", ctx, domain.PeriodMonthly, (*time.Time)(nil), (*time.Time)(nil)).
			Return(nil, nil).Once()

		report, err := svc.Report(ctx, ownerActor, domain.PeriodMonthly, nil, nil)
		assert.NoError(t, err)
		assert.NotNil(t, report.Groups)
		assert.Empty(t, report.Groups)
		assert.NotNil(t, report.Buckets)
		assert.Empty(t, report.Buckets)
		mockSummaryRepo.AssertExpectations(t)
	})

	t.Run("NoPeriodSkipsBuckets", func(t *testing.T) {
		mockSummaryRepo := new(MockSummaryRepo)
		svc := service.NewSummaryService(mockSummaryRepo)

		mockSummaryRepo.On("Overall", ctx).Return(&domain.AuditSummary{}, nil).Once()
		mockSummaryRepo.On("ByGroup", ctx).
			Return([]domain.GroupSummary{{GroupID: 1, GroupName: "Club A"}}, nil).Once()

		report, err := svc.Report(ctx, ownerActor, "", nil, nil)
		assert.NoError(t, err)
		assert.Len(t, report.Groups, 1)
		assert.Nil(t, report.Buckets)
		mockSummaryRepo.AssertExpectations(t)
	})

	t.Run("AuditorDenied", func(t *testing.T) {
		svc := service.NewSummaryService(new(MockSummaryRepo))

		_, err := svc.Report(ctx, auditorActor, "", nil, nil)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		svc := service.NewSummaryService(new(MockSummaryRepo))

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, -1, 0)
		_, err := svc.Report(ctx, ownerActor, domain.PeriodMonthly, &start, &end)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "end_date", validationErr.Field)
	})
}
