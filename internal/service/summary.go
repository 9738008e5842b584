package service

import (
	"context"
	"log/slog"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
)

type summaryService struct {
	summaries repository.SummaryRepository
	log       *slog.Logger
}

func NewSummaryService(summaries repository.SummaryRepository) SummaryService {
	return &summaryService{
		summaries: summaries,
		log:       logger.WithService("summary"),
	}
}

func (s *summaryService) Report(ctx context.Context, actor policy.Actor, period domain.SummaryPeriod, start, end *time.Time) (*domain.SummaryReport, error) {
	if !policy.CanViewSummary(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if period != "" && !domain.ValidSummaryPeriod(period) {
		return nil, domain.NewValidationError("period", "period must be daily, weekly, monthly or yearly")
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, domain.NewValidationError("end_date", "end date is before start date")
	}

	overall, err := s.summaries.Overall(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.summaries.ByGroup(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		// Zero groups still serializes as an empty array.
		groups = []domain.GroupSummary{}
	}

	report := &domain.SummaryReport{
		Overall: *overall,
		Groups:  groups,
	}
	if period != "" {
		buckets, err := s.summaries.ByPeriod(ctx, period, start, end)
		if err != nil {
			return nil, err
		}
		if buckets == nil {
			buckets = []domain.PeriodBucket{}
		}
		report.Buckets = buckets
	}
	return report, nil
}
