package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

type ReportRepository interface {
	CountEvents(ctx context.Context) (int, error)
	CountEventsByType(ctx context.Context) (map[domain.EventType]int, error)
	CountRegistrations(ctx context.Context) (int, error)
	CountRegistrationsByStatus(ctx context.Context, status domain.RegistrationStatus) (int, error)
	// RegistrationsPerEvent returns counts descending, ties broken by
	// event id. limit <= 0 means no limit.
	RegistrationsPerEvent(ctx context.Context, limit int) ([]EventRegistrationCount, error)
	CategoryDistribution(ctx context.Context) ([]CategoryCount, error)
	// MonthlyCounts returns per-(year, month) registration counts,
	// newest bucket first, at most limit buckets.
	MonthlyCounts(ctx context.Context, limit int) ([]MonthlyCount, error)
}

type Summary struct {
	TotalEvents         int
	TotalRegistrations  int
	PendingCount        int
	ApprovedCount       int
	OwnCollegeEvents    int
	OtherCollegeEvents  int
	MostRegisteredEvent string
}

type EventRegistrationCount struct {
	EventID       string
	Title         string
	Registrations int
}

type CategoryCount struct {
	Category domain.EventCategory
	Count    int
}

type MonthlyCount struct {
	Year          int
	Month         time.Month
	Label         string
	Registrations int
}

const monthlyGrowthBuckets = 12

// ReportService derives read-only statistics from committed state. Every
// operation is a deterministic fold: repeated calls with no intervening
// writes return identical results, at any concurrency.
type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	var err error

	if sum.TotalEvents, err = s.repo.CountEvents(ctx); err != nil {
		return Summary{}, err
	}
	if sum.TotalRegistrations, err = s.repo.CountRegistrations(ctx); err != nil {
		return Summary{}, err
	}
	if sum.PendingCount, err = s.repo.CountRegistrationsByStatus(ctx, domain.StatusPending); err != nil {
		return Summary{}, err
	}
	if sum.ApprovedCount, err = s.repo.CountRegistrationsByStatus(ctx, domain.StatusApproved); err != nil {
		return Summary{}, err
	}

	byType, err := s.repo.CountEventsByType(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.OwnCollegeEvents = byType[domain.TypeOwnCollege]
	sum.OtherCollegeEvents = byType[domain.TypeOtherCollege]

	top, err := s.repo.RegistrationsPerEvent(ctx, 1)
	if err != nil {
		return Summary{}, err
	}
	sum.MostRegisteredEvent = "N/A"
	if len(top) > 0 {
		sum.MostRegisteredEvent = top[0].Title
	}
	return sum, nil
}

func (s *ReportService) RegistrationsPerEvent(ctx context.Context, limit int) ([]EventRegistrationCount, error) {
	return s.repo.RegistrationsPerEvent(ctx, limit)
}

func (s *ReportService) CategoryDistribution(ctx context.Context) ([]CategoryCount, error) {
	return s.repo.CategoryDistribution(ctx)
}

// MonthlyGrowth returns the most recent 12 (year, month) buckets of
// registration counts in chronological order, labelled "Jan 2026" style.
func (s *ReportService) MonthlyGrowth(ctx context.Context) ([]MonthlyCount, error) {
	rows, err := s.repo.MonthlyCounts(ctx, monthlyGrowthBuckets)
	if err != nil {
		return nil, err
	}

	// Repository rows come newest-first; reverse into chronological order.
	out := make([]MonthlyCount, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		row.Label = fmt.Sprintf("%s %d", row.Month.String()[:3], row.Year)
		out = append(out, row)
	}
	return out, nil
}
