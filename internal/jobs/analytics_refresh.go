package jobs

import (
	"context"
	"log"
	"time"

	"labdesk/internal/analytics"
)

type AnalyticsRefreshService struct {
	analyticsService *analytics.Service
}

type AnalyticsRefreshResult struct {
	TotalRevenue  float64
	TotalTests    int
	LastRefreshAt time.Time
}

func NewAnalyticsRefreshService(analyticsService *analytics.Service) *AnalyticsRefreshService {
	return &AnalyticsRefreshService{
		analyticsService: analyticsService,
	}
}

// RefreshToday recomputes the current day's analytics snapshot and warms
// the cache so dashboard reads stay cheap.
func (a *AnalyticsRefreshService) RefreshToday(ctx context.Context) (*AnalyticsRefreshResult, error) {
	log.Println("Refreshing today's analytics snapshot")

	summary, err := a.analyticsService.RefreshToday(ctx)
	if err != nil {
		log.Printf("Failed to refresh analytics snapshot: %v", err)
		return nil, err
	}

	result := &AnalyticsRefreshResult{
		TotalRevenue:  summary.TotalRevenue,
		TotalTests:    summary.TotalTests,
		LastRefreshAt: time.Now(),
	}

	log.Printf("Analytics snapshot refreshed: Revenue=%.2f, Tests=%d", result.TotalRevenue, result.TotalTests)
	return result, nil
}
