package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"labdesk/internal/caching"
	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/repositories"
)

const snapshotTTL = 5 * time.Minute

// PaymentBreakdownEntry aggregates invoices sharing a payment method.
type PaymentBreakdownEntry struct {
	Method string  `json:"method"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Summary is the read-only aggregate for a date range. Numeric fields are
// zero and list fields are empty, never null, when the range matches nothing.
type Summary struct {
	TodayRevenue     float64                 `json:"today_revenue"`
	TotalRevenue     float64                 `json:"total_revenue"`
	TodayCollections float64                 `json:"today_collections"`
	TotalTests       int                     `json:"total_tests"`
	PaymentBreakdown []PaymentBreakdownEntry `json:"payment_breakdown"`
	Invoices         []*models.Invoice       `json:"invoices"`
	Collections      []*models.Sample        `json:"collections"`
}

// Service aggregates persisted invoices and sample collections into summary
// views. Read-only; never mutates the underlying records.
type Service struct {
	invoiceRepo repositories.InvoiceRepository
	sampleRepo  repositories.SampleRepository
	cacheSvc    caching.CacheService
}

func NewService(invoiceRepo repositories.InvoiceRepository, sampleRepo repositories.SampleRepository, cacheSvc caching.CacheService) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		sampleRepo:  sampleRepo,
		cacheSvc:    cacheSvc,
	}
}

// DayBounds expands a calendar date range to full-day boundaries in local
// time: from at 00:00:00.000 through to at 23:59:59.999.
func DayBounds(fromDate, toDate time.Time) (time.Time, time.Time) {
	fy, fm, fd := fromDate.Date()
	ty, tm, td := toDate.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, fromDate.Location())
	end := time.Date(ty, tm, td, 23, 59, 59, 999000000, toDate.Location())
	return start, end
}

// Aggregate computes the summary over [fromDate, toDate], both inclusive.
// Today's figures always track the current calendar day, even when the
// requested range is historical.
func (s *Service) Aggregate(ctx context.Context, fromDate, toDate time.Time) (*Summary, error) {
	if toDate.Before(fromDate) {
		return nil, common.NewValidationError("to_date", "must not precede from_date")
	}

	start, end := DayBounds(fromDate, toDate)
	cacheKey := fmt.Sprintf("%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	if data, err := s.cacheSvc.GetAnalyticsSnapshot(ctx, cacheKey); err == nil && data != nil {
		summary := &Summary{}
		if err := json.Unmarshal(data, summary); err == nil {
			return summary, nil
		}
	}

	invoices, err := s.invoiceRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	collections, err := s.sampleRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	todayStart, todayEnd := DayBounds(time.Now(), time.Now())
	todayInvoices, err := s.invoiceRepo.GetByDateRange(ctx, todayStart, todayEnd)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(invoices, collections, todayInvoices)

	if data, err := json.Marshal(summary); err == nil {
		if err := s.cacheSvc.SetAnalyticsSnapshot(ctx, cacheKey, data, snapshotTTL); err != nil {
			log.Printf("Failed to cache analytics snapshot %s: %v", cacheKey, err)
		}
	}

	return summary, nil
}

// RefreshToday recomputes and caches the current day's snapshot.
func (s *Service) RefreshToday(ctx context.Context) (*Summary, error) {
	now := time.Now()
	start, end := DayBounds(now, now)
	cacheKey := fmt.Sprintf("%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err := s.cacheSvc.DeleteAnalyticsSnapshot(ctx, cacheKey); err != nil {
		log.Printf("Failed to drop analytics snapshot %s: %v", cacheKey, err)
	}
	return s.Aggregate(ctx, now, now)
}

// BuildSummary reduces the filtered record sets into the summary aggregate.
// Pure; the today* figures come from todayInvoices, which is filtered to the
// current calendar day by the caller.
func BuildSummary(invoices []*models.Invoice, collections []*models.Sample, todayInvoices []*models.Invoice) *Summary {
	summary := &Summary{
		PaymentBreakdown: []PaymentBreakdownEntry{},
		Invoices:         []*models.Invoice{},
		Collections:      []*models.Sample{},
	}

	byMethod := map[string]*PaymentBreakdownEntry{}
	for _, invoice := range invoices {
		summary.TotalRevenue += invoice.FinalAmount
		summary.TotalTests += len(invoice.Items)

		entry, ok := byMethod[invoice.PaymentMode]
		if !ok {
			entry = &PaymentBreakdownEntry{Method: invoice.PaymentMode}
			byMethod[invoice.PaymentMode] = entry
		}
		entry.Count++
		entry.Amount += invoice.FinalAmount
	}

	methods := make([]string, 0, len(byMethod))
	for method := range byMethod {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	for _, method := range methods {
		summary.PaymentBreakdown = append(summary.PaymentBreakdown, *byMethod[method])
	}

	for _, invoice := range todayInvoices {
		summary.TodayRevenue += invoice.FinalAmount
		summary.TodayCollections += invoice.PaidAmount
	}

	if invoices != nil {
		summary.Invoices = invoices
	}
	if collections != nil {
		summary.Collections = collections
	}

	return summary
}
