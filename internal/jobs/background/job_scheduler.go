package background

import (
	"context"
	"log"
	"sync"
	"time"

	"labdesk/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the background jobs
type JobScheduler struct {
	scheduler  gocron.Scheduler
	refreshSvc *jobs.AnalyticsRefreshService
	jobJobs    map[string]gocron.Job
	mu         sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(refreshSvc *jobs.AnalyticsRefreshService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		refreshSvc: refreshSvc,
		jobJobs:    make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	// Analytics snapshot refresh - every 15 minutes
	analyticsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.refreshAnalytics),
		gocron.WithName("analytics-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create analytics job: %v", err)
	} else {
		js.jobJobs["analytics"] = analyticsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

func (js *JobScheduler) refreshAnalytics() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := js.refreshSvc.RefreshToday(ctx); err != nil {
		log.Printf("Analytics refresh job failed: %v", err)
	}
}
