package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/mcoot/scrabble-go/internal/services/auth"
	"github.com/mcoot/scrabble-go/internal/sse"
)

// Scheduler runs periodic maintenance: expired session cleanup and removal
// of event hubs with no remaining watchers.
type Scheduler struct {
	gocron gocron.Scheduler
	logger *slog.Logger
}

// New creates a scheduler with the maintenance jobs registered.
func New(authService *auth.Service, hubManager *sse.HubManager, logger *slog.Logger) (*Scheduler, error) {
	gocronScheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	if _, err := gocronScheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			authService.CleanExpiredSessions()
		}),
		gocron.WithName("clean-expired-sessions"),
	); err != nil {
		return nil, fmt.Errorf("register session cleanup job: %w", err)
	}

	if _, err := gocronScheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			hubManager.CleanupEmptyHubs()
		}),
		gocron.WithName("cleanup-empty-hubs"),
	); err != nil {
		return nil, fmt.Errorf("register hub cleanup job: %w", err)
	}

	return &Scheduler{
		gocron: gocronScheduler,
		logger: logger.With(slog.String("component", "scheduler")),
	}, nil
}

// Start begins running the registered jobs.
func (s *Scheduler) Start() {
	s.gocron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.gocron.Jobs())))
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	return s.gocron.Shutdown()
}
