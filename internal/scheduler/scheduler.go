// Package scheduler provides cron-based scheduling for the pattern
// detection sweep and suggestion retention cleanup.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// cleanupSchedule purges expired dismissed suggestions daily at 4 AM,
// after the default detection sweep window.
const cleanupSchedule = "0 0 4 * * *"

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a cron expression for the detection sweep (e.g., "0 3 * * *" for 3 AM daily)
	Schedule string
	// Timeout is the maximum duration for a complete sweep over all users
	Timeout time.Duration
	// Lookback restricts the sweep to users with transactions this recent
	Lookback time.Duration
	// Retention is how long dismissed suggestions stay suppressed
	Retention time.Duration
	// Enabled determines if the scheduler should run
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule:  "0 3 * * *", // Daily at 3 AM
		Timeout:   10 * time.Minute,
		Lookback:  90 * 24 * time.Hour,
		Retention: 30 * 24 * time.Hour,
		Enabled:   true,
	}
}

// UserSource lists the users worth sweeping.
type UserSource interface {
	ListActiveUserIDs(ctx context.Context, since time.Time) ([]uuid.UUID, error)
}

// SuggestionRunner is the suggestion lifecycle surface the scheduler drives.
type SuggestionRunner interface {
	RunDetection(ctx context.Context, userID uuid.UUID) (int, error)
	CleanupDismissed(ctx context.Context, olderThan time.Time) (int64, error)
}

// Scheduler manages the recurring detection and cleanup jobs
type Scheduler struct {
	cron        *cron.Cron
	users       UserSource
	suggestions SuggestionRunner
	config      Config
	logger      *slog.Logger
	sweepID     cron.EntryID
	cleanupID   cron.EntryID
}

// New creates a new Scheduler instance
func New(cfg Config, users UserSource, suggestions SuggestionRunner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		users:       users,
		suggestions: suggestions,
		config:      cfg,
		logger:      logger,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled, skipping start")
		return nil
	}

	// Convert standard cron (5 fields) to cron with seconds (6 fields)
	schedule := "0 " + s.config.Schedule

	sweepID, err := s.cron.AddFunc(schedule, s.runSweepJob)
	if err != nil {
		return err
	}
	s.sweepID = sweepID

	cleanupID, err := s.cron.AddFunc(cleanupSchedule, s.runCleanupJob)
	if err != nil {
		return err
	}
	s.cleanupID = cleanupID

	s.cron.Start()

	s.logger.Info("Scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("timeout", s.config.Timeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate detection sweep (useful for manual triggers)
func (s *Scheduler) RunNow() {
	go s.runSweepJob()
}

// runSweepJob runs pattern detection for every recently active user.
// One user's failure does not abort the rest of the sweep.
func (s *Scheduler) runSweepJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	since := startTime.Add(-s.config.Lookback)

	userIDs, err := s.users.ListActiveUserIDs(ctx, since)
	if err != nil {
		s.logger.Error("Detection sweep failed to list users", slog.String("error", err.Error()))
		return
	}

	swept, created, failed := 0, 0, 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			s.logger.Warn("Detection sweep timed out",
				slog.Int("swept", swept),
				slog.Int("remaining", len(userIDs)-swept),
			)
			break
		}

		n, err := s.suggestions.RunDetection(ctx, userID)
		if err != nil {
			failed++
			s.logger.Error("Detection failed for user",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		swept++
		created += n
	}

	s.logger.Info("Detection sweep complete",
		slog.Int("users", swept),
		slog.Int("suggestions_created", created),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(startTime)),
	)
}

// runCleanupJob purges dismissed suggestions past the retention window.
func (s *Scheduler) runCleanupJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	cutoff := time.Now().Add(-s.config.Retention)
	count, err := s.suggestions.CleanupDismissed(ctx, cutoff)
	if err != nil {
		s.logger.Error("Suggestion cleanup failed", slog.String("error", err.Error()))
		return
	}

	s.logger.Info("Suggestion cleanup complete", slog.Int64("purged", count))
}
