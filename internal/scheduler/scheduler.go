package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/kevinblo/fwords-backend/internal/config"
	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/internal/progress"
	"github.com/kevinblo/fwords-backend/pkg/logger"
)

// reconcileAt is the local time of the nightly aggregate reconciliation.
const reconcileAt = "03:00"

// Scheduler runs the background maintenance jobs: purging stale activation
// tokens and reconciling the language progress aggregates.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	tokenRepo    *database.ActivationTokenRepository
	recalculator *progress.Recalculator
	cfg          config.AuthConfig
	log          *logger.Logger
}

// New creates a new scheduler instance
func New(recalculator *progress.Recalculator, cfg config.AuthConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.Local),
		tokenRepo:    database.NewActivationTokenRepository(),
		recalculator: recalculator,
		cfg:          cfg,
		log:          log.With("component", "scheduler"),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.purgeTokens); err != nil {
		return err
	}
	if _, err := s.scheduler.Every(1).Day().At(reconcileAt).Do(s.reconcile); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) purgeTokens() {
	deleted, err := s.tokenRepo.PurgeExpired(context.Background(), s.cfg.ActivationTokenTTL)
	if err != nil {
		s.log.Error("activation token purge failed", "error", err)
		return
	}
	if deleted > 0 {
		s.log.Info("purged activation tokens", "deleted", deleted)
	}
}

func (s *Scheduler) reconcile() {
	if err := s.recalculator.ReconcileAll(context.Background()); err != nil {
		s.log.Error("nightly reconciliation failed", "error", err)
	}
}
