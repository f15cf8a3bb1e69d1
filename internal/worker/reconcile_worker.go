package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/repository"
)

// ReconcileWorker periodically sweeps for two kinds of cross-record
// inconsistency and repairs them idempotently:
//
//  1. Pending admissions whose email already has an enrolled student.
//     The transactional approve path never produces these, but older
//     deployments wrote the three approval effects separately and a
//     crash between writes could leave the pending row behind. The
//     sweep finishes the consumed transition by deleting the leftover.
//  2. Student rows whose mirrored profile fields (name/phone/photo)
//     drifted from the identity record, since the mirror on profile
//     update is best-effort.
type ReconcileWorker struct {
	pendings *repository.PendingStudentRepository
	students *repository.StudentRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewReconcileWorker creates a new ReconcileWorker.
func NewReconcileWorker(
	pendings *repository.PendingStudentRepository,
	students *repository.StudentRepository,
	interval time.Duration,
	log zerolog.Logger,
) *ReconcileWorker {
	return &ReconcileWorker{
		pendings: pendings,
		students: students,
		interval: interval,
		log:      log.With().Str("component", "reconcile_worker").Logger(),
	}
}

// Start begins the periodic sweep loop. Call in a goroutine.
func (w *ReconcileWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ReconcileWorker) sweep(ctx context.Context) {
	emails, err := w.pendings.FindAlreadyEnrolled(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Leftover pending scan failed")
	}
	for _, email := range emails {
		if _, err := w.pendings.DeleteByEmail(ctx, email); err != nil {
			w.log.Error().Err(err).Str("email", email).Msg("Leftover pending cleanup failed")
			continue
		}
		w.log.Warn().Str("email", email).Msg("Removed leftover pending admission for enrolled student")
	}

	drifted, err := w.students.FindProfileDrift(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Profile drift scan failed")
		return
	}
	for _, email := range drifted {
		if err := w.students.SyncFromUser(ctx, email); err != nil {
			w.log.Error().Err(err).Str("email", email).Msg("Profile re-mirror failed")
			continue
		}
		w.log.Info().Str("email", email).Msg("Re-mirrored drifted student profile")
	}
}
