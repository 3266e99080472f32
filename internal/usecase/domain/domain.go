package domain

import (
	"context"
	"time"

	"team-formation/internal/entities"
	"team-formation/internal/repository"
	"team-formation/pkg/metrics"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log     *zap.SugaredLogger
	repo    repository.Repository
	timeout time.Duration
	metrics metrics.Recorder
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	repo repository.Repository,
	timeout time.Duration,
	rec metrics.Recorder,
) *Usecase {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Usecase{
		log:     log.Named("usecase"),
		repo:    repo,
		timeout: timeout,
		metrics: rec,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// observe records the outcome of op. Domain rejections log at warn, anything
// else at error.
func (u *Usecase) observe(op string, started time.Time, err error) {
	u.metrics.ObserveOperation(op, err, time.Since(started))
	if err == nil {
		return
	}
	if entities.Kind(err) != nil {
		u.log.Warnw("operation rejected", "op", op, "error", err)
		return
	}
	u.log.Errorw("operation failed", "op", op, "error", err)
}
