package usecase

import (
	"time"

	"team-formation/internal/repository"
	"team-formation/internal/usecase/domain"
	"team-formation/pkg/metrics"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	UserUsecaseInterface
	TeamUsecaseInterface
	SearchUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, repo repository.Repository, timeout time.Duration, rec metrics.Recorder) InterfaceUsecase {
	return domain.New(log, repo, timeout, rec)
}
