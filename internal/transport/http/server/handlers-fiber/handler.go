// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"team-formation/config"
	"team-formation/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the team formation API using service layer interfaces.
type Handler struct {
	log      *zap.SugaredLogger
	uc       usecase.InterfaceUsecase
	validate *validator.Validate
	search   config.SearchConfig
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase, search config.SearchConfig) *Handler {
	return &Handler{
		log:      log.Named("http.handler"),
		uc:       usecase,
		validate: validator.New(),
		search:   search,
	}
}
