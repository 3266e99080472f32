package handlers_fiber

import (
	"errors"
	"net/http"

	"team-formation/internal/dto"
	"team-formation/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := dto.ErrCodeInternal
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = dto.ErrCodeInvalidArgument
		msg = err.Error()
	case errors.Is(err, entities.ErrNotFound):
		status = http.StatusNotFound
		code = dto.ErrCodeNotFound
		msg = err.Error()
	case errors.Is(err, entities.ErrTeamFull):
		status = http.StatusConflict
		code = dto.ErrCodeTeamFull
		msg = "team is full"
	case errors.Is(err, entities.ErrOnAnotherTeam):
		status = http.StatusConflict
		code = dto.ErrCodeOnAnotherTeam
		msg = "user is already on a team for this event"
	case errors.Is(err, entities.ErrLeaderCannotLeave):
		status = http.StatusConflict
		code = dto.ErrCodeLeaderLeave
		msg = "leader cannot leave while other members remain"
	case errors.Is(err, entities.ErrConflict):
		status = http.StatusConflict
		code = dto.ErrCodeConflict
		msg = err.Error()
	case errors.Is(err, entities.ErrPermissionDenied):
		status = http.StatusForbidden
		code = dto.ErrCodePermissionDenied
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorDetail{Code: code, Message: msg}}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(dto.ErrCodeInvalidArgument, msg))
}
