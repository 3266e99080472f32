package handlers_fiber

import (
	"net/http"

	"team-formation/internal/dto"
	"team-formation/internal/mapper"
	"team-formation/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetUser returns a user profile.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	usr, err := h.uc.User(c.Context(), c.Params("userID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToUser(*usr))
}

// GetUsersSearch ranks teammates for the caller by skill overlap.
func (h *Handler) GetUsersSearch(c *fiber.Ctx) error {
	var query dto.SearchRequest
	if err := c.QueryParser(&query); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := h.validate.Struct(&query); err != nil {
		return badRequest(c, "validation error: "+err.Error())
	}

	limit := query.Limit
	switch {
	case limit == 0:
		limit = h.search.DefaultLimit
	case limit > h.search.MaxLimit:
		limit = h.search.MaxLimit
	}

	hits, err := h.uc.SearchTeammates(c.Context(), mapper.FromSearch(query, middleware.CallerID(c), limit))
	if err != nil {
		h.log.Warnw("failed to search teammates", "error", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.SearchResponse{Users: mapper.ToCandidates(hits)})
}
