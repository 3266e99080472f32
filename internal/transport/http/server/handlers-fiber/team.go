package handlers_fiber

import (
	"net/http"

	"team-formation/internal/dto"
	"team-formation/internal/entities"
	"team-formation/internal/mapper"
	"team-formation/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostTeam creates a team led by the caller.
func (h *Handler) PostTeam(c *fiber.Ctx) error {
	var body dto.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(&body); err != nil {
		return badRequest(c, "validation error: "+err.Error())
	}

	view, err := h.uc.CreateTeam(c.Context(), mapper.FromCreateTeam(body, middleware.CallerID(c)))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.TeamResponse{Team: mapper.ToTeam(*view)})
}

// GetTeam returns a team with its members and invitees.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	view, err := h.uc.Team(c.Context(), c.Params("teamID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TeamResponse{Team: mapper.ToTeam(*view)})
}

// DeleteTeam deletes the team when the caller leads it.
func (h *Handler) DeleteTeam(c *fiber.Ctx) error {
	req := entities.MembershipRequest{TeamID: c.Params("teamID"), UserID: middleware.CallerID(c)}
	if err := h.uc.DeleteTeam(c.Context(), req); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// PostTeamInvite invites a user on behalf of the caller.
func (h *Handler) PostTeamInvite(c *fiber.Ctx) error {
	var body dto.InviteRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(&body); err != nil {
		return badRequest(c, "validation error: "+err.Error())
	}

	view, err := h.uc.Invite(c.Context(), entities.InviteRequest{
		TeamID:    c.Params("teamID"),
		InviterID: middleware.CallerID(c),
		InviteeID: body.UserID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.TeamResponse{Team: mapper.ToTeam(*view)})
}

// PostTeamJoin accepts the caller's invite.
func (h *Handler) PostTeamJoin(c *fiber.Ctx) error {
	view, err := h.uc.JoinTeam(c.Context(), h.membership(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TeamResponse{Team: mapper.ToTeam(*view)})
}

// PostTeamDecline declines the caller's invite.
func (h *Handler) PostTeamDecline(c *fiber.Ctx) error {
	view, err := h.uc.DeclineInvite(c.Context(), h.membership(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TeamResponse{Team: mapper.ToTeam(*view)})
}

// PostTeamLeave removes the caller from the team.
func (h *Handler) PostTeamLeave(c *fiber.Ctx) error {
	view, disbanded, err := h.uc.LeaveTeam(c.Context(), h.membership(c))
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.LeaveResponse{Disbanded: disbanded}
	if view != nil {
		team := mapper.ToTeam(*view)
		resp.Team = &team
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetEventTeams lists teams of an event.
func (h *Handler) GetEventTeams(c *fiber.Ctx) error {
	views, err := h.uc.TeamsForEvent(c.Context(), c.Params("eventID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TeamsResponse{Teams: mapper.ToTeams(views)})
}

// GetUserTeams lists teams a user belongs to.
func (h *Handler) GetUserTeams(c *fiber.Ctx) error {
	views, err := h.uc.TeamsForUser(c.Context(), c.Params("userID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TeamsResponse{Teams: mapper.ToTeams(views)})
}

// GetMyInvites lists teams that invited the caller.
func (h *Handler) GetMyInvites(c *fiber.Ctx) error {
	views, err := h.uc.InvitesForUser(c.Context(), middleware.CallerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TeamsResponse{Teams: mapper.ToTeams(views)})
}

func (h *Handler) membership(c *fiber.Ctx) entities.MembershipRequest {
	return entities.MembershipRequest{TeamID: c.Params("teamID"), UserID: middleware.CallerID(c)}
}
