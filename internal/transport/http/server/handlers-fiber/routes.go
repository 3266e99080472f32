package handlers_fiber

import "github.com/gofiber/fiber/v2"

// RegisterHandlers mounts the API under /api behind auth.
func RegisterHandlers(app fiber.Router, h *Handler, auth fiber.Handler) {
	api := app.Group("/api", auth)

	api.Post("/teams", h.PostTeam)
	api.Get("/teams/:teamID", h.GetTeam)
	api.Delete("/teams/:teamID", h.DeleteTeam)
	api.Post("/teams/:teamID/invites", h.PostTeamInvite)
	api.Post("/teams/:teamID/join", h.PostTeamJoin)
	api.Post("/teams/:teamID/decline", h.PostTeamDecline)
	api.Post("/teams/:teamID/leave", h.PostTeamLeave)

	api.Get("/events/:eventID/teams", h.GetEventTeams)

	api.Get("/me/invites", h.GetMyInvites)
	// search must be registered before /users/:userID
	api.Get("/users/search", h.GetUsersSearch)
	api.Get("/users/:userID", h.GetUser)
	api.Get("/users/:userID/teams", h.GetUserTeams)
}
