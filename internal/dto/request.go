package dto

// CreateTeamRequest is the body of POST /api/teams.
type CreateTeamRequest struct {
	EventID string `json:"event_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=100"`
}

// InviteRequest is the body of POST /api/teams/:teamID/invites.
type InviteRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// SearchRequest is the query of GET /api/users/search.
type SearchRequest struct {
	Skills string `query:"skills"`
	Limit  int    `query:"limit" validate:"gte=0"`
}
