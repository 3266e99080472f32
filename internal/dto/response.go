package dto

import "time"

// UserStats mirrors entities.UserStats.
type UserStats struct {
	EventsParticipated int `json:"events_participated"`
	EventsWon          int `json:"events_won"`
}

// User is a public user profile.
type User struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Skills   []string  `json:"skills"`
	Stats    UserStats `json:"stats"`
}

// Team is a team with resolved members and invitees.
type Team struct {
	TeamID    string    `json:"team_id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	LeaderID  string    `json:"leader_id"`
	Members   []User    `json:"members"`
	Invitees  []User    `json:"pending_invites"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamResponse wraps a single team.
type TeamResponse struct {
	Team Team `json:"team"`
}

// TeamsResponse wraps a team list.
type TeamsResponse struct {
	Teams []Team `json:"teams"`
}

// LeaveResponse reports the outcome of leaving a team. Team is nil when the team was disbanded.
type LeaveResponse struct {
	Disbanded bool  `json:"disbanded"`
	Team      *Team `json:"team,omitempty"`
}

// Candidate is a ranked search hit.
type Candidate struct {
	User       User `json:"user"`
	MatchScore int  `json:"match_score"`
}

// SearchResponse wraps ranked candidates.
type SearchResponse struct {
	Users []Candidate `json:"users"`
}
