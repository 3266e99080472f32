package entities

import (
	"fmt"
	"strings"
)

const maxTeamNameLen = 100

// CreateTeamRequest asks to create a team for EventID led by LeaderID.
type CreateTeamRequest struct {
	EventID  string
	LeaderID string
	Name     string
}

// Validate checks required fields and trims the name.
func (r *CreateTeamRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.EventID == "" || r.LeaderID == "" {
		return fmt.Errorf("%w: event_id and leader_id are required", ErrInvalidArgument)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: team name is required", ErrInvalidArgument)
	}
	if len(r.Name) > maxTeamNameLen {
		return fmt.Errorf("%w: team name is longer than %d", ErrInvalidArgument, maxTeamNameLen)
	}
	return nil
}

// InviteRequest asks InviterID's team TeamID to invite InviteeID.
type InviteRequest struct {
	TeamID    string
	InviterID string
	InviteeID string
}

// Validate checks required fields.
func (r InviteRequest) Validate() error {
	if r.TeamID == "" || r.InviterID == "" || r.InviteeID == "" {
		return fmt.Errorf("%w: team_id, inviter_id and invitee_id are required", ErrInvalidArgument)
	}
	if r.InviterID == r.InviteeID {
		return fmt.Errorf("%w: cannot invite yourself", ErrInvalidArgument)
	}
	return nil
}

// MembershipRequest identifies a (team, user) pair for join, decline, leave and delete.
type MembershipRequest struct {
	TeamID string
	UserID string
}

// Validate checks required fields.
func (r MembershipRequest) Validate() error {
	if r.TeamID == "" || r.UserID == "" {
		return fmt.Errorf("%w: team_id and user_id are required", ErrInvalidArgument)
	}
	return nil
}
