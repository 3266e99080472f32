// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"team-formation/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface is the read-only user directory.
type UserInterface interface {
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	// GetUsersByIDs returns the known users in the order of ids; unknown ids are skipped.
	GetUsersByIDs(ctx context.Context, ids []string) ([]entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUserSkills(ctx context.Context, userID string) ([]string, error)
	GetUserStats(ctx context.Context, userID string) (entities.UserStats, error)
}

// EventInterface is the read-only event binding.
type EventInterface interface {
	GetTeamSizeBounds(ctx context.Context, eventID string) (entities.TeamSize, error)
	EventExists(ctx context.Context, eventID string) (bool, error)
}

// TeamInterface stores teams. Every mutating method is a single atomic
// transition: it either applies fully or leaves the team unchanged.
type TeamInterface interface {
	// CreateTeam fails with ErrOnAnotherTeam when the leader already belongs to a team of the event.
	CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error)
	GetTeam(ctx context.Context, teamID string) (*entities.Team, error)
	ListTeamsByEvent(ctx context.Context, eventID string) ([]entities.Team, error)
	ListTeamsByMember(ctx context.Context, userID string) ([]entities.Team, error)
	ListTeamsByInvitee(ctx context.Context, userID string) ([]entities.Team, error)

	// AddInvite fails with ErrTeamFull when the team already has maxSize members.
	AddInvite(ctx context.Context, teamID, inviterID, inviteeID string, maxSize int) (*entities.Team, error)
	// AcceptInvite drops the invite and fails with ErrTeamFull when the team already has maxSize members.
	AcceptInvite(ctx context.Context, teamID, userID string, maxSize int) (*entities.Team, error)
	DeclineInvite(ctx context.Context, teamID, userID string) (*entities.Team, error)
	// RemoveMember reports disbanded=true when the leader left as the last member and the team was deleted.
	RemoveMember(ctx context.Context, teamID, userID string) (team *entities.Team, disbanded bool, err error)
	DeleteTeam(ctx context.Context, teamID, requesterID string) error
}
