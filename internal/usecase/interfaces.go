package usecase

import (
	"context"

	"team-formation/internal/entities"
)

// UserUsecaseInterface abstracts user directory reads for delivery layer.
type UserUsecaseInterface interface {
	User(ctx context.Context, userID string) (*entities.User, error)
}

// TeamUsecaseInterface abstracts team membership operations.
type TeamUsecaseInterface interface {
	CreateTeam(ctx context.Context, req entities.CreateTeamRequest) (*entities.TeamView, error)
	Team(ctx context.Context, teamID string) (*entities.TeamView, error)
	Invite(ctx context.Context, req entities.InviteRequest) (*entities.TeamView, error)
	JoinTeam(ctx context.Context, req entities.MembershipRequest) (*entities.TeamView, error)
	DeclineInvite(ctx context.Context, req entities.MembershipRequest) (*entities.TeamView, error)
	// LeaveTeam returns a nil view and disbanded=true when the last member, the leader, left.
	LeaveTeam(ctx context.Context, req entities.MembershipRequest) (view *entities.TeamView, disbanded bool, err error)
	DeleteTeam(ctx context.Context, req entities.MembershipRequest) error
	TeamsForEvent(ctx context.Context, eventID string) ([]entities.TeamView, error)
	TeamsForUser(ctx context.Context, userID string) ([]entities.TeamView, error)
	InvitesForUser(ctx context.Context, userID string) ([]entities.TeamView, error)
}

// SearchUsecaseInterface abstracts teammate search.
type SearchUsecaseInterface interface {
	SearchTeammates(ctx context.Context, query entities.SearchQuery) ([]entities.RankedUser, error)
}
