// Package domain contains application Usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"
	"slices"
	"time"

	"team-formation/internal/entities"

	"github.com/google/uuid"
)

// CreateTeam creates a team for an event led by the requester.
func (u *Usecase) CreateTeam(ctx context.Context, req entities.CreateTeamRequest) (view *entities.TeamView, err error) {
	defer func(start time.Time) { u.observe("create_team", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	size, err := u.repo.GetTeamSizeBounds(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if _, err := u.repo.GetUser(ctx, req.LeaderID); err != nil {
		return nil, err
	}

	team, err := u.repo.CreateTeam(ctx, entities.NewTeam(uuid.NewString(), req.EventID, req.Name, req.LeaderID))
	if err != nil {
		return nil, err
	}
	u.log.Infow("team create", "team_id", team.ID, "event_id", team.EventID, "user_id", team.LeaderID)
	return u.committedView(ctx, team, size), nil
}

// Team returns a team with resolved members and invitees.
func (u *Usecase) Team(ctx context.Context, teamID string) (*entities.TeamView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", entities.ErrInvalidArgument)
	}
	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	size, err := u.repo.GetTeamSizeBounds(ctx, team.EventID)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, team, size)
}

// Invite records a pending invite from a team member.
func (u *Usecase) Invite(ctx context.Context, req entities.InviteRequest) (view *entities.TeamView, err error) {
	defer func(start time.Time) { u.observe("invite", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	size, err := u.teamSize(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	team, err := u.repo.AddInvite(ctx, req.TeamID, req.InviterID, req.InviteeID, size.Max)
	if err != nil {
		return nil, err
	}
	u.log.Infow("team invite", "team_id", team.ID, "event_id", team.EventID, "user_id", req.InviteeID, "inviter_id", req.InviterID)
	return u.committedView(ctx, team, size), nil
}

// JoinTeam accepts a pending invite. The event's maximum team size is checked
// inside the repository transition.
func (u *Usecase) JoinTeam(ctx context.Context, req entities.MembershipRequest) (view *entities.TeamView, err error) {
	defer func(start time.Time) { u.observe("join_team", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	size, err := u.teamSize(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	team, err := u.repo.AcceptInvite(ctx, req.TeamID, req.UserID, size.Max)
	if err != nil {
		return nil, err
	}
	u.log.Infow("team join", "team_id", team.ID, "event_id", team.EventID, "user_id", req.UserID, "members", len(team.Members))
	return u.committedView(ctx, team, size), nil
}

// DeclineInvite drops a pending invite.
func (u *Usecase) DeclineInvite(ctx context.Context, req entities.MembershipRequest) (view *entities.TeamView, err error) {
	defer func(start time.Time) { u.observe("decline_invite", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	size, err := u.teamSize(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	team, err := u.repo.DeclineInvite(ctx, req.TeamID, req.UserID)
	if err != nil {
		return nil, err
	}
	u.log.Infow("team decline", "team_id", team.ID, "event_id", team.EventID, "user_id", req.UserID)
	return u.committedView(ctx, team, size), nil
}

// LeaveTeam removes a member. The leader may only leave as the last member,
// which disbands the team.
func (u *Usecase) LeaveTeam(ctx context.Context, req entities.MembershipRequest) (view *entities.TeamView, disbanded bool, err error) {
	defer func(start time.Time) { u.observe("leave_team", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	size, err := u.teamSize(ctx, req.TeamID)
	if err != nil {
		return nil, false, err
	}

	team, disbanded, err := u.repo.RemoveMember(ctx, req.TeamID, req.UserID)
	if err != nil {
		return nil, false, err
	}
	if disbanded {
		u.log.Infow("team disband", "team_id", req.TeamID, "user_id", req.UserID)
		return nil, true, nil
	}
	u.log.Infow("team leave", "team_id", team.ID, "event_id", team.EventID, "user_id", req.UserID)
	return u.committedView(ctx, team, size), false, nil
}

// DeleteTeam removes a team with its invites. Only the leader may delete.
func (u *Usecase) DeleteTeam(ctx context.Context, req entities.MembershipRequest) (err error) {
	defer func(start time.Time) { u.observe("delete_team", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := req.Validate(); err != nil {
		return err
	}
	if err := u.repo.DeleteTeam(ctx, req.TeamID, req.UserID); err != nil {
		return err
	}
	u.log.Infow("team delete", "team_id", req.TeamID, "user_id", req.UserID)
	return nil
}

// TeamsForEvent lists teams formed for an event.
func (u *Usecase) TeamsForEvent(ctx context.Context, eventID string) ([]entities.TeamView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", entities.ErrInvalidArgument)
	}
	ok, err := u.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entities.ErrEventNotFound
	}
	teams, err := u.repo.ListTeamsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return u.views(ctx, teams)
}

// TeamsForUser lists teams the user is a member of.
func (u *Usecase) TeamsForUser(ctx context.Context, userID string) ([]entities.TeamView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", entities.ErrInvalidArgument)
	}
	teams, err := u.repo.ListTeamsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.views(ctx, teams)
}

// InvitesForUser lists teams holding a pending invite for the user.
func (u *Usecase) InvitesForUser(ctx context.Context, userID string) ([]entities.TeamView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", entities.ErrInvalidArgument)
	}
	teams, err := u.repo.ListTeamsByInvitee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.views(ctx, teams)
}

func (u *Usecase) teamSize(ctx context.Context, teamID string) (entities.TeamSize, error) {
	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return entities.TeamSize{}, err
	}
	return u.repo.GetTeamSizeBounds(ctx, team.EventID)
}

// committedView builds the view of an already stored team. On a directory
// failure members and invitees carry bare ids.
func (u *Usecase) committedView(ctx context.Context, team *entities.Team, size entities.TeamSize) *entities.TeamView {
	v, err := u.view(ctx, team, size)
	if err == nil {
		return v
	}
	u.log.Warnw("team view degraded", "team_id", team.ID, "error", err)

	v = &entities.TeamView{
		Team:     *team,
		Members:  make([]entities.User, 0, len(team.Members)),
		Invitees: make([]entities.User, 0, len(team.PendingInvites)),
		Complete: team.IsComplete(size),
	}
	for _, id := range team.Members {
		v.Members = append(v.Members, entities.User{ID: id})
	}
	for _, id := range team.PendingInvites {
		v.Invitees = append(v.Invitees, entities.User{ID: id})
	}
	return v
}

// view resolves member and invitee ids through the user directory.
func (u *Usecase) view(ctx context.Context, team *entities.Team, size entities.TeamSize) (*entities.TeamView, error) {
	ids := slices.Concat(team.Members, team.PendingInvites)
	users, err := u.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entities.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}

	v := &entities.TeamView{
		Team:     *team,
		Members:  make([]entities.User, 0, len(team.Members)),
		Invitees: make([]entities.User, 0, len(team.PendingInvites)),
		Complete: team.IsComplete(size),
	}
	for _, id := range team.Members {
		if usr, ok := byID[id]; ok {
			v.Members = append(v.Members, usr)
		}
	}
	for _, id := range team.PendingInvites {
		if usr, ok := byID[id]; ok {
			v.Invitees = append(v.Invitees, usr)
		}
	}
	return v, nil
}

func (u *Usecase) views(ctx context.Context, teams []entities.Team) ([]entities.TeamView, error) {
	sizes := make(map[string]entities.TeamSize)
	res := make([]entities.TeamView, 0, len(teams))
	for i := range teams {
		size, ok := sizes[teams[i].EventID]
		if !ok {
			var err error
			if size, err = u.repo.GetTeamSizeBounds(ctx, teams[i].EventID); err != nil {
				return nil, err
			}
			sizes[teams[i].EventID] = size
		}
		v, err := u.view(ctx, &teams[i], size)
		if err != nil {
			return nil, err
		}
		res = append(res, *v)
	}
	return res, nil
}
