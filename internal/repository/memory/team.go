package memory

import (
	"context"
	"errors"
	"time"

	"team-formation/internal/entities"
)

// lockTeam locks the team's event and returns a private copy of the team.
func (m *Memory) lockTeam(teamID string) (entities.Team, func(), error) {
	m.mu.RLock()
	t, ok := m.teams[teamID]
	m.mu.RUnlock()
	if !ok {
		return entities.Team{}, nil, entities.ErrTeamNotFound
	}

	unlock := m.lockEvent(t.EventID)

	m.mu.RLock()
	t, ok = m.teams[teamID]
	m.mu.RUnlock()
	if !ok {
		unlock()
		return entities.Team{}, nil, entities.ErrTeamNotFound
	}
	return t.Clone(), unlock, nil
}

// teamOf returns the team id userID is a member of for eventID. Callers hold the event lock.
func (m *Memory) teamOf(eventID, userID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.memberOf[memberKey{eventID: eventID, userID: userID}]
	return id, ok
}

func (m *Memory) userExists(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[userID]
	return ok
}

// store writes team and keeps the indexes in sync. Callers hold the event lock.
func (m *Memory) store(team entities.Team) *entities.Team {
	team.UpdatedAt = time.Now().UTC()

	m.mu.Lock()
	if old, ok := m.teams[team.ID]; ok {
		for _, id := range old.Members {
			delete(m.memberOf, memberKey{eventID: old.EventID, userID: id})
			unindex(m.byMember, id, old.ID)
		}
		for _, id := range old.PendingInvites {
			unindex(m.invited, id, old.ID)
		}
	}
	for _, id := range team.Members {
		m.memberOf[memberKey{eventID: team.EventID, userID: id}] = team.ID
		index(m.byMember, id, team.ID)
	}
	for _, id := range team.PendingInvites {
		index(m.invited, id, team.ID)
	}
	index(m.byEvent, team.EventID, team.ID)
	m.teams[team.ID] = team
	m.mu.Unlock()

	res := team.Clone()
	return &res
}

// remove deletes team with its invites and index entries. Callers hold the event lock.
func (m *Memory) remove(team entities.Team) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range team.Members {
		delete(m.memberOf, memberKey{eventID: team.EventID, userID: id})
		unindex(m.byMember, id, team.ID)
	}
	for _, id := range team.PendingInvites {
		unindex(m.invited, id, team.ID)
	}
	unindex(m.byEvent, team.EventID, team.ID)
	delete(m.teams, team.ID)
}

// CreateTeam stores a new team unless the leader is already on a team for the event.
func (m *Memory) CreateTeam(_ context.Context, team entities.Team) (*entities.Team, error) {
	unlock := m.lockEvent(team.EventID)
	defer unlock()

	m.mu.RLock()
	_, eventOK := m.events[team.EventID]
	_, dup := m.teams[team.ID]
	m.mu.RUnlock()

	switch {
	case !eventOK:
		return nil, entities.ErrEventNotFound
	case !m.userExists(team.LeaderID):
		return nil, entities.ErrUserNotFound
	case dup:
		return nil, entities.ErrConflict
	}
	if _, taken := m.teamOf(team.EventID, team.LeaderID); taken {
		return nil, entities.ErrOnAnotherTeam
	}

	team = team.Clone()
	team.CreatedAt = time.Now().UTC()
	res := m.store(team)
	m.log.Infow("team created", "team_id", team.ID, "event_id", team.EventID, "leader_id", team.LeaderID)
	return res, nil
}

// GetTeam returns a team by id.
func (m *Memory) GetTeam(_ context.Context, teamID string) (*entities.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.teams[teamID]
	if !ok {
		return nil, entities.ErrTeamNotFound
	}
	t = t.Clone()
	return &t, nil
}

// ListTeamsByEvent returns teams of an event ordered by creation.
func (m *Memory) ListTeamsByEvent(_ context.Context, eventID string) ([]entities.Team, error) {
	return m.indexedTeams(m.byEvent, eventID), nil
}

// ListTeamsByMember returns teams userID belongs to.
func (m *Memory) ListTeamsByMember(_ context.Context, userID string) ([]entities.Team, error) {
	return m.indexedTeams(m.byMember, userID), nil
}

func (m *Memory) indexedTeams(sets map[string]map[string]struct{}, key string) []entities.Team {
	m.mu.RLock()
	res := make([]entities.Team, 0, len(sets[key]))
	for id := range sets[key] {
		res = append(res, m.teams[id].Clone())
	}
	m.mu.RUnlock()

	sortTeams(res)
	return res
}

// ListTeamsByInvitee returns teams holding a pending invite for userID.
func (m *Memory) ListTeamsByInvitee(_ context.Context, userID string) ([]entities.Team, error) {
	return m.indexedTeams(m.invited, userID), nil
}

// AddInvite records a pending invite for inviteeID.
func (m *Memory) AddInvite(_ context.Context, teamID, inviterID, inviteeID string, maxSize int) (*entities.Team, error) {
	team, unlock, err := m.lockTeam(teamID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !m.userExists(inviteeID) {
		return nil, entities.ErrUserNotFound
	}
	if err := team.Invite(inviterID, inviteeID, maxSize); err != nil {
		return nil, err
	}
	if other, ok := m.teamOf(team.EventID, inviteeID); ok && other != team.ID {
		return nil, entities.ErrOnAnotherTeam
	}

	res := m.store(team)
	m.log.Infow("invite added", "team_id", teamID, "inviter_id", inviterID, "invitee_id", inviteeID)
	return res, nil
}

// AcceptInvite moves userID from invites to members if the team has room.
func (m *Memory) AcceptInvite(_ context.Context, teamID, userID string, maxSize int) (*entities.Team, error) {
	team, unlock, err := m.lockTeam(teamID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !team.IsInvited(userID) {
		return nil, entities.ErrInviteNotFound
	}
	if other, ok := m.teamOf(team.EventID, userID); ok && other != team.ID {
		return nil, entities.ErrOnAnotherTeam
	}
	if err := team.Accept(userID, maxSize); err != nil {
		if errors.Is(err, entities.ErrTeamFull) {
			team.DropInvite(userID)
			m.store(team)
			m.log.Infow("invite dropped, team full", "team_id", teamID, "user_id", userID)
		}
		return nil, err
	}

	res := m.store(team)
	m.log.Infow("invite accepted", "team_id", teamID, "user_id", userID, "members", len(team.Members))
	return res, nil
}

// DeclineInvite removes the pending invite of userID.
func (m *Memory) DeclineInvite(_ context.Context, teamID, userID string) (*entities.Team, error) {
	team, unlock, err := m.lockTeam(teamID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := team.Decline(userID); err != nil {
		return nil, err
	}

	res := m.store(team)
	m.log.Infow("invite declined", "team_id", teamID, "user_id", userID)
	return res, nil
}

// RemoveMember removes userID from the team, disbanding it when the last member is the leader.
func (m *Memory) RemoveMember(_ context.Context, teamID, userID string) (*entities.Team, bool, error) {
	team, unlock, err := m.lockTeam(teamID)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	disband, err := team.Leave(userID)
	if err != nil {
		return nil, false, err
	}
	if disband {
		m.remove(team)
		m.log.Infow("team disbanded", "team_id", teamID, "leader_id", userID)
		return nil, true, nil
	}

	res := m.store(team)
	m.log.Infow("member left", "team_id", teamID, "user_id", userID)
	return res, false, nil
}

// DeleteTeam removes the team if requesterID is its leader.
func (m *Memory) DeleteTeam(_ context.Context, teamID, requesterID string) error {
	team, unlock, err := m.lockTeam(teamID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := team.AuthorizeDelete(requesterID); err != nil {
		return err
	}

	m.remove(team)
	m.log.Infow("team deleted", "team_id", teamID, "requester_id", requesterID)
	return nil
}
