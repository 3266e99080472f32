// Package entities contains core business entities.
package entities

import (
	"slices"
	"time"
)

// Team is a named group of users formed for exactly one event.
//
// Members keeps join order with the leader first. A user id is never in both
// Members and PendingInvites.
type Team struct {
	ID             string
	EventID        string
	Name           string
	LeaderID       string
	Members        []string
	PendingInvites []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TeamView is a team with member and invitee identities resolved.
type TeamView struct {
	Team     Team
	Members  []User
	Invitees []User
	Complete bool
}

// NewTeam builds a fresh team led by leaderID.
func NewTeam(id, eventID, name, leaderID string) Team {
	return Team{
		ID:             id,
		EventID:        eventID,
		Name:           name,
		LeaderID:       leaderID,
		Members:        []string{leaderID},
		PendingInvites: []string{},
	}
}

// IsMember reports whether userID is on the team.
func (t *Team) IsMember(userID string) bool {
	return slices.Contains(t.Members, userID)
}

// IsInvited reports whether userID holds a pending invite.
func (t *Team) IsInvited(userID string) bool {
	return slices.Contains(t.PendingInvites, userID)
}

// IsComplete reports whether the member count is within the size bounds.
func (t *Team) IsComplete(size TeamSize) bool {
	n := len(t.Members)
	return n >= size.Min && n <= size.Max
}

// Invite records a pending invite. Any member may invite. Outstanding invites
// are not capped; only a team that already has maxSize members refuses.
func (t *Team) Invite(inviterID, inviteeID string, maxSize int) error {
	if !t.IsMember(inviterID) {
		return ErrNotTeamMember
	}
	if t.IsMember(inviteeID) {
		return ErrAlreadyMember
	}
	if t.IsInvited(inviteeID) {
		return ErrAlreadyInvited
	}
	if len(t.Members) >= maxSize {
		return ErrTeamFull
	}
	t.PendingInvites = append(t.PendingInvites, inviteeID)
	return nil
}

// Accept moves userID from PendingInvites to Members. The team is left
// untouched on error; callers drop the invite themselves on ErrTeamFull.
func (t *Team) Accept(userID string, maxSize int) error {
	if !t.IsInvited(userID) {
		return ErrInviteNotFound
	}
	if len(t.Members) >= maxSize {
		return ErrTeamFull
	}
	t.DropInvite(userID)
	t.Members = append(t.Members, userID)
	return nil
}

// Decline removes the pending invite of userID.
func (t *Team) Decline(userID string) error {
	if !t.IsInvited(userID) {
		return ErrInviteNotFound
	}
	t.DropInvite(userID)
	return nil
}

// DropInvite removes userID from PendingInvites if present.
func (t *Team) DropInvite(userID string) {
	t.PendingInvites = slices.DeleteFunc(t.PendingInvites, func(id string) bool { return id == userID })
}

// Leave removes userID from Members. It reports disband=true when the leader
// leaves as the last member; the caller then deletes the team.
func (t *Team) Leave(userID string) (disband bool, err error) {
	if !t.IsMember(userID) {
		return false, ErrMembershipNotFound
	}
	if userID == t.LeaderID {
		if len(t.Members) > 1 {
			return false, ErrLeaderCannotLeave
		}
		return true, nil
	}
	t.Members = slices.DeleteFunc(t.Members, func(id string) bool { return id == userID })
	return false, nil
}

// AuthorizeDelete allows only the leader to delete the team.
func (t *Team) AuthorizeDelete(requesterID string) error {
	if requesterID != t.LeaderID {
		return ErrNotTeamLeader
	}
	return nil
}

// Clone returns a deep copy.
func (t Team) Clone() Team {
	t.Members = slices.Clone(t.Members)
	t.PendingInvites = slices.Clone(t.PendingInvites)
	return t
}
