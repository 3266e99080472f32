// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the membership engine wraps exactly one of them.
var (
	// ErrNotFound is returned when a team, user, event, invite or membership does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a state conflict: capacity, duplicates, membership elsewhere, a lost race.
	ErrConflict = errors.New("conflict")
	// ErrPermissionDenied signals that the caller may not perform the action.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrEventNotFound is returned when an event does not exist.
	ErrEventNotFound = fmt.Errorf("event %w", ErrNotFound)
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = fmt.Errorf("team %w", ErrNotFound)
	// ErrInviteNotFound signals that the user holds no pending invite for the team.
	ErrInviteNotFound = fmt.Errorf("invite %w", ErrNotFound)
	// ErrMembershipNotFound signals that the user is not a member of the team.
	ErrMembershipNotFound = fmt.Errorf("membership %w", ErrNotFound)

	// ErrAlreadyMember signals that the user is already on this team.
	ErrAlreadyMember = fmt.Errorf("%w: user is already a member", ErrConflict)
	// ErrAlreadyInvited signals a duplicate pending invite.
	ErrAlreadyInvited = fmt.Errorf("%w: user is already invited", ErrConflict)
	// ErrOnAnotherTeam signals a violation of the one-team-per-event rule.
	ErrOnAnotherTeam = fmt.Errorf("%w: user is already on a team for this event", ErrConflict)
	// ErrTeamFull signals that the team reached the event's maximum size.
	ErrTeamFull = fmt.Errorf("%w: team is full", ErrConflict)
	// ErrLeaderCannotLeave signals that the leader tried to leave while co-members remain.
	ErrLeaderCannotLeave = fmt.Errorf("%w: leader cannot leave while other members remain", ErrConflict)

	// ErrNotTeamMember signals that a non-member tried a member-only action.
	ErrNotTeamMember = fmt.Errorf("%w: not a team member", ErrPermissionDenied)
	// ErrNotTeamLeader signals that a non-leader tried a leader-only action.
	ErrNotTeamLeader = fmt.Errorf("%w: not the team leader", ErrPermissionDenied)
)

// Kind returns the kind sentinel wrapped by err, or nil for errors outside the domain.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrPermissionDenied, ErrInvalidArgument} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
