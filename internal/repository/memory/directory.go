package memory

import (
	"context"
	"slices"
	"strings"

	"team-formation/internal/entities"
)

func cloneUser(u entities.User) entities.User {
	u.Skills = slices.Clone(u.Skills)
	return u
}

// GetUser returns a user by id.
func (m *Memory) GetUser(_ context.Context, userID string) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

// GetUsersByIDs returns known users in the order of ids.
func (m *Memory) GetUsersByIDs(_ context.Context, ids []string) ([]entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]entities.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			res = append(res, cloneUser(u))
		}
	}
	return res, nil
}

// ListUsers returns a snapshot of all users ordered by id.
func (m *Memory) ListUsers(_ context.Context) ([]entities.User, error) {
	m.mu.RLock()
	res := make([]entities.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, cloneUser(u))
	}
	m.mu.RUnlock()

	slices.SortFunc(res, func(a, b entities.User) int { return strings.Compare(a.ID, b.ID) })
	return res, nil
}

// GetUserSkills returns normalized skills of a user.
func (m *Memory) GetUserSkills(ctx context.Context, userID string) ([]string, error) {
	u, err := m.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Skills, nil
}

// GetUserStats returns participation counters of a user.
func (m *Memory) GetUserStats(ctx context.Context, userID string) (entities.UserStats, error) {
	u, err := m.GetUser(ctx, userID)
	if err != nil {
		return entities.UserStats{}, err
	}
	return u.Stats, nil
}

// GetTeamSizeBounds returns the team size bounds of an event.
func (m *Memory) GetTeamSizeBounds(_ context.Context, eventID string) (entities.TeamSize, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[eventID]
	if !ok {
		return entities.TeamSize{}, entities.ErrEventNotFound
	}
	return e.TeamSize, nil
}

// EventExists reports whether the event is known.
func (m *Memory) EventExists(_ context.Context, eventID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.events[eventID]
	return ok, nil
}
