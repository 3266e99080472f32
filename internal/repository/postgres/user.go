package postgres

import (
	"context"
	"errors"
	"fmt"

	"team-formation/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	userColumns      = `id, username, email, skills, events_participated, events_won, created_at`
	selectUserQuery  = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	selectUsersQuery = `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1::text[])`
	listUsersQuery   = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	userSkillsQuery  = `SELECT skills FROM users WHERE id=$1`
	userStatsQuery   = `SELECT events_participated, events_won FROM users WHERE id=$1`

	teamSizeQuery    = `SELECT team_size_min, team_size_max FROM events WHERE id=$1`
	eventExistsQuery = `SELECT EXISTS(SELECT 1 FROM events WHERE id=$1)`
)

func scanUser(row pgx.Row) (entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Skills, &u.Stats.EventsParticipated, &u.Stats.EventsWon, &u.CreatedAt)
	return u, err
}

// GetUser returns a user by id.
func (p *Postgres) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserQuery, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetUsersByIDs returns known users in the order of ids.
func (p *Postgres) GetUsersByIDs(ctx context.Context, ids []string) ([]entities.User, error) {
	if len(ids) == 0 {
		return []entities.User{}, nil
	}

	rows, err := p.db.Query(ctx, selectUsersQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]entities.User, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	res := make([]entities.User, 0, len(byID))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

// ListUsers returns every user ordered by id.
func (p *Postgres) ListUsers(ctx context.Context) ([]entities.User, error) {
	rows, err := p.db.Query(ctx, listUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			p.log.Errorw("failed to scan user", "error", err)
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// GetUserSkills returns the stored skills of a user.
func (p *Postgres) GetUserSkills(ctx context.Context, userID string) ([]string, error) {
	var skills []string
	if err := p.db.QueryRow(ctx, userSkillsQuery, userID).Scan(&skills); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user skills: %w", err)
	}
	return skills, nil
}

// GetUserStats returns participation counters of a user.
func (p *Postgres) GetUserStats(ctx context.Context, userID string) (entities.UserStats, error) {
	var s entities.UserStats
	if err := p.db.QueryRow(ctx, userStatsQuery, userID).Scan(&s.EventsParticipated, &s.EventsWon); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, entities.ErrUserNotFound
		}
		return s, fmt.Errorf("get user stats: %w", err)
	}
	return s, nil
}

// GetTeamSizeBounds returns the team size bounds of an event.
func (p *Postgres) GetTeamSizeBounds(ctx context.Context, eventID string) (entities.TeamSize, error) {
	var size entities.TeamSize
	if err := p.db.QueryRow(ctx, teamSizeQuery, eventID).Scan(&size.Min, &size.Max); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return size, entities.ErrEventNotFound
		}
		return size, fmt.Errorf("get team size: %w", err)
	}
	return size, nil
}

// EventExists reports whether the event is known.
func (p *Postgres) EventExists(ctx context.Context, eventID string) (bool, error) {
	var ok bool
	if err := p.db.QueryRow(ctx, eventExistsQuery, eventID).Scan(&ok); err != nil {
		return false, fmt.Errorf("event exists: %w", err)
	}
	return ok, nil
}
