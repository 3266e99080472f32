package postgres

import (
	"context"
	"errors"
	"fmt"

	"team-formation/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	selectTeamsQuery = `
SELECT t.id, t.event_id, t.name, t.leader_id, t.created_at, t.updated_at,
       COALESCE((SELECT array_agg(m.user_id ORDER BY m.seq) FROM team_members m WHERE m.team_id = t.id), '{}'),
       COALESCE((SELECT array_agg(i.user_id ORDER BY i.seq) FROM team_invites i WHERE i.team_id = t.id), '{}')
FROM teams t`
	orderTeams = ` ORDER BY t.created_at, t.id`

	selectTeamByIDQuery      = selectTeamsQuery + ` WHERE t.id = $1`
	selectTeamsByEventQuery  = selectTeamsQuery + ` WHERE t.event_id = $1` + orderTeams
	selectTeamsByMemberQuery = selectTeamsQuery +
		` WHERE EXISTS (SELECT 1 FROM team_members m WHERE m.team_id = t.id AND m.user_id = $1)` + orderTeams
	selectTeamsByInviteeQuery = selectTeamsQuery +
		` WHERE EXISTS (SELECT 1 FROM team_invites i WHERE i.team_id = t.id AND i.user_id = $1)` + orderTeams

	lockTeamQuery     = `SELECT id FROM teams WHERE id = $1 FOR UPDATE`
	insertTeamQuery   = `INSERT INTO teams(id, event_id, name, leader_id) VALUES ($1, $2, $3, $4)`
	touchTeamQuery    = `UPDATE teams SET updated_at = NOW() WHERE id = $1`
	deleteTeamQuery   = `DELETE FROM teams WHERE id = $1`
	insertMemberQuery = `INSERT INTO team_members(team_id, event_id, user_id) VALUES ($1, $2, $3)`
	deleteMemberQuery = `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`
	memberTeamQuery   = `SELECT team_id FROM team_members WHERE event_id = $1 AND user_id = $2`
	insertInviteQuery = `INSERT INTO team_invites(team_id, user_id, invited_by) VALUES ($1, $2, $3)`
	deleteInviteQuery = `DELETE FROM team_invites WHERE team_id = $1 AND user_id = $2`
	userExistsQuery   = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanTeam(row pgx.Row) (entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.EventID, &t.Name, &t.LeaderID, &t.CreatedAt, &t.UpdatedAt, &t.Members, &t.PendingInvites)
	return t, err
}

func getTeam(ctx context.Context, q querier, teamID string) (*entities.Team, error) {
	t, err := scanTeam(q.QueryRow(ctx, selectTeamByIDQuery, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// lockTeam takes a row lock on the team and returns its current state.
func lockTeam(ctx context.Context, tx pgx.Tx, teamID string) (*entities.Team, error) {
	var id string
	if err := tx.QueryRow(ctx, lockTeamQuery, teamID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("lock team: %w", err)
	}
	return getTeam(ctx, tx, teamID)
}

// memberTeam returns the team userID has joined for eventID, if any.
func memberTeam(ctx context.Context, tx pgx.Tx, eventID, userID string) (string, bool, error) {
	var teamID string
	if err := tx.QueryRow(ctx, memberTeamQuery, eventID, userID).Scan(&teamID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("member team: %w", err)
	}
	return teamID, true, nil
}

func (p *Postgres) listTeams(ctx context.Context, query, arg string) ([]entities.Team, error) {
	rows, err := p.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			p.log.Errorw("failed to scan team", "error", err)
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// CreateTeam inserts the team with its leader as first member.
func (p *Postgres) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	var created *entities.Team
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertTeamQuery, team.ID, team.EventID, team.Name, team.LeaderID); err != nil {
			return mapPgErr(err, "insert team")
		}
		if _, err := tx.Exec(ctx, insertMemberQuery, team.ID, team.EventID, team.LeaderID); err != nil {
			return mapPgErr(err, "insert leader")
		}

		var err error
		created, err = getTeam(ctx, tx, team.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("team created", "team_id", team.ID, "event_id", team.EventID, "leader_id", team.LeaderID)
	return created, nil
}

// GetTeam returns a team by id.
func (p *Postgres) GetTeam(ctx context.Context, teamID string) (*entities.Team, error) {
	return getTeam(ctx, p.db, teamID)
}

// ListTeamsByEvent returns teams of an event ordered by creation.
func (p *Postgres) ListTeamsByEvent(ctx context.Context, eventID string) ([]entities.Team, error) {
	return p.listTeams(ctx, selectTeamsByEventQuery, eventID)
}

// ListTeamsByMember returns teams userID belongs to.
func (p *Postgres) ListTeamsByMember(ctx context.Context, userID string) ([]entities.Team, error) {
	return p.listTeams(ctx, selectTeamsByMemberQuery, userID)
}

// ListTeamsByInvitee returns teams holding a pending invite for userID.
func (p *Postgres) ListTeamsByInvitee(ctx context.Context, userID string) ([]entities.Team, error) {
	return p.listTeams(ctx, selectTeamsByInviteeQuery, userID)
}

// AddInvite records a pending invite for inviteeID.
func (p *Postgres) AddInvite(ctx context.Context, teamID, inviterID, inviteeID string, maxSize int) (*entities.Team, error) {
	var res *entities.Team
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		team, err := lockTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, userExistsQuery, inviteeID).Scan(&exists); err != nil {
			return fmt.Errorf("invitee exists: %w", err)
		}
		if !exists {
			return entities.ErrUserNotFound
		}
		if err := team.Invite(inviterID, inviteeID, maxSize); err != nil {
			return err
		}
		other, ok, err := memberTeam(ctx, tx, team.EventID, inviteeID)
		if err != nil {
			return err
		}
		if ok && other != team.ID {
			return entities.ErrOnAnotherTeam
		}

		if _, err := tx.Exec(ctx, insertInviteQuery, teamID, inviteeID, inviterID); err != nil {
			return mapPgErr(err, "insert invite")
		}
		if _, err := tx.Exec(ctx, touchTeamQuery, teamID); err != nil {
			return fmt.Errorf("touch team: %w", err)
		}
		res, err = getTeam(ctx, tx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("invite added", "team_id", teamID, "inviter_id", inviterID, "invitee_id", inviteeID)
	return res, nil
}

// AcceptInvite moves userID from invites to members if the team has room.
// When the team is full the invite is deleted and ErrTeamFull returned.
func (p *Postgres) AcceptInvite(ctx context.Context, teamID, userID string, maxSize int) (*entities.Team, error) {
	var res *entities.Team
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		team, err := lockTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if !team.IsInvited(userID) {
			return entities.ErrInviteNotFound
		}
		other, ok, err := memberTeam(ctx, tx, team.EventID, userID)
		if err != nil {
			return err
		}
		if ok && other != team.ID {
			return entities.ErrOnAnotherTeam
		}

		acceptErr := team.Accept(userID, maxSize)
		if acceptErr != nil && !errors.Is(acceptErr, entities.ErrTeamFull) {
			return acceptErr
		}
		if _, err := tx.Exec(ctx, deleteInviteQuery, teamID, userID); err != nil {
			return fmt.Errorf("delete invite: %w", err)
		}
		if acceptErr != nil {
			p.log.Infow("invite dropped, team full", "team_id", teamID, "user_id", userID)
			return commitErr{err: acceptErr}
		}

		if _, err := tx.Exec(ctx, insertMemberQuery, teamID, team.EventID, userID); err != nil {
			return mapPgErr(err, "insert member")
		}
		if _, err := tx.Exec(ctx, touchTeamQuery, teamID); err != nil {
			return fmt.Errorf("touch team: %w", err)
		}
		res, err = getTeam(ctx, tx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("invite accepted", "team_id", teamID, "user_id", userID, "members", len(res.Members))
	return res, nil
}

// DeclineInvite removes the pending invite of userID.
func (p *Postgres) DeclineInvite(ctx context.Context, teamID, userID string) (*entities.Team, error) {
	var res *entities.Team
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		team, err := lockTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if err := team.Decline(userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, deleteInviteQuery, teamID, userID); err != nil {
			return fmt.Errorf("delete invite: %w", err)
		}
		if _, err := tx.Exec(ctx, touchTeamQuery, teamID); err != nil {
			return fmt.Errorf("touch team: %w", err)
		}
		res, err = getTeam(ctx, tx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("invite declined", "team_id", teamID, "user_id", userID)
	return res, nil
}

// RemoveMember removes userID from the team, disbanding it when the last member is the leader.
func (p *Postgres) RemoveMember(ctx context.Context, teamID, userID string) (*entities.Team, bool, error) {
	var (
		res       *entities.Team
		disbanded bool
	)
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		team, err := lockTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		disbanded, err = team.Leave(userID)
		if err != nil {
			return err
		}
		if disbanded {
			if _, err := tx.Exec(ctx, deleteTeamQuery, teamID); err != nil {
				return fmt.Errorf("delete team: %w", err)
			}
			return nil
		}

		if _, err := tx.Exec(ctx, deleteMemberQuery, teamID, userID); err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		if _, err := tx.Exec(ctx, touchTeamQuery, teamID); err != nil {
			return fmt.Errorf("touch team: %w", err)
		}
		res, err = getTeam(ctx, tx, teamID)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	if disbanded {
		p.log.Infow("team disbanded", "team_id", teamID, "leader_id", userID)
		return nil, true, nil
	}
	p.log.Infow("member left", "team_id", teamID, "user_id", userID)
	return res, false, nil
}

// DeleteTeam removes the team if requesterID is its leader.
func (p *Postgres) DeleteTeam(ctx context.Context, teamID, requesterID string) error {
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		team, err := lockTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if err := team.AuthorizeDelete(requesterID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, deleteTeamQuery, teamID); err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.log.Infow("team deleted", "team_id", teamID, "requester_id", requesterID)
	return nil
}
