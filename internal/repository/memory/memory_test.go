package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"team-formation/internal/entities"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRepo(t *testing.T, maxSize int, users ...string) *Memory {
	t.Helper()

	repo := New(zap.NewNop().Sugar())
	repo.PutEvent(entities.Event{ID: "e1", TeamSize: entities.TeamSize{Min: 1, Max: maxSize}})
	repo.PutEvent(entities.Event{ID: "e2", TeamSize: entities.TeamSize{Min: 1, Max: maxSize}})
	for _, id := range users {
		repo.PutUser(entities.User{ID: id, Username: id})
	}
	return repo
}

func TestCreateTeam(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 3, "lead", "other")

	created, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "lead"))
	require.NoError(t, err)
	require.Equal(t, []string{"lead"}, created.Members)
	require.False(t, created.CreatedAt.IsZero())

	_, err = repo.CreateTeam(ctx, entities.NewTeam("t2", "e1", "beta", "lead"))
	require.ErrorIs(t, err, entities.ErrOnAnotherTeam)

	_, err = repo.CreateTeam(ctx, entities.NewTeam("t3", "e2", "gamma", "lead"))
	require.NoError(t, err, "one team per event, not per user")

	_, err = repo.CreateTeam(ctx, entities.NewTeam("t4", "missing", "delta", "other"))
	require.ErrorIs(t, err, entities.ErrEventNotFound)

	_, err = repo.CreateTeam(ctx, entities.NewTeam("t5", "e1", "eps", "ghost"))
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	teams, err := repo.ListTeamsByMember(ctx, "lead")
	require.NoError(t, err)
	require.Len(t, teams, 2)
}

func TestTeamScenario(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 3, "L", "A", "B", "C")

	_, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "L"))
	require.NoError(t, err)

	_, err = repo.AddInvite(ctx, "t1", "L", "A", 3)
	require.NoError(t, err)
	_, err = repo.AddInvite(ctx, "t1", "L", "B", 3)
	require.NoError(t, err)

	_, err = repo.AcceptInvite(ctx, "t1", "A", 3)
	require.NoError(t, err)
	team, err := repo.AcceptInvite(ctx, "t1", "B", 3)
	require.NoError(t, err)
	require.Equal(t, []string{"L", "A", "B"}, team.Members)
	require.Empty(t, team.PendingInvites)

	_, err = repo.AddInvite(ctx, "t1", "A", "C", 3)
	require.ErrorIs(t, err, entities.ErrTeamFull)

	_, _, err = repo.RemoveMember(ctx, "t1", "L")
	require.ErrorIs(t, err, entities.ErrLeaderCannotLeave)
}

func TestAcceptOnFullTeamDropsInvite(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 2, "L", "A", "B")

	_, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "L"))
	require.NoError(t, err)
	_, err = repo.AddInvite(ctx, "t1", "L", "A", 2)
	require.NoError(t, err)
	_, err = repo.AddInvite(ctx, "t1", "L", "B", 2)
	require.NoError(t, err, "outstanding invites are not capped")

	_, err = repo.AcceptInvite(ctx, "t1", "A", 2)
	require.NoError(t, err)
	_, err = repo.AcceptInvite(ctx, "t1", "B", 2)
	require.ErrorIs(t, err, entities.ErrTeamFull)

	team, err := repo.GetTeam(ctx, "t1")
	require.NoError(t, err)
	require.False(t, team.IsInvited("B"), "invite to a full team is dropped")
	require.Len(t, team.Members, 2)
}

func TestInviteRules(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 4, "L1", "L2", "A", "B")

	_, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "L1"))
	require.NoError(t, err)
	_, err = repo.CreateTeam(ctx, entities.NewTeam("t2", "e1", "beta", "L2"))
	require.NoError(t, err)

	_, err = repo.AddInvite(ctx, "missing", "L1", "A", 4)
	require.ErrorIs(t, err, entities.ErrTeamNotFound)
	_, err = repo.AddInvite(ctx, "t1", "L1", "ghost", 4)
	require.ErrorIs(t, err, entities.ErrUserNotFound)
	_, err = repo.AddInvite(ctx, "t1", "B", "A", 4)
	require.ErrorIs(t, err, entities.ErrPermissionDenied)
	_, err = repo.AddInvite(ctx, "t1", "L1", "L2", 4)
	require.ErrorIs(t, err, entities.ErrOnAnotherTeam)

	_, err = repo.AddInvite(ctx, "t1", "L1", "A", 4)
	require.NoError(t, err)
	_, err = repo.AddInvite(ctx, "t1", "L1", "A", 4)
	require.ErrorIs(t, err, entities.ErrAlreadyInvited)

	// A is invited by both teams, joins t2 first; the t1 invite can no longer be accepted.
	_, err = repo.AddInvite(ctx, "t2", "L2", "A", 4)
	require.NoError(t, err)
	_, err = repo.AcceptInvite(ctx, "t2", "A", 4)
	require.NoError(t, err)
	_, err = repo.AcceptInvite(ctx, "t1", "A", 4)
	require.ErrorIs(t, err, entities.ErrOnAnotherTeam)

	invites, err := repo.ListTeamsByInvitee(ctx, "A")
	require.NoError(t, err)
	require.Len(t, invites, 1)
	require.Equal(t, "t1", invites[0].ID)

	// after leaving t2 the pending t1 invite is usable again
	_, _, err = repo.RemoveMember(ctx, "t2", "A")
	require.NoError(t, err)
	_, err = repo.AcceptInvite(ctx, "t1", "A", 4)
	require.NoError(t, err)
}

func TestDeclineThenReinviteJoin(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 3, "L", "A")

	_, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "L"))
	require.NoError(t, err)

	_, err = repo.AddInvite(ctx, "t1", "L", "A", 3)
	require.NoError(t, err)
	_, err = repo.DeclineInvite(ctx, "t1", "A")
	require.NoError(t, err)
	_, err = repo.DeclineInvite(ctx, "t1", "A")
	require.ErrorIs(t, err, entities.ErrInviteNotFound)

	_, err = repo.AddInvite(ctx, "t1", "L", "A", 3)
	require.NoError(t, err)
	team, err := repo.AcceptInvite(ctx, "t1", "A", 3)
	require.NoError(t, err)
	require.True(t, team.IsMember("A"))
}

func TestDeleteAndDisband(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 3, "L", "A")

	_, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "L"))
	require.NoError(t, err)
	_, err = repo.AddInvite(ctx, "t1", "L", "A", 3)
	require.NoError(t, err)
	_, err = repo.AcceptInvite(ctx, "t1", "A", 3)
	require.NoError(t, err)

	require.ErrorIs(t, repo.DeleteTeam(ctx, "t1", "A"), entities.ErrPermissionDenied)
	require.NoError(t, repo.DeleteTeam(ctx, "t1", "L"))
	_, err = repo.GetTeam(ctx, "t1")
	require.ErrorIs(t, err, entities.ErrTeamNotFound)

	// membership index is released with the team
	_, err = repo.CreateTeam(ctx, entities.NewTeam("t2", "e1", "beta", "A"))
	require.NoError(t, err)

	_, disbanded, err := repo.RemoveMember(ctx, "t2", "A")
	require.NoError(t, err)
	require.True(t, disbanded)
	teams, err := repo.ListTeamsByEvent(ctx, "e1")
	require.NoError(t, err)
	require.Empty(t, teams)
}

func TestConcurrentJoinRespectsCapacity(t *testing.T) {
	ctx := context.Background()
	const (
		maxSize = 4
		joiners = 12
	)

	users := []string{"L"}
	for i := 0; i < joiners; i++ {
		users = append(users, fmt.Sprintf("u%d", i))
	}
	repo := newRepo(t, maxSize, users...)

	_, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "L"))
	require.NoError(t, err)
	for _, u := range users[1:] {
		_, err := repo.AddInvite(ctx, "t1", "L", u, maxSize)
		require.NoError(t, err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for _, u := range users[1:] {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := repo.AcceptInvite(ctx, "t1", id, maxSize)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case entities.Kind(err) == entities.ErrConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(u)
	}
	wg.Wait()

	require.Equal(t, maxSize-1, succeeded)
	require.Equal(t, joiners-(maxSize-1), conflicts)

	team, err := repo.GetTeam(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, team.Members, maxSize)
	require.Empty(t, team.PendingInvites)
}

func TestConcurrentCreateOneTeamPerEvent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 3, "L")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = repo.CreateTeam(ctx, entities.NewTeam(fmt.Sprintf("t%d", idx), "e1", "alpha", "L"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, entities.ErrOnAnotherTeam)
	}
	require.Equal(t, 1, ok)
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `{
  "users": [{"id": "u1", "username": "ann", "skills": ["Go", "go", "SQL"], "events_participated": 2}],
  "events": [{"id": "e1", "name": "hack", "team_size_min": 2, "team_size_max": 4,
              "starts_at": "2026-01-01T00:00:00Z", "ends_at": "2026-01-02T00:00:00Z"}]
}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	repo := New(zap.NewNop().Sugar())
	require.NoError(t, repo.LoadSeed(path))

	skills, err := repo.GetUserSkills(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"go", "sql"}, skills)

	stats, err := repo.GetUserStats(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 2, stats.EventsParticipated)

	size, err := repo.GetTeamSizeBounds(context.Background(), "e1")
	require.NoError(t, err)
	require.Equal(t, entities.TeamSize{Min: 2, Max: 4}, size)

	_, err = repo.GetTeamSizeBounds(context.Background(), "nope")
	require.ErrorIs(t, err, entities.ErrEventNotFound)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"events":[{"id":"x","team_size_min":3,"team_size_max":1,
		"starts_at":"`+time.Now().UTC().Format(time.RFC3339)+`","ends_at":"`+time.Now().UTC().Format(time.RFC3339)+`"}]}`), 0o600))
	require.ErrorIs(t, repo.LoadSeed(bad), entities.ErrInvalidArgument)
}

func TestMemberAndInviteIndexes(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, 3, "l1", "l2", "a", "b")

	_, err := repo.CreateTeam(ctx, entities.NewTeam("t1", "e1", "alpha", "l1"))
	require.NoError(t, err)
	_, err = repo.CreateTeam(ctx, entities.NewTeam("t2", "e2", "beta", "l2"))
	require.NoError(t, err)

	for _, team := range []struct{ id, lead string }{{"t1", "l1"}, {"t2", "l2"}} {
		_, err = repo.AddInvite(ctx, team.id, team.lead, "a", 3)
		require.NoError(t, err)
		_, err = repo.AddInvite(ctx, team.id, team.lead, "b", 3)
		require.NoError(t, err)
	}

	teamIDs := func(teams []entities.Team, err error) []string {
		t.Helper()
		require.NoError(t, err)
		ids := make([]string, 0, len(teams))
		for _, team := range teams {
			ids = append(ids, team.ID)
		}
		return ids
	}

	require.Equal(t, []string{"t1", "t2"}, teamIDs(repo.ListTeamsByInvitee(ctx, "a")))

	_, err = repo.AcceptInvite(ctx, "t1", "a", 3)
	require.NoError(t, err)
	_, err = repo.AcceptInvite(ctx, "t2", "a", 3)
	require.NoError(t, err)
	require.Equal(t, []string{"t1", "t2"}, teamIDs(repo.ListTeamsByMember(ctx, "a")))
	require.Empty(t, teamIDs(repo.ListTeamsByInvitee(ctx, "a")))

	_, _, err = repo.RemoveMember(ctx, "t1", "a")
	require.NoError(t, err)
	require.Equal(t, []string{"t2"}, teamIDs(repo.ListTeamsByMember(ctx, "a")))

	_, err = repo.DeclineInvite(ctx, "t1", "b")
	require.NoError(t, err)
	require.Equal(t, []string{"t2"}, teamIDs(repo.ListTeamsByInvitee(ctx, "b")))

	require.NoError(t, repo.DeleteTeam(ctx, "t2", "l2"))
	require.Empty(t, teamIDs(repo.ListTeamsByMember(ctx, "a")))
	require.Empty(t, teamIDs(repo.ListTeamsByInvitee(ctx, "b")))
	require.Empty(t, teamIDs(repo.ListTeamsByMember(ctx, "l2")))
	require.Equal(t, []string{"t1"}, teamIDs(repo.ListTeamsByMember(ctx, "l1")))
	require.Equal(t, []string{"t1"}, teamIDs(repo.ListTeamsByEvent(ctx, "e1")))
	require.Empty(t, teamIDs(repo.ListTeamsByEvent(ctx, "e2")))
}

func TestLoadBundledSeed(t *testing.T) {
	repo := New(zap.NewNop().Sugar())
	require.NoError(t, repo.LoadSeed(filepath.Join("..", "..", "..", "db", "seed.json")))

	size, err := repo.GetTeamSizeBounds(context.Background(), "hack-2026")
	require.NoError(t, err)
	require.Equal(t, entities.TeamSize{Min: 2, Max: 4}, size)

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 5)
}
