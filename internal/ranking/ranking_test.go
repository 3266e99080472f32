package ranking

import (
	"testing"

	"team-formation/internal/entities"

	"github.com/stretchr/testify/require"
)

func user(id string, participated int, skills ...string) entities.User {
	return entities.User{ID: id, Skills: skills, Stats: entities.UserStats{EventsParticipated: participated}}
}

func ids(hits []entities.RankedUser) []string {
	res := make([]string, 0, len(hits))
	for _, h := range hits {
		res = append(res, h.User.ID)
	}
	return res
}

func TestRankBySkillOverlap(t *testing.T) {
	users := []entities.User{
		user("U1", 3, "Python", "Go"),
		user("U2", 1, "react", "python"),
	}
	q := entities.SearchQuery{Skills: []string{"python", "react"}, Limit: 10}
	require.NoError(t, q.Validate())

	hits := Rank(users, q)
	require.Equal(t, []string{"U2", "U1"}, ids(hits))
	require.Equal(t, 2, hits[0].MatchScore)
	require.Equal(t, 1, hits[1].MatchScore)
}

func TestRankExcludesZeroScoreAndCaller(t *testing.T) {
	users := []entities.User{
		user("a", 0, "go"),
		user("b", 0, "rust"),
		user("me", 9, "go"),
	}
	q := entities.SearchQuery{Skills: []string{" GO "}, ExcludeUserID: "me", Limit: 10}
	require.NoError(t, q.Validate())

	require.Equal(t, []string{"a"}, ids(Rank(users, q)))
}

func TestRankTieBreaks(t *testing.T) {
	users := []entities.User{
		user("c", 2, "go"),
		user("b", 5, "go"),
		user("a", 2, "Go", "GO"),
	}
	q := entities.SearchQuery{Skills: []string{"go"}, Limit: 10}
	require.NoError(t, q.Validate())

	hits := Rank(users, q)
	require.Equal(t, []string{"b", "a", "c"}, ids(hits))
	require.Equal(t, 1, hits[1].MatchScore, "duplicate skills count once")
}

func TestRankEmptyQueryIsDeterministic(t *testing.T) {
	users := []entities.User{
		user("z", 0),
		user("y", 4, "go"),
		user("x", 0),
		user("w", 4),
		user("me", 10),
	}
	q := entities.SearchQuery{ExcludeUserID: "me", Limit: 10}
	require.NoError(t, q.Validate())

	hits := Rank(users, q)
	require.Equal(t, []string{"w", "y", "x", "z"}, ids(hits))
	for _, h := range hits {
		require.Zero(t, h.MatchScore)
	}

	again := Rank([]entities.User{users[3], users[0], users[4], users[2], users[1]}, q)
	require.Equal(t, ids(hits), ids(again))
}

func TestRankLimit(t *testing.T) {
	users := []entities.User{user("a", 3), user("b", 2), user("c", 1)}
	q := entities.SearchQuery{Limit: 2}
	require.NoError(t, q.Validate())

	require.Equal(t, []string{"a", "b"}, ids(Rank(users, q)))
}
