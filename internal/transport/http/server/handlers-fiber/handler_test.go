package handlers_fiber

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"team-formation/config"
	"team-formation/internal/dto"
	"team-formation/internal/entities"
	"team-formation/internal/repository/memory"
	"team-formation/internal/transport/http/middleware"
	"team-formation/internal/usecase"
	"team-formation/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "handler-secret"

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop().Sugar()

	repo := memory.New(log)
	repo.PutEvent(entities.Event{ID: "e1", TeamSize: entities.TeamSize{Min: 2, Max: 3}})
	for _, u := range []entities.User{
		{ID: "L", Username: "lead", Skills: []string{"go"}},
		{ID: "A", Username: "ann", Skills: []string{"Python", "Go"}, Stats: entities.UserStats{EventsParticipated: 3}},
		{ID: "B", Username: "bob", Skills: []string{"react", "python"}, Stats: entities.UserStats{EventsParticipated: 1}},
		{ID: "C", Username: "cid"},
	} {
		repo.PutUser(u)
	}

	uc := usecase.New(log, repo, time.Second, metrics.Nop{})
	h := NewHandler(log, uc, config.SearchConfig{DefaultLimit: 10, MaxLimit: 50})

	app := fiber.New()
	RegisterHandlers(app, h, middleware.Auth(log, testSecret))
	return &testServer{t: t, app: app}
}

func (s *testServer) do(method, path, userID string, body interface{}) (int, []byte) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if userID != "" {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			UserID:           userID,
		}).SignedString([]byte(testSecret))
		require.NoError(s.t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, raw).Error.Code
}

func TestTeamLifecycle(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(http.MethodPost, "/api/teams", "", dto.CreateTeamRequest{EventID: "e1", Name: "alpha"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, raw := s.do(http.MethodPost, "/api/teams", "L", dto.CreateTeamRequest{EventID: "e1"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.ErrCodeInvalidArgument, errorCode(t, raw))

	status, raw = s.do(http.MethodPost, "/api/teams", "L", dto.CreateTeamRequest{EventID: "nope", Name: "alpha"})
	require.Equal(t, http.StatusNotFound, status)

	status, raw = s.do(http.MethodPost, "/api/teams", "L", dto.CreateTeamRequest{EventID: "e1", Name: "alpha"})
	require.Equal(t, http.StatusCreated, status)
	team := decode[dto.TeamResponse](t, raw).Team
	require.NotEmpty(t, team.TeamID)
	require.Equal(t, "L", team.LeaderID)
	require.False(t, team.Complete)
	base := "/api/teams/" + team.TeamID

	for _, invitee := range []string{"A", "B"} {
		status, _ = s.do(http.MethodPost, base+"/invites", "L", dto.InviteRequest{UserID: invitee})
		require.Equal(t, http.StatusCreated, status)
	}
	status, raw = s.do(http.MethodPost, base+"/invites", "C", dto.InviteRequest{UserID: "A"})
	require.Equal(t, http.StatusForbidden, status)

	status, raw = s.do(http.MethodGet, "/api/me/invites", "A", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, decode[dto.TeamsResponse](t, raw).Teams, 1)

	status, _ = s.do(http.MethodPost, base+"/join", "A", nil)
	require.Equal(t, http.StatusOK, status)
	status, raw = s.do(http.MethodPost, base+"/join", "B", nil)
	require.Equal(t, http.StatusOK, status)
	team = decode[dto.TeamResponse](t, raw).Team
	require.Len(t, team.Members, 3)
	require.True(t, team.Complete)

	status, raw = s.do(http.MethodPost, base+"/invites", "A", dto.InviteRequest{UserID: "C"})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, dto.ErrCodeTeamFull, errorCode(t, raw))

	status, raw = s.do(http.MethodPost, base+"/leave", "L", nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, dto.ErrCodeLeaderLeave, errorCode(t, raw))

	status, raw = s.do(http.MethodPost, base+"/leave", "B", nil)
	require.Equal(t, http.StatusOK, status)
	leave := decode[dto.LeaveResponse](t, raw)
	require.False(t, leave.Disbanded)
	require.Len(t, leave.Team.Members, 2)

	status, raw = s.do(http.MethodGet, "/api/events/e1/teams", "C", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, decode[dto.TeamsResponse](t, raw).Teams, 1)

	status, raw = s.do(http.MethodGet, "/api/users/A/teams", "C", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, decode[dto.TeamsResponse](t, raw).Teams, 1)

	status, _ = s.do(http.MethodDelete, base, "A", nil)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = s.do(http.MethodDelete, base, "L", nil)
	require.Equal(t, http.StatusNoContent, status)
	status, raw = s.do(http.MethodGet, base, "L", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, dto.ErrCodeNotFound, errorCode(t, raw))
}

func TestDeclineAndDisband(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(http.MethodPost, "/api/teams", "L", dto.CreateTeamRequest{EventID: "e1", Name: "solo"})
	require.Equal(t, http.StatusCreated, status)
	base := "/api/teams/" + decode[dto.TeamResponse](t, raw).Team.TeamID

	status, _ = s.do(http.MethodPost, base+"/decline", "A", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodPost, base+"/invites", "L", dto.InviteRequest{UserID: "A"})
	require.Equal(t, http.StatusCreated, status)
	status, raw = s.do(http.MethodPost, base+"/decline", "A", nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, decode[dto.TeamResponse](t, raw).Team.Invitees)

	status, raw = s.do(http.MethodPost, base+"/leave", "L", nil)
	require.Equal(t, http.StatusOK, status)
	leave := decode[dto.LeaveResponse](t, raw)
	require.True(t, leave.Disbanded)
	require.Nil(t, leave.Team)

	status, _ = s.do(http.MethodGet, base, "L", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestSearchAndProfile(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(http.MethodGet, "/api/users/search?skills=python,REACT", "L", nil)
	require.Equal(t, http.StatusOK, status)
	hits := decode[dto.SearchResponse](t, raw).Users
	require.Len(t, hits, 2)
	require.Equal(t, "B", hits[0].User.UserID)
	require.Equal(t, 2, hits[0].MatchScore)
	require.Equal(t, "A", hits[1].User.UserID)
	require.Equal(t, 1, hits[1].MatchScore)

	status, raw = s.do(http.MethodGet, "/api/users/search?limit=2", "L", nil)
	require.Equal(t, http.StatusOK, status)
	hits = decode[dto.SearchResponse](t, raw).Users
	require.Len(t, hits, 2)
	require.Equal(t, "A", hits[0].User.UserID)
	for _, h := range hits {
		require.NotEqual(t, "L", h.User.UserID, "caller is excluded")
	}

	status, _ = s.do(http.MethodGet, "/api/users/search?limit=-1", "L", nil)
	require.Equal(t, http.StatusBadRequest, status)

	status, raw = s.do(http.MethodGet, "/api/users/A", "L", nil)
	require.Equal(t, http.StatusOK, status)
	usr := decode[dto.User](t, raw)
	require.Equal(t, "ann", usr.Username)
	require.Equal(t, []string{"go", "python"}, usr.Skills)

	status, _ = s.do(http.MethodGet, "/api/users/ghost", "L", nil)
	require.Equal(t, http.StatusNotFound, status)
}
