// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"strings"

	"team-formation/internal/dto"
	"team-formation/internal/entities"
)

// ToUser maps entities.User to transport model.
func ToUser(u entities.User) dto.User {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.User{
		UserID:   u.ID,
		Username: u.Username,
		Skills:   skills,
		Stats: dto.UserStats{
			EventsParticipated: u.Stats.EventsParticipated,
			EventsWon:          u.Stats.EventsWon,
		},
	}
}

func toUsers(src []entities.User) []dto.User {
	res := make([]dto.User, 0, len(src))
	for _, u := range src {
		res = append(res, ToUser(u))
	}
	return res
}

// ToTeam maps entities.TeamView to transport model.
func ToTeam(v entities.TeamView) dto.Team {
	return dto.Team{
		TeamID:    v.Team.ID,
		EventID:   v.Team.EventID,
		Name:      v.Team.Name,
		LeaderID:  v.Team.LeaderID,
		Members:   toUsers(v.Members),
		Invitees:  toUsers(v.Invitees),
		Complete:  v.Complete,
		CreatedAt: v.Team.CreatedAt,
		UpdatedAt: v.Team.UpdatedAt,
	}
}

// ToTeams maps a list of views.
func ToTeams(src []entities.TeamView) []dto.Team {
	res := make([]dto.Team, 0, len(src))
	for _, v := range src {
		res = append(res, ToTeam(v))
	}
	return res
}

// ToCandidates maps ranked search hits.
func ToCandidates(src []entities.RankedUser) []dto.Candidate {
	res := make([]dto.Candidate, 0, len(src))
	for _, r := range src {
		res = append(res, dto.Candidate{User: ToUser(r.User), MatchScore: r.MatchScore})
	}
	return res
}

// FromCreateTeam builds the domain request for leaderID.
func FromCreateTeam(src dto.CreateTeamRequest, leaderID string) entities.CreateTeamRequest {
	return entities.CreateTeamRequest{EventID: src.EventID, LeaderID: leaderID, Name: src.Name}
}

// FromSearch builds a search query excluding the caller. Skills are a comma separated list.
func FromSearch(src dto.SearchRequest, callerID string, limit int) entities.SearchQuery {
	var skills []string
	for _, s := range strings.Split(src.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return entities.SearchQuery{Skills: skills, ExcludeUserID: callerID, Limit: limit}
}
