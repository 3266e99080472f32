// Package ranking orders teammate candidates by skill overlap.
//
// Ordering: match score DESC, then eventsParticipated DESC, then user id ASC.
// Without a skill filter every user ranks with score zero, so the order falls
// back to participation and id.
package ranking

import (
	"sort"

	"team-formation/internal/entities"
)

// Rank scores users against the normalized query skills and returns at most limit hits.
// The input slice is not modified.
func Rank(users []entities.User, query entities.SearchQuery) []entities.RankedUser {
	wanted := make(map[string]struct{}, len(query.Skills))
	for _, s := range query.Skills {
		wanted[s] = struct{}{}
	}
	filtered := len(wanted) > 0

	hits := make([]entities.RankedUser, 0, len(users))
	for _, u := range users {
		if u.ID == query.ExcludeUserID {
			continue
		}
		score := 0
		if filtered {
			score = MatchScore(u.Skills, wanted)
			if score == 0 {
				continue
			}
		}
		hits = append(hits, entities.RankedUser{User: u, MatchScore: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.User.Stats.EventsParticipated != b.User.Stats.EventsParticipated {
			return a.User.Stats.EventsParticipated > b.User.Stats.EventsParticipated
		}
		return a.User.ID < b.User.ID
	})

	if query.Limit > 0 && len(hits) > query.Limit {
		hits = hits[:query.Limit]
	}
	return hits
}

// MatchScore counts distinct normalized skills shared with wanted.
func MatchScore(skills []string, wanted map[string]struct{}) int {
	score := 0
	for _, s := range entities.NormalizeSkills(skills) {
		if _, ok := wanted[s]; ok {
			score++
		}
	}
	return score
}
