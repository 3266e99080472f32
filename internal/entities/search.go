package entities

import "fmt"

// SearchQuery describes a teammate search.
type SearchQuery struct {
	Skills        []string
	ExcludeUserID string
	Limit         int
}

// Validate checks the limit and normalizes the skills in place.
func (q *SearchQuery) Validate() error {
	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidArgument)
	}
	q.Skills = NormalizeSkills(q.Skills)
	return nil
}

// RankedUser is a search hit. MatchScore is zero when no skill filter was applied.
type RankedUser struct {
	User       User
	MatchScore int
}
