package domain

import (
	"context"
	"time"

	"team-formation/internal/entities"
	"team-formation/internal/ranking"
)

// SearchTeammates ranks the directory snapshot against the query skills.
func (u *Usecase) SearchTeammates(ctx context.Context, query entities.SearchQuery) (res []entities.RankedUser, err error) {
	defer func(start time.Time) { u.observe("search_teammates", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := query.Validate(); err != nil {
		return nil, err
	}
	users, err := u.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	res = ranking.Rank(users, query)
	u.metrics.ObserveSearchResults(len(res))
	u.log.Debugw("teammate search", "skills", query.Skills, "exclude", query.ExcludeUserID, "hits", len(res))
	return res, nil
}
