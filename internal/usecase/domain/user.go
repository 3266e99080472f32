package domain

import (
	"context"
	"fmt"

	"team-formation/internal/entities"
)

// User returns a user profile from the directory.
func (u *Usecase) User(ctx context.Context, userID string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetUser(ctx, userID)
}
