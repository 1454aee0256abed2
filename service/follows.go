package service

import (
	"context"
	"errors"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/repository"
)

type follows interface {
	FollowUser(ctx context.Context, followerID, followedID int64) (*data.Follow, error)
	UnfollowUser(ctx context.Context, followerID, followedID int64) error
}

// FollowUser service makes follower follow the active user followed.
func (s *service) FollowUser(ctx context.Context, followerID, followedID int64) (*data.Follow, error) {
	if followerID == followedID {
		return nil, ErrSelfFollow
	}
	followed, err := s.repo.GetUserByID(ctx, followedID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrFollowedUserNotFound
		default:
			return nil, err
		}
	}
	if !followed.IsActive {
		return nil, ErrFollowedUserNotFound
	}
	return s.repo.CreateFollow(ctx, followerID, followedID)
}

// UnfollowUser service removes an existing follow.
func (s *service) UnfollowUser(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrSelfFollow
	}
	err := s.repo.DeleteFollow(ctx, followerID, followedID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrFollowNotFound
		default:
			return err
		}
	}
	return nil
}
