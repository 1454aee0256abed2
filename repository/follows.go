package repository

import (
	"context"

	"github.com/emzola/blogapi/data"
)

type follows interface {
	CreateFollow(ctx context.Context, followerID, followedID int64) (*data.Follow, error)
	DeleteFollow(ctx context.Context, followerID, followedID int64) error
}

// CreateFollow records that follower follows followed. Following twice keeps
// the first record and returns it.
func (r *repository) CreateFollow(ctx context.Context, followerID, followedID int64) (*data.Follow, error) {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO UPDATE SET follower_id = EXCLUDED.follower_id
		RETURNING created`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	follow := &data.Follow{FollowerID: followerID, FollowedID: followedID}
	err := r.db.QueryRowContext(ctx, query, followerID, followedID).Scan(&follow.Created.Time)
	if err != nil {
		return nil, err
	}
	return follow, nil
}

// DeleteFollow removes the follow record of follower on followed.
func (r *repository) DeleteFollow(ctx context.Context, followerID, followedID int64) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
