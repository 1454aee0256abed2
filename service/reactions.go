package service

import (
	"context"

	"github.com/emzola/blogapi/data"
)

type reactions interface {
	ReactToPost(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error)
	RemovePostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error)
	ReactToComment(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error)
	RemoveCommentReaction(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error)
}

// ReactToPost service records a like or dislike on a post and returns the
// post with refreshed counters.
func (s *service) ReactToPost(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.repo.AddPostReaction(ctx, postID, userID, reaction); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID)
}

// RemovePostReaction service withdraws a like or dislike from a post.
func (s *service) RemovePostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.repo.RemovePostReaction(ctx, postID, userID, reaction); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID)
}

// ReactToComment service records a like or dislike on a comment.
func (s *service) ReactToComment(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error) {
	if _, err := s.GetPostComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	if err := s.repo.AddCommentReaction(ctx, commentID, userID, reaction); err != nil {
		return nil, err
	}
	return s.GetPostComment(ctx, postID, commentID)
}

// RemoveCommentReaction service withdraws a like or dislike from a comment.
func (s *service) RemoveCommentReaction(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error) {
	if _, err := s.GetPostComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveCommentReaction(ctx, commentID, userID, reaction); err != nil {
		return nil, err
	}
	return s.GetPostComment(ctx, postID, commentID)
}
