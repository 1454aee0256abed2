package service

import (
	"context"
	"errors"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/validator"
	"github.com/emzola/blogapi/repository"
)

type comments interface {
	ListPostComments(ctx context.Context, postID int64) ([]*data.Comment, error)
	GetPostComment(ctx context.Context, postID, commentID int64) (*data.Comment, error)
	CreatePostComment(ctx context.Context, postID, authorID int64, body string) (*data.Comment, error)
	UpdatePostComment(ctx context.Context, postID, commentID int64, body string) (*data.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID int64) error
}

// ListPostComments service retrieves the active comments of a post.
func (s *service) ListPostComments(ctx context.Context, postID int64) ([]*data.Comment, error) {
	return s.repo.GetAllComments(ctx, postID)
}

// GetPostComment service retrieves a comment of a post.
func (s *service) GetPostComment(ctx context.Context, postID, commentID int64) (*data.Comment, error) {
	comment, err := s.repo.GetComment(ctx, postID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrCommentNotFound
		default:
			return nil, err
		}
	}
	return comment, nil
}

// CreatePostComment service leaves a comment on a post.
func (s *service) CreatePostComment(ctx context.Context, postID, authorID int64, body string) (*data.Comment, error) {
	v := validator.New()
	if data.ValidateComment(v, body); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	comment := &data.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
	}
	return s.repo.CreateComment(ctx, comment)
}

// UpdatePostComment service replaces the body of a comment.
func (s *service) UpdatePostComment(ctx context.Context, postID, commentID int64, body string) (*data.Comment, error) {
	v := validator.New()
	if data.ValidateComment(v, body); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	comment, err := s.repo.UpdateComment(ctx, postID, commentID, body)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrCommentNotFound
		default:
			return nil, err
		}
	}
	return comment, nil
}

// DeleteComment service deletes a comment.
func (s *service) DeleteComment(ctx context.Context, postID, commentID int64) error {
	err := s.repo.DeleteComment(ctx, postID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrCommentNotFound
		default:
			return err
		}
	}
	return nil
}
