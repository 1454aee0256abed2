package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/slug"
	"github.com/emzola/blogapi/internal/validator"
	"github.com/emzola/blogapi/repository"
	"github.com/emzola/blogapi/repository/specification"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type posts interface {
	ListPosts(ctx context.Context, filters data.Filters, conditions specification.Conditions) ([]*data.Post, data.Metadata, error)
	GetPost(ctx context.Context, postID int64) (*data.Post, error)
	CreatePost(ctx context.Context, input *data.PostInput) (*data.Post, error)
	UpdatePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error)
	UpdatePartialPost(ctx context.Context, postID int64, patch *data.PostPatch) (*data.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	UploadPostImage(ctx context.Context, postID int64, image []byte) (*data.Post, error)
}

// ListPosts service retrieves a page of published posts matching conditions.
func (s *service) ListPosts(ctx context.Context, filters data.Filters, conditions specification.Conditions) ([]*data.Post, data.Metadata, error) {
	filters = filters.Normalize(s.config.Pagination.PageSize, s.config.Pagination.MaxPageSize)
	return s.repo.GetAllPosts(ctx, filters, conditions)
}

// GetPost service retrieves a published post.
func (s *service) GetPost(ctx context.Context, postID int64) (*data.Post, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrPostNotFound
		default:
			return nil, err
		}
	}
	return post, nil
}

// CreatePost service creates a post. The slug is kept when usable, otherwise
// derived from the title.
func (s *service) CreatePost(ctx context.Context, input *data.PostInput) (*data.Post, error) {
	v := validator.New()
	if data.ValidatePostInput(v, input); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	postSlug := slug.ValidateOrCreate(input.Title, input.Slug)
	input.Slug = &postSlug
	input.Tags = data.NormalizeTags(input.Tags)
	return s.repo.CreatePost(ctx, input)
}

// UpdatePost service replaces every writable field of a post.
func (s *service) UpdatePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidatePostInput(v, input); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	input.AuthorID = post.AuthorID
	postSlug := slug.ValidateOrCreate(input.Title, input.Slug)
	input.Slug = &postSlug
	input.Tags = data.NormalizeTags(input.Tags)
	return s.savePost(ctx, postID, input)
}

// UpdatePartialPost service changes only the fields present in patch. A new
// slug is validated against the resulting title; without one the current
// slug is kept.
func (s *service) UpdatePartialPost(ctx context.Context, postID int64, patch *data.PostPatch) (*data.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidatePostPatch(v, patch); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	input := &data.PostInput{
		Title:      post.Title,
		Slug:       &post.Slug,
		AuthorID:   post.AuthorID,
		Content:    post.Content,
		ImageURL:   post.ImageURL,
		Status:     post.Status,
		CategoryID: post.CategoryID,
		Tags:       post.Tags,
	}
	if patch.Title != nil {
		input.Title = *patch.Title
	}
	if patch.Content != nil {
		input.Content = *patch.Content
	}
	if patch.ImageURL != nil {
		input.ImageURL = patch.ImageURL
	}
	if patch.Status != nil {
		input.Status = *patch.Status
	}
	if patch.CategoryID != nil {
		input.CategoryID = *patch.CategoryID
	}
	if patch.Tags != nil {
		input.Tags = data.NormalizeTags(patch.Tags)
	}
	if patch.Slug != nil {
		postSlug := slug.ValidateOrCreate(input.Title, patch.Slug)
		input.Slug = &postSlug
	}
	return s.savePost(ctx, postID, input)
}

func (s *service) savePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error) {
	post, err := s.repo.UpdatePost(ctx, postID, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrPostNotFound
		default:
			return nil, err
		}
	}
	return post, nil
}

// DeletePost service deletes a post.
func (s *service) DeletePost(ctx context.Context, postID int64) error {
	err := s.repo.DeletePost(ctx, postID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrPostNotFound
		default:
			return err
		}
	}
	return nil
}

// UploadPostImage service stores a JPEG or PNG image in object storage and
// points the post at it.
func (s *service) UploadPostImage(ctx context.Context, postID int64, image []byte) (*data.Post, error) {
	if s.images == nil {
		return nil, ErrStorageUnavailable
	}
	_, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	mtype := mimetype.Detect(image)
	if !validator.Mime(mtype, "image/jpeg", "image/png") {
		return nil, ErrUnsupportedMediaType
	}
	key := fmt.Sprintf("posts/%d/%s%s", postID, uuid.NewString(), mtype.Extension())
	imageURL, err := s.images.Upload(ctx, key, image, mtype.String())
	if err != nil {
		return nil, err
	}
	s.logger.PrintInfo("post image stored", map[string]string{
		"post_id": strconv.FormatInt(postID, 10),
		"key":     key,
	})
	post, err := s.repo.SetPostImage(ctx, postID, imageURL)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrPostNotFound
		default:
			return nil, err
		}
	}
	return post, nil
}
