package interactor

import (
	"context"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/repository/specification"
)

type categories interface {
	ListCategories(ctx context.Context) ([]*data.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*data.Category, error)
	CreateCategory(ctx context.Context, name string, slug *string) (*data.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, name string, slug *string) (*data.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

type posts interface {
	ListPosts(ctx context.Context, filters data.Filters, conditions specification.Conditions) ([]*data.Post, data.Metadata, error)
	GetPost(ctx context.Context, postID int64) (*data.Post, error)
	CreatePost(ctx context.Context, input *data.PostInput) (*data.Post, error)
	UpdatePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error)
	UpdatePartialPost(ctx context.Context, postID int64, patch *data.PostPatch) (*data.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	UploadPostImage(ctx context.Context, postID int64, image []byte) (*data.Post, error)
	PostAuthorID(ctx context.Context, postID int64) (int64, error)
}

type comments interface {
	ListPostComments(ctx context.Context, postID int64) ([]*data.Comment, error)
	GetPostComment(ctx context.Context, postID, commentID int64) (*data.Comment, error)
	CreatePostComment(ctx context.Context, postID, authorID int64, body string) (*data.Comment, error)
	UpdatePostComment(ctx context.Context, postID, commentID int64, body string) (*data.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID int64) error
	CommentAuthorID(ctx context.Context, postID, commentID int64) (int64, error)
}

type reactions interface {
	ReactToPost(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error)
	RemovePostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error)
	ReactToComment(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error)
	RemoveCommentReaction(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error)
}

func (i *interactor) ListCategories(ctx context.Context) ([]*data.Category, error) {
	return i.service.ListCategories(ctx)
}

func (i *interactor) GetCategory(ctx context.Context, categoryID int64) (*data.Category, error) {
	return i.service.GetCategory(ctx, categoryID)
}

func (i *interactor) CreateCategory(ctx context.Context, name string, slug *string) (*data.Category, error) {
	return i.service.CreateCategory(ctx, name, slug)
}

func (i *interactor) UpdateCategory(ctx context.Context, categoryID int64, name string, slug *string) (*data.Category, error) {
	return i.service.UpdateCategory(ctx, categoryID, name, slug)
}

func (i *interactor) DeleteCategory(ctx context.Context, categoryID int64) error {
	return i.service.DeleteCategory(ctx, categoryID)
}

func (i *interactor) ListPosts(ctx context.Context, filters data.Filters, conditions specification.Conditions) ([]*data.Post, data.Metadata, error) {
	return i.service.ListPosts(ctx, filters, conditions)
}

func (i *interactor) GetPost(ctx context.Context, postID int64) (*data.Post, error) {
	return i.service.GetPost(ctx, postID)
}

// CreatePost creates a post in an existing category.
func (i *interactor) CreatePost(ctx context.Context, input *data.PostInput) (*data.Post, error) {
	if _, err := i.service.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	return i.service.CreatePost(ctx, input)
}

// UpdatePost replaces a post, which must stay in an existing category.
func (i *interactor) UpdatePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error) {
	if _, err := i.service.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	return i.service.UpdatePost(ctx, postID, input)
}

// UpdatePartialPost checks the category only when the patch moves the post.
func (i *interactor) UpdatePartialPost(ctx context.Context, postID int64, patch *data.PostPatch) (*data.Post, error) {
	if patch.CategoryID != nil {
		if _, err := i.service.GetCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}
	return i.service.UpdatePartialPost(ctx, postID, patch)
}

func (i *interactor) DeletePost(ctx context.Context, postID int64) error {
	return i.service.DeletePost(ctx, postID)
}

func (i *interactor) UploadPostImage(ctx context.Context, postID int64, image []byte) (*data.Post, error) {
	return i.service.UploadPostImage(ctx, postID, image)
}

// PostAuthorID returns the id of the user who wrote a post.
func (i *interactor) PostAuthorID(ctx context.Context, postID int64) (int64, error) {
	post, err := i.service.GetPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	return post.AuthorID, nil
}

// ListPostComments lists the comments of an existing post.
func (i *interactor) ListPostComments(ctx context.Context, postID int64) ([]*data.Comment, error) {
	if _, err := i.service.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return i.service.ListPostComments(ctx, postID)
}

func (i *interactor) GetPostComment(ctx context.Context, postID, commentID int64) (*data.Comment, error) {
	if _, err := i.service.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return i.service.GetPostComment(ctx, postID, commentID)
}

func (i *interactor) CreatePostComment(ctx context.Context, postID, authorID int64, body string) (*data.Comment, error) {
	if _, err := i.service.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return i.service.CreatePostComment(ctx, postID, authorID, body)
}

func (i *interactor) UpdatePostComment(ctx context.Context, postID, commentID int64, body string) (*data.Comment, error) {
	return i.service.UpdatePostComment(ctx, postID, commentID, body)
}

func (i *interactor) DeleteComment(ctx context.Context, postID, commentID int64) error {
	return i.service.DeleteComment(ctx, postID, commentID)
}

// CommentAuthorID returns the id of the user who wrote a comment.
func (i *interactor) CommentAuthorID(ctx context.Context, postID, commentID int64) (int64, error) {
	comment, err := i.GetPostComment(ctx, postID, commentID)
	if err != nil {
		return 0, err
	}
	return comment.AuthorID, nil
}

func (i *interactor) ReactToPost(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error) {
	return i.service.ReactToPost(ctx, postID, userID, reaction)
}

func (i *interactor) RemovePostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) (*data.Post, error) {
	return i.service.RemovePostReaction(ctx, postID, userID, reaction)
}

func (i *interactor) ReactToComment(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error) {
	return i.service.ReactToComment(ctx, postID, commentID, userID, reaction)
}

func (i *interactor) RemoveCommentReaction(ctx context.Context, postID, commentID, userID int64, reaction data.Reaction) (*data.Comment, error) {
	return i.service.RemoveCommentReaction(ctx, postID, commentID, userID, reaction)
}

type follows interface {
	FollowUser(ctx context.Context, followerID, followedID int64) (*data.Follow, error)
	UnfollowUser(ctx context.Context, followerID, followedID int64) error
}

func (i *interactor) FollowUser(ctx context.Context, followerID, followedID int64) (*data.Follow, error) {
	return i.service.FollowUser(ctx, followerID, followedID)
}

func (i *interactor) UnfollowUser(ctx context.Context, followerID, followedID int64) error {
	return i.service.UnfollowUser(ctx, followerID, followedID)
}
