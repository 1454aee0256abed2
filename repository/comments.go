package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emzola/blogapi/data"
)

type comments interface {
	GetAllComments(ctx context.Context, postID int64) ([]*data.Comment, error)
	GetComment(ctx context.Context, postID, commentID int64) (*data.Comment, error)
	CreateComment(ctx context.Context, comment *data.Comment) (*data.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID int64, body string) (*data.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID int64) error
}

const selectComment = `
		SELECT c.id, c.body, c.post_id, u.username, c.author_id, c.created, c.updated, c.active,
			(SELECT count(*) FROM comment_likes cl WHERE cl.comment_id = c.id),
			(SELECT count(*) FROM comment_dislikes cd WHERE cd.comment_id = c.id)
		FROM comments c
		INNER JOIN users u ON u.id = c.author_id`

func scanComment(row rowScanner) (*data.Comment, error) {
	var comment data.Comment
	err := row.Scan(
		&comment.ID,
		&comment.Body,
		&comment.PostID,
		&comment.Author,
		&comment.AuthorID,
		&comment.Created.Time,
		&comment.Updated.Time,
		&comment.Active,
		&comment.Likes,
		&comment.Dislikes,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetAllComments retrieves the active comments of a post, newest first.
func (r *repository) GetAllComments(ctx context.Context, postID int64) ([]*data.Comment, error) {
	query := selectComment + `
		WHERE c.post_id = $1 AND c.active = true
		ORDER BY c.created DESC, c.id DESC`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	comments := []*data.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetComment retrieves an active comment of a post.
func (r *repository) GetComment(ctx context.Context, postID, commentID int64) (*data.Comment, error) {
	if postID < 1 || commentID < 1 {
		return nil, ErrRecordNotFound
	}
	query := selectComment + `
		WHERE c.post_id = $1 AND c.id = $2 AND c.active = true`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, postID, commentID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return comment, nil
}

// CreateComment inserts a comment and returns the stored comment.
func (r *repository) CreateComment(ctx context.Context, comment *data.Comment) (*data.Comment, error) {
	query := `
		INSERT INTO comments (post_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id`
	args := []any{comment.PostID, comment.AuthorID, comment.Body}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var commentID int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&commentID)
	if err != nil {
		return nil, err
	}
	return r.GetComment(ctx, comment.PostID, commentID)
}

// UpdateComment replaces the body of a comment and returns the refreshed comment.
func (r *repository) UpdateComment(ctx context.Context, postID, commentID int64, body string) (*data.Comment, error) {
	query := `
		UPDATE comments
		SET body = $1, updated = NOW()
		WHERE post_id = $2 AND id = $3 AND active = true`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, body, postID, commentID)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.GetComment(ctx, postID, commentID)
}

// DeleteComment deletes a comment of a post.
func (r *repository) DeleteComment(ctx context.Context, postID, commentID int64) error {
	if postID < 1 || commentID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM comments
		WHERE post_id = $1 AND id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, postID, commentID)
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
