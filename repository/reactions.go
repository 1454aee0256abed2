package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emzola/blogapi/data"
)

type reactions interface {
	AddPostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) error
	RemovePostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) error
	AddCommentReaction(ctx context.Context, commentID, userID int64, reaction data.Reaction) error
	RemoveCommentReaction(ctx context.Context, commentID, userID int64, reaction data.Reaction) error
}

type reactionTarget struct {
	column string
	tables map[data.Reaction]string
}

var (
	postReactions = reactionTarget{
		column: "post_id",
		tables: map[data.Reaction]string{data.ReactionLike: "post_likes", data.ReactionDislike: "post_dislikes"},
	}
	commentReactions = reactionTarget{
		column: "comment_id",
		tables: map[data.Reaction]string{data.ReactionLike: "comment_likes", data.ReactionDislike: "comment_dislikes"},
	}
)

// AddPostReaction records reaction by user on a post and clears the opposite one.
func (r *repository) AddPostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) error {
	return r.addReaction(ctx, postReactions, postID, userID, reaction)
}

// RemovePostReaction clears reaction by user on a post.
func (r *repository) RemovePostReaction(ctx context.Context, postID, userID int64, reaction data.Reaction) error {
	return r.removeReaction(ctx, postReactions, postID, userID, reaction)
}

// AddCommentReaction records reaction by user on a comment and clears the opposite one.
func (r *repository) AddCommentReaction(ctx context.Context, commentID, userID int64, reaction data.Reaction) error {
	return r.addReaction(ctx, commentReactions, commentID, userID, reaction)
}

// RemoveCommentReaction clears reaction by user on a comment.
func (r *repository) RemoveCommentReaction(ctx context.Context, commentID, userID int64, reaction data.Reaction) error {
	return r.removeReaction(ctx, commentReactions, commentID, userID, reaction)
}

func (r *repository) addReaction(ctx context.Context, target reactionTarget, targetID, userID int64, reaction data.Reaction) error {
	if !reaction.Valid() {
		return fmt.Errorf("unknown reaction %q", reaction)
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.runInTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, target.tables[reaction.Opposite()], target.column)
		if _, err := tx.ExecContext(ctx, query, targetID, userID); err != nil {
			return err
		}
		query = fmt.Sprintf(`
			INSERT INTO %s (%s, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, target.tables[reaction], target.column)
		_, err := tx.ExecContext(ctx, query, targetID, userID)
		return err
	})
}

func (r *repository) removeReaction(ctx context.Context, target reactionTarget, targetID, userID int64, reaction data.Reaction) error {
	if !reaction.Valid() {
		return fmt.Errorf("unknown reaction %q", reaction)
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, target.tables[reaction], target.column)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, targetID, userID)
	return err
}
