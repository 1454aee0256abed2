package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/repository/specification"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestRunInTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		r, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := r.runInTx(context.Background(), func(tx *sql.Tx) error { return nil })
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		r, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		failed := errors.New("insert failed")
		err := r.runInTx(context.Background(), func(tx *sql.Tx) error { return failed })
		assert.ErrorIs(t, err, failed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and repanics", func(t *testing.T) {
		r, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = r.runInTx(context.Background(), func(tx *sql.Tx) error { panic("boom") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}

func TestCreateCategoryDuplicate(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Golang", "golang").
		WillReturnError(&pq.Error{Code: "23505"})

	err := r.CreateCategory(context.Background(), &data.Category{Name: "Golang", Slug: "golang"})
	assert.ErrorIs(t, err, ErrDuplicateRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategoryNotFound(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery("FROM categories").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	category, err := r.GetCategory(context.Background(), 42)
	assert.Nil(t, category)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryMissing(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec("DELETE FROM categories").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.DeleteCategory(context.Background(), 7)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateUser(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec("UPDATE users").
		WithArgs("alice@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs("alice@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	activated, err := r.ActivateUser(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, activated)

	activated, err = r.ActivateUser(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, activated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllPosts(t *testing.T) {
	r, mock := newMock(t)
	publish := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	columns := []string{
		"id", "title", "slug", "username", "author_id", "body", "publish", "created", "updated",
		"image_url", "status", "name", "category_id", "likes", "dislikes", "tags",
	}
	mock.ExpectQuery("FROM posts p").
		WithArgs("alice", 4, 4).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(5), "Fifth", "fifth", "alice", int64(1), "body", publish, publish, publish,
			nil, data.StatusPublished, "Go", int64(2), int64(3), int64(0), []byte("{go,sql}"),
		))

	conditions := specification.Conditions{Filters: []specification.Filter{specification.Author("alice")}}
	posts, metadata, err := r.GetAllPosts(context.Background(), data.Filters{Page: 2, PageSize: 4}, conditions)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t, "Fifth", posts[0].Title)
	assert.Equal(t, "Go", posts[0].Category)
	assert.Nil(t, posts[0].ImageURL)
	assert.Equal(t, []string{"go", "sql"}, posts[0].Tags)
	assert.Equal(t, int64(3), posts[0].LikesCount)
	assert.Equal(t, 2, metadata.CurrentPage)
	assert.Equal(t, 2, metadata.TotalPages)
	assert.True(t, metadata.HasPrevious)
	assert.False(t, metadata.HasNext)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPostReactionClearsOpposite(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM post_dislikes").
		WithArgs(int64(3), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO post_likes").
		WithArgs(int64(3), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.AddPostReaction(context.Background(), 3, 9, data.ReactionLike)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveCommentReaction(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec("DELETE FROM comment_dislikes").
		WithArgs(int64(4), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.RemoveCommentReaction(context.Background(), 4, 9, data.ReactionDislike)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateToken(t *testing.T) {
	user := &data.User{ID: 1, Email: "alice@example.com"}

	activation, err := generateToken(user, time.Hour, data.ScopeActivation)
	require.NoError(t, err)
	assert.Len(t, activation.Plaintext, 32)
	assert.Equal(t, HashToken(activation.Plaintext), activation.Hash)
	assert.Equal(t, "alice@example.com", activation.Email)
	assert.Equal(t, time.Hour, activation.Expiry.Sub(activation.CreatedAt))

	reset, err := generateToken(user, time.Hour, data.ScopePasswordReset)
	require.NoError(t, err)
	assert.Len(t, reset.Plaintext, 64)
}

func TestGetAllPostsDefaultOrder(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY p\.publish DESC, p\.id DESC\s+LIMIT`).
		WithArgs(4, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, _, err := r.GetAllPosts(context.Background(), data.Filters{Page: 1, PageSize: 4}, specification.Conditions{})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollow(t *testing.T) {
	r, mock := newMock(t)
	created := time.Date(2024, 5, 4, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO follows").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(created))

	follow, err := r.CreateFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), follow.FollowerID)
	assert.Equal(t, int64(2), follow.FollowedID)
	assert.Equal(t, created, follow.Created.Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFollowMissing(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec("DELETE FROM follows").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.DeleteFollow(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
