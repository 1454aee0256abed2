package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emzola/blogapi/config"
	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/jsonlog"
	"github.com/emzola/blogapi/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo implements the parts of repository.Repository the tests touch.
type fakeRepo struct {
	repository.Repository
	users         map[string]*data.User
	tokens        map[string]*data.Token
	deletedScopes []string
	passwordHash  []byte
	activated     bool
	categoryTaken bool
	created       *data.Category
	posts         map[int64]*data.Post
	saved         *data.PostInput
	follows       [][2]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  map[string]*data.User{},
		tokens: map[string]*data.Token{},
		posts:  map[int64]*data.Post{},
	}
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetTokenForUser(ctx context.Context, scope string, userID int64) (*data.Token, error) {
	token, ok := f.tokens[scope]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return token, nil
}

func (f *fakeRepo) DeleteTokenForUser(ctx context.Context, scope string, userID int64) error {
	f.deletedScopes = append(f.deletedScopes, scope)
	delete(f.tokens, scope)
	return nil
}

func (f *fakeRepo) CreateNewToken(ctx context.Context, user *data.User, ttl time.Duration, scope string) (*data.Token, error) {
	token := &data.Token{Plaintext: "fresh", UserID: user.ID, Email: user.Email, Scope: scope}
	f.tokens[scope] = token
	return token, nil
}

func (f *fakeRepo) UpdateUserPassword(ctx context.Context, userID int64, hash []byte) error {
	f.passwordHash = hash
	return nil
}

func (f *fakeRepo) ActivateUser(ctx context.Context, email string) (bool, error) {
	return f.activated, nil
}

func (f *fakeRepo) CategoryExists(ctx context.Context, name, slug string) (bool, error) {
	return f.categoryTaken, nil
}

func (f *fakeRepo) CreateCategory(ctx context.Context, category *data.Category) error {
	category.ID = 1
	f.created = category
	return nil
}

func (f *fakeRepo) GetPost(ctx context.Context, postID int64) (*data.Post, error) {
	post, ok := f.posts[postID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return post, nil
}

func (f *fakeRepo) UpdatePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error) {
	f.saved = input
	return &data.Post{ID: postID, Title: input.Title, Slug: *input.Slug}, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, userID int64) (*data.User, error) {
	for _, user := range f.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (f *fakeRepo) CreateFollow(ctx context.Context, followerID, followedID int64) (*data.Follow, error) {
	f.follows = append(f.follows, [2]int64{followerID, followedID})
	return &data.Follow{FollowerID: followerID, FollowedID: followedID}, nil
}

func (f *fakeRepo) DeleteFollow(ctx context.Context, followerID, followedID int64) error {
	for i, pair := range f.follows {
		if pair == [2]int64{followerID, followedID} {
			f.follows = append(f.follows[:i], f.follows[i+1:]...)
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

func newTestService(repo repository.Repository) *service {
	var cfg config.Config
	cfg.Accounts.TokenTTL = 24 * time.Hour
	cfg.Pagination.PageSize = 4
	cfg.Pagination.MaxPageSize = 100
	s := New(cfg, jsonlog.New(io.Discard, jsonlog.LevelOff), repo, nil)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"a1!", "Password must be at least 8 characters long."},
		{"12345678!", "Password must contain at least one letter."},
		{"abcdefgh!", "Password must contain at least one digit."},
		{"abcdefg1", "Password must contain at least one special character."},
		{"abcdef1!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := checkPasswordStrength(tt.password)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var weak *WeakPasswordError
			require.ErrorAs(t, err, &weak)
			assert.Equal(t, tt.want, weak.Message)
		})
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := failedValidation(map[string]string{"title": "This field may not be blank."})
	assert.ErrorIs(t, err, ErrFailedValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title: This field may not be blank.", validationErr.Error())
}

func TestPasswordReset(t *testing.T) {
	const plaintext = "4f1c0d7e9b2a4f1c0d7e9b2a4f1c0d7e9b2a4f1c0d7e9b2a4f1c0d7e9b2a4f1c"
	setup := func(expiry time.Time) *fakeRepo {
		repo := newFakeRepo()
		repo.users["alice@example.com"] = &data.User{ID: 1, Email: "alice@example.com", IsActive: true}
		repo.tokens[data.ScopePasswordReset] = &data.Token{
			Hash:   repository.HashToken(plaintext),
			UserID: 1,
			Scope:  data.ScopePasswordReset,
			Expiry: expiry,
		}
		return repo
	}
	live := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Unknown user", func(t *testing.T) {
		s := newTestService(setup(live))
		err := s.PasswordReset(context.Background(), "bob@example.com", plaintext, "abcdef1!")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Mismatched token", func(t *testing.T) {
		s := newTestService(setup(live))
		err := s.PasswordReset(context.Background(), "alice@example.com", "deadbeef", "abcdef1!")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("No stored token", func(t *testing.T) {
		repo := setup(live)
		delete(repo.tokens, data.ScopePasswordReset)
		s := newTestService(repo)
		err := s.PasswordReset(context.Background(), "alice@example.com", plaintext, "abcdef1!")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		s := newTestService(setup(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
		err := s.PasswordReset(context.Background(), "alice@example.com", plaintext, "abcdef1!")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Weak password", func(t *testing.T) {
		s := newTestService(setup(live))
		err := s.PasswordReset(context.Background(), "alice@example.com", plaintext, "abcdefgh1")
		var weak *WeakPasswordError
		require.ErrorAs(t, err, &weak)
		assert.Equal(t, "Password must contain at least one special character.", weak.Message)
	})

	t.Run("Password longer than 72 bytes", func(t *testing.T) {
		repo := setup(live)
		s := newTestService(repo)
		err := s.PasswordReset(context.Background(), "alice@example.com", plaintext, strings.Repeat("é", 40)+"a1!")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Ensure this field has no more than 72 bytes.", validationErr.Errors["new_password"])
		assert.Empty(t, repo.passwordHash)
		assert.Contains(t, repo.tokens, data.ScopePasswordReset)
	})

	t.Run("Success", func(t *testing.T) {
		repo := setup(live)
		s := newTestService(repo)
		err := s.PasswordReset(context.Background(), "alice@example.com", plaintext, "abcdef1!")
		require.NoError(t, err)
		assert.NotEmpty(t, repo.passwordHash)
		assert.Equal(t, []string{data.ScopePasswordReset}, repo.deletedScopes)
		assert.NotContains(t, repo.tokens, data.ScopePasswordReset)
	})
}

func TestGetUserActivateToken(t *testing.T) {
	repo := newFakeRepo()
	repo.users["alice@example.com"] = &data.User{ID: 1, Email: "alice@example.com"}
	repo.tokens[data.ScopeActivation] = &data.Token{Hash: repository.HashToken("abc123"), UserID: 1}
	s := newTestService(repo)

	token, err := s.GetUserActivateToken(context.Background(), "alice@example.com", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.Plaintext)

	_, err = s.GetUserActivateToken(context.Background(), "alice@example.com", "nope")
	assert.ErrorIs(t, err, ErrUserTokenNotFound)

	_, err = s.GetUserActivateToken(context.Background(), "bob@example.com", "abc123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestActivateUserWithToken(t *testing.T) {
	repo := newFakeRepo()
	repo.users["alice@example.com"] = &data.User{ID: 1, Email: "alice@example.com", IsActive: true}
	s := newTestService(repo)

	err := s.ActivateUserWithToken(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrUserAlreadyActivated)

	repo.activated = true
	assert.NoError(t, s.ActivateUserWithToken(context.Background(), "alice@example.com"))
}

func TestCreateReactivationToken(t *testing.T) {
	t.Run("Active user loses the token and is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		repo.users["alice@example.com"] = &data.User{ID: 1, Email: "alice@example.com", IsActive: true}
		repo.tokens[data.ScopeActivation] = &data.Token{UserID: 1}
		s := newTestService(repo)

		_, _, err := s.CreateReactivationToken(context.Background(), "alice@example.com")
		assert.ErrorIs(t, err, ErrUserAlreadyActivated)
		assert.NotContains(t, repo.tokens, data.ScopeActivation)
	})

	t.Run("Inactive user receives a new token", func(t *testing.T) {
		repo := newFakeRepo()
		repo.users["bob@example.com"] = &data.User{ID: 2, Email: "bob@example.com"}
		s := newTestService(repo)

		user, token, err := s.CreateReactivationToken(context.Background(), "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		assert.Equal(t, "fresh", token.Plaintext)
	})
}

func TestCreatePasswordResetTokenRequiresActiveUser(t *testing.T) {
	repo := newFakeRepo()
	repo.users["bob@example.com"] = &data.User{ID: 2, Email: "bob@example.com"}
	s := newTestService(repo)

	_, _, err := s.CreatePasswordResetToken(context.Background(), "bob@example.com")
	assert.ErrorIs(t, err, ErrUserNotActivated)
}

func TestCreateCategory(t *testing.T) {
	t.Run("Title-cased name and derived slug", func(t *testing.T) {
		repo := newFakeRepo()
		s := newTestService(repo)
		category, err := s.CreateCategory(context.Background(), "web development", nil)
		require.NoError(t, err)
		assert.Equal(t, "Web Development", category.Name)
		assert.Equal(t, "web-development", category.Slug)
	})

	t.Run("Usable slug is kept", func(t *testing.T) {
		s := newTestService(newFakeRepo())
		custom := "webdev"
		category, err := s.CreateCategory(context.Background(), "web development", &custom)
		require.NoError(t, err)
		assert.Equal(t, "webdev", category.Slug)
	})

	t.Run("Taken name or slug", func(t *testing.T) {
		repo := newFakeRepo()
		repo.categoryTaken = true
		s := newTestService(repo)
		_, err := s.CreateCategory(context.Background(), "golang", nil)
		assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
	})
}

func TestUpdatePartialPost(t *testing.T) {
	existing := func() *fakeRepo {
		repo := newFakeRepo()
		repo.posts[3] = &data.Post{
			ID:         3,
			Title:      "Old title",
			Slug:       "old-title",
			AuthorID:   9,
			Content:    "body",
			Status:     data.StatusPublished,
			CategoryID: 2,
			Tags:       []string{"go"},
		}
		return repo
	}

	t.Run("Slug kept without a new slug", func(t *testing.T) {
		repo := existing()
		s := newTestService(repo)
		title := "New title"
		post, err := s.UpdatePartialPost(context.Background(), 3, &data.PostPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "old-title", post.Slug)
		assert.Equal(t, "New title", repo.saved.Title)
		assert.Equal(t, []string{"go"}, repo.saved.Tags)
		assert.Equal(t, int64(9), repo.saved.AuthorID)
	})

	t.Run("Unusable slug derived from resulting title", func(t *testing.T) {
		repo := existing()
		s := newTestService(repo)
		title := "Fresh Start"
		bad := "not a slug"
		post, err := s.UpdatePartialPost(context.Background(), 3, &data.PostPatch{Title: &title, Slug: &bad})
		require.NoError(t, err)
		assert.Equal(t, "fresh-start", post.Slug)
	})

	t.Run("Invalid status", func(t *testing.T) {
		s := newTestService(existing())
		status := "archived"
		_, err := s.UpdatePartialPost(context.Background(), 3, &data.PostPatch{Status: &status})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, data.StatusChoiceMessage, validationErr.Errors["status"])
	})

	t.Run("Missing post", func(t *testing.T) {
		s := newTestService(existing())
		_, err := s.UpdatePartialPost(context.Background(), 4, &data.PostPatch{})
		assert.True(t, errors.Is(err, ErrPostNotFound))
	})
}

func TestUploadPostImageWithoutStorage(t *testing.T) {
	s := newTestService(newFakeRepo())
	_, err := s.UploadPostImage(context.Background(), 1, []byte("\x89PNG\r\n\x1a\n"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestCreateUserRejectsPasswordOverBcryptLimit(t *testing.T) {
	s := newTestService(newFakeRepo())
	user := &data.User{Email: "alice@example.com", Username: "alice"}
	err := s.CreateUser(context.Background(), user, strings.Repeat("é", 40)+"a1!")
	assert.ErrorIs(t, err, ErrFailedValidation)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Ensure this field has no more than 72 bytes.", validationErr.Errors["password"])
	assert.Nil(t, user.Password.Hash)
}

func TestCreateSuperuserRejectsPasswordOverBcryptLimit(t *testing.T) {
	s := newTestService(newFakeRepo())
	_, err := s.CreateSuperuser(context.Background(), "admin@example.com", "admin", strings.Repeat("x", 73))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "password")
}

func TestFollowUser(t *testing.T) {
	repo := newFakeRepo()
	repo.users["alice@example.com"] = &data.User{ID: 1, Email: "alice@example.com", IsActive: true}
	repo.users["bob@example.com"] = &data.User{ID: 2, Email: "bob@example.com", IsActive: true}
	repo.users["carol@example.com"] = &data.User{ID: 3, Email: "carol@example.com"}
	s := newTestService(repo)
	ctx := context.Background()

	_, err := s.FollowUser(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = s.FollowUser(ctx, 1, 42)
	assert.ErrorIs(t, err, ErrFollowedUserNotFound)

	_, err = s.FollowUser(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrFollowedUserNotFound)
	assert.Empty(t, repo.follows)

	follow, err := s.FollowUser(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), follow.FollowerID)
	assert.Equal(t, int64(2), follow.FollowedID)

	assert.ErrorIs(t, s.UnfollowUser(ctx, 1, 1), ErrSelfFollow)
	require.NoError(t, s.UnfollowUser(ctx, 1, 2))
	assert.ErrorIs(t, s.UnfollowUser(ctx, 1, 2), ErrFollowNotFound)
}
