package interactor

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/emzola/blogapi/config"
	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/auth"
	"github.com/emzola/blogapi/internal/jsonlog"
	"github.com/emzola/blogapi/internal/mailer"
	"github.com/emzola/blogapi/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	recipient string
	template  string
	data      map[string]any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (m *fakeMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{recipient: recipient, template: templateFile, data: data.(map[string]any)})
	return m.err
}

// fakeService implements the parts of service.Service the tests touch.
type fakeService struct {
	service.Service
	user       *data.User
	token      *data.Token
	expired    bool
	calls      []string
	categoryOK bool
	postOK     bool
}

func (f *fakeService) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeService) CreateUser(ctx context.Context, user *data.User, password string) error {
	f.record("CreateUser")
	user.ID = 1
	return nil
}

func (f *fakeService) CreateActivationToken(ctx context.Context, user *data.User) (*data.Token, error) {
	f.record("CreateActivationToken")
	return f.token, nil
}

func (f *fakeService) GetUserActivateToken(ctx context.Context, email, plaintext string) (*data.Token, error) {
	f.record("GetUserActivateToken")
	return f.token, nil
}

func (f *fakeService) VerifyTokenExpiration(token *data.Token) error {
	f.record("VerifyTokenExpiration")
	if f.expired {
		return service.ErrTokenExpired
	}
	return nil
}

func (f *fakeService) ActivateUserWithToken(ctx context.Context, email string) error {
	f.record("ActivateUserWithToken")
	return nil
}

func (f *fakeService) DeleteActivationToken(ctx context.Context, token *data.Token) error {
	f.record("DeleteActivationToken")
	return nil
}

func (f *fakeService) CreatePasswordResetToken(ctx context.Context, email string) (*data.User, *data.Token, error) {
	f.record("CreatePasswordResetToken")
	return f.user, f.token, nil
}

func (f *fakeService) Authenticate(ctx context.Context, email, password string) (*data.User, error) {
	if password != "secret" {
		return nil, service.ErrInvalidCredentials
	}
	return f.user, nil
}

func (f *fakeService) GetUserByID(ctx context.Context, userID int64) (*data.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, service.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeService) GetCategory(ctx context.Context, categoryID int64) (*data.Category, error) {
	f.record("GetCategory")
	if !f.categoryOK {
		return nil, service.ErrCategoryNotFound
	}
	return &data.Category{ID: categoryID}, nil
}

func (f *fakeService) CreatePost(ctx context.Context, input *data.PostInput) (*data.Post, error) {
	f.record("CreatePost")
	return &data.Post{ID: 1, Title: input.Title}, nil
}

func (f *fakeService) UpdatePartialPost(ctx context.Context, postID int64, patch *data.PostPatch) (*data.Post, error) {
	f.record("UpdatePartialPost")
	return &data.Post{ID: postID}, nil
}

func (f *fakeService) GetPost(ctx context.Context, postID int64) (*data.Post, error) {
	f.record("GetPost")
	if !f.postOK {
		return nil, service.ErrPostNotFound
	}
	return &data.Post{ID: postID, AuthorID: 9}, nil
}

func (f *fakeService) ListPostComments(ctx context.Context, postID int64) ([]*data.Comment, error) {
	f.record("ListPostComments")
	return []*data.Comment{}, nil
}

func newTestInteractor(t *testing.T, svc service.Service, m Emailer) (*interactor, *sync.WaitGroup) {
	t.Helper()
	var cfg config.Config
	cfg.Accounts.TokenTTL = 24 * time.Hour
	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	var wg sync.WaitGroup
	return New(cfg, jsonlog.New(io.Discard, jsonlog.LevelOff), svc, m, tokens, &wg), &wg
}

func TestRegisterUserSendsActivationEmail(t *testing.T) {
	svc := &fakeService{token: &data.Token{Plaintext: "abc123", Email: "alice@example.com"}}
	m := &fakeMailer{}
	i, wg := newTestInteractor(t, svc, m)

	user := &data.User{Email: "alice@example.com", Username: "alice"}
	token, err := i.RegisterUser(context.Background(), user, "pa55word")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.Plaintext)
	wg.Wait()

	require.Len(t, m.sent, 1)
	assert.Equal(t, "alice@example.com", m.sent[0].recipient)
	assert.Equal(t, mailer.ActivationTemplate, m.sent[0].template)
	assert.Equal(t, `{"token":"abc123","email":"alice@example.com"}`, m.sent[0].data["payload"])
	assert.Equal(t, "24 hours", m.sent[0].data["ttl"])
	assert.Equal(t, []string{"CreateUser", "CreateActivationToken"}, svc.calls)
}

func TestRegisterUserLogsMailerFailure(t *testing.T) {
	svc := &fakeService{token: &data.Token{Plaintext: "abc123"}}
	m := &fakeMailer{err: errors.New("smtp down")}
	i, wg := newTestInteractor(t, svc, m)

	_, err := i.RegisterUser(context.Background(), &data.User{Email: "alice@example.com"}, "pa55word")
	require.NoError(t, err)
	wg.Wait()
	assert.Len(t, m.sent, 1)
}

func TestActivateUser(t *testing.T) {
	t.Run("Live token", func(t *testing.T) {
		svc := &fakeService{token: &data.Token{UserID: 1}}
		i, _ := newTestInteractor(t, svc, &fakeMailer{})
		require.NoError(t, i.ActivateUser(context.Background(), "alice@example.com", "abc123"))
		assert.Equal(t, []string{
			"GetUserActivateToken", "VerifyTokenExpiration", "ActivateUserWithToken", "DeleteActivationToken",
		}, svc.calls)
	})

	t.Run("Expired token", func(t *testing.T) {
		svc := &fakeService{token: &data.Token{UserID: 1}, expired: true}
		i, _ := newTestInteractor(t, svc, &fakeMailer{})
		err := i.ActivateUser(context.Background(), "alice@example.com", "abc123")
		assert.ErrorIs(t, err, service.ErrTokenExpired)
		assert.NotContains(t, svc.calls, "ActivateUserWithToken")
	})
}

func TestRequestPasswordReset(t *testing.T) {
	svc := &fakeService{
		user:  &data.User{ID: 1, Email: "alice@example.com", Username: "alice"},
		token: &data.Token{Plaintext: "f00d"},
	}
	m := &fakeMailer{}
	i, wg := newTestInteractor(t, svc, m)

	require.NoError(t, i.RequestPasswordReset(context.Background(), "alice@example.com"))
	wg.Wait()
	require.Len(t, m.sent, 1)
	assert.Equal(t, mailer.PasswordResetTemplate, m.sent[0].template)
	assert.Equal(t,
		`{"password_reset_token":"f00d","email":"alice@example.com","new_password":"your_new_password"}`,
		m.sent[0].data["payload"])
}

func TestSessions(t *testing.T) {
	svc := &fakeService{user: &data.User{ID: 4, IsActive: true}}
	i, _ := newTestInteractor(t, svc, &fakeMailer{})

	_, err := i.ObtainTokenPair(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	pair, err := i.ObtainTokenPair(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)

	user, err := i.AuthenticateAccessToken(context.Background(), pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(4), user.ID)

	_, err = i.AuthenticateAccessToken(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrTokenNotValid)

	access, err := i.RefreshAccessToken(pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = i.RefreshAccessToken("garbage")
	assert.ErrorIs(t, err, ErrTokenNotValid)

	svc.user.IsActive = false
	_, err = i.AuthenticateAccessToken(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestCreatePostRequiresCategory(t *testing.T) {
	svc := &fakeService{}
	i, _ := newTestInteractor(t, svc, &fakeMailer{})

	_, err := i.CreatePost(context.Background(), &data.PostInput{Title: "Hello", CategoryID: 3})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
	assert.NotContains(t, svc.calls, "CreatePost")

	svc.categoryOK = true
	post, err := i.CreatePost(context.Background(), &data.PostInput{Title: "Hello", CategoryID: 3})
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
}

func TestUpdatePartialPostChecksCategoryOnlyWhenMoved(t *testing.T) {
	svc := &fakeService{}
	i, _ := newTestInteractor(t, svc, &fakeMailer{})

	_, err := i.UpdatePartialPost(context.Background(), 1, &data.PostPatch{})
	require.NoError(t, err)
	assert.Equal(t, []string{"UpdatePartialPost"}, svc.calls)

	categoryID := int64(8)
	_, err = i.UpdatePartialPost(context.Background(), 1, &data.PostPatch{CategoryID: &categoryID})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestCommentsRequireExistingPost(t *testing.T) {
	svc := &fakeService{}
	i, _ := newTestInteractor(t, svc, &fakeMailer{})

	_, err := i.ListPostComments(context.Background(), 5)
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	svc.postOK = true
	comments, err := i.ListPostComments(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, comments)

	authorID, err := i.PostAuthorID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(9), authorID)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "24 hours", humanDuration(24*time.Hour))
	assert.Equal(t, "30 minutes", humanDuration(30*time.Minute))
	assert.Equal(t, "45s", humanDuration(45*time.Second))
}
