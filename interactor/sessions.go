package interactor

import (
	"context"
	"errors"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/auth"
	"github.com/emzola/blogapi/service"
)

var (
	ErrTokenNotValid = errors.New("token not valid")
	ErrUserInactive  = errors.New("user is inactive")
)

type sessions interface {
	ObtainTokenPair(ctx context.Context, email, password string) (*auth.Pair, error)
	RefreshAccessToken(refresh string) (string, error)
	AuthenticateAccessToken(ctx context.Context, access string) (*data.User, error)
}

// ObtainTokenPair logs an active user in.
func (i *interactor) ObtainTokenPair(ctx context.Context, email, password string) (*auth.Pair, error) {
	user, err := i.service.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return i.tokens.IssuePair(user.ID)
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func (i *interactor) RefreshAccessToken(refresh string) (string, error) {
	access, err := i.tokens.Refresh(refresh)
	if err != nil {
		return "", ErrTokenNotValid
	}
	return access, nil
}

// AuthenticateAccessToken resolves the user an access token was issued to.
func (i *interactor) AuthenticateAccessToken(ctx context.Context, access string) (*data.User, error) {
	claims, err := i.tokens.ParseAccess(access)
	if err != nil {
		return nil, ErrTokenNotValid
	}
	user, err := i.service.GetUserByID(ctx, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return nil, service.ErrUserNotFound
		default:
			return nil, err
		}
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}
