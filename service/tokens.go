package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/repository"
)

type tokens interface {
	CreateActivationToken(ctx context.Context, user *data.User) (*data.Token, error)
	GetUserActivateToken(ctx context.Context, email, plaintext string) (*data.Token, error)
	GetActivateTokenByUserEmail(ctx context.Context, email string) (*data.Token, error)
	VerifyTokenExpiration(token *data.Token) error
	DeleteActivationToken(ctx context.Context, token *data.Token) error
	CreateReactivationToken(ctx context.Context, email string) (*data.User, *data.Token, error)
	CreatePasswordResetToken(ctx context.Context, email string) (*data.User, *data.Token, error)
	PasswordReset(ctx context.Context, email, plaintext, newPassword string) error
}

// CreateActivationToken service issues a new activation token for user,
// replacing any previous one.
func (s *service) CreateActivationToken(ctx context.Context, user *data.User) (*data.Token, error) {
	return s.repo.CreateNewToken(ctx, user, s.config.Accounts.TokenTTL, data.ScopeActivation)
}

// GetUserActivateToken service retrieves the activation token of the user
// owning email and checks it against plaintext.
func (s *service) GetUserActivateToken(ctx context.Context, email, plaintext string) (*data.Token, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	token, err := s.storedToken(ctx, data.ScopeActivation, user)
	if err != nil {
		return nil, err
	}
	if token == nil || !tokenMatches(token, plaintext) {
		return nil, ErrUserTokenNotFound
	}
	token.Plaintext = plaintext
	return token, nil
}

// GetActivateTokenByUserEmail service retrieves the activation token of the
// user owning email. The token is nil when none is stored.
func (s *service) GetActivateTokenByUserEmail(ctx context.Context, email string) (*data.Token, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.storedToken(ctx, data.ScopeActivation, user)
}

// VerifyTokenExpiration service rejects tokens older than the configured lifetime.
func (s *service) VerifyTokenExpiration(token *data.Token) error {
	if token.Expired(s.now()) {
		return ErrTokenExpired
	}
	return nil
}

// DeleteActivationToken service deletes an activation token.
func (s *service) DeleteActivationToken(ctx context.Context, token *data.Token) error {
	return s.repo.DeleteTokenForUser(ctx, data.ScopeActivation, token.UserID)
}

// CreateReactivationToken service drops the current activation token of the
// user owning email and issues a new one unless the user is already active.
func (s *service) CreateReactivationToken(ctx context.Context, email string) (*data.User, *data.Token, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	err = s.repo.DeleteTokenForUser(ctx, data.ScopeActivation, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if user.IsActive {
		return nil, nil, ErrUserAlreadyActivated
	}
	token, err := s.CreateActivationToken(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// CreatePasswordResetToken service issues a new password reset token for an
// active user.
func (s *service) CreatePasswordResetToken(ctx context.Context, email string) (*data.User, *data.Token, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, ErrUserNotActivated
	}
	err = s.repo.DeleteTokenForUser(ctx, data.ScopePasswordReset, user.ID)
	if err != nil {
		return nil, nil, err
	}
	token, err := s.repo.CreateNewToken(ctx, user, s.config.Accounts.TokenTTL, data.ScopePasswordReset)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// PasswordReset service sets a new password for the user owning email when
// plaintext matches a live password reset token, then consumes the token.
func (s *service) PasswordReset(ctx context.Context, email, plaintext, newPassword string) error {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	token, err := s.storedToken(ctx, data.ScopePasswordReset, user)
	if err != nil {
		return err
	}
	if token == nil || !tokenMatches(token, plaintext) {
		return ErrInvalidToken
	}
	if err := s.VerifyTokenExpiration(token); err != nil {
		return err
	}
	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}
	if err := checkPasswordLength("new_password", newPassword); err != nil {
		return err
	}
	err = user.Password.Set(newPassword)
	if err != nil {
		return err
	}
	err = s.repo.UpdateUserPassword(ctx, user.ID, user.Password.Hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrUserNotFound
		default:
			return err
		}
	}
	return s.repo.DeleteTokenForUser(ctx, data.ScopePasswordReset, user.ID)
}

// storedToken returns the token of scope held by user, or nil.
func (s *service) storedToken(ctx context.Context, scope string, user *data.User) (*data.Token, error) {
	token, err := s.repo.GetTokenForUser(ctx, scope, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, nil
		default:
			return nil, err
		}
	}
	return token, nil
}

func tokenMatches(token *data.Token, plaintext string) bool {
	return subtle.ConstantTimeCompare(repository.HashToken(plaintext), token.Hash) == 1
}

// checkPasswordStrength applies the password rules in order and reports the
// first one broken.
func checkPasswordStrength(password string) error {
	switch {
	case utf8.RuneCountInString(password) < 8:
		return &WeakPasswordError{Message: "Password must be at least 8 characters long."}
	case !strings.ContainsFunc(password, isASCIILetter):
		return &WeakPasswordError{Message: "Password must contain at least one letter."}
	case !strings.ContainsAny(password, "0123456789"):
		return &WeakPasswordError{Message: "Password must contain at least one digit."}
	case !strings.ContainsAny(password, data.PasswordSpecials):
		return &WeakPasswordError{Message: "Password must contain at least one special character."}
	}
	return nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
