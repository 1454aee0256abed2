package interactor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/mailer"
)

type accounts interface {
	RegisterUser(ctx context.Context, user *data.User, password string) (*data.Token, error)
	ActivateUser(ctx context.Context, email, token string) error
	ReactivateUserToken(ctx context.Context, email string) (*data.Token, error)
	RequestPasswordReset(ctx context.Context, email string) error
	PasswordReset(ctx context.Context, email, token, newPassword string) error
}

type activationPayload struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type passwordResetPayload struct {
	Token       string `json:"password_reset_token"`
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// RegisterUser creates an inactive user and mails the activation token.
func (i *interactor) RegisterUser(ctx context.Context, user *data.User, password string) (*data.Token, error) {
	err := i.service.CreateUser(ctx, user, password)
	if err != nil {
		return nil, err
	}
	token, err := i.service.CreateActivationToken(ctx, user)
	if err != nil {
		return nil, err
	}
	i.sendActivationEmail(user, token)
	return token, nil
}

// ActivateUser activates the account owning email when token is live, then
// consumes the token.
func (i *interactor) ActivateUser(ctx context.Context, email, plaintext string) error {
	token, err := i.service.GetUserActivateToken(ctx, email, plaintext)
	if err != nil {
		return err
	}
	if err := i.service.VerifyTokenExpiration(token); err != nil {
		return err
	}
	if err := i.service.ActivateUserWithToken(ctx, email); err != nil {
		return err
	}
	return i.service.DeleteActivationToken(ctx, token)
}

// ReactivateUserToken replaces the activation token of an inactive user and
// mails the new one.
func (i *interactor) ReactivateUserToken(ctx context.Context, email string) (*data.Token, error) {
	user, token, err := i.service.CreateReactivationToken(ctx, email)
	if err != nil {
		return nil, err
	}
	i.sendActivationEmail(user, token)
	return token, nil
}

// RequestPasswordReset mails a password reset token to an active user.
func (i *interactor) RequestPasswordReset(ctx context.Context, email string) error {
	user, token, err := i.service.CreatePasswordResetToken(ctx, email)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(passwordResetPayload{
		Token:       token.Plaintext,
		Email:       user.Email,
		NewPassword: "your_new_password",
	})
	if err != nil {
		return err
	}
	i.sendEmail(user, mailer.PasswordResetTemplate, payload)
	return nil
}

// PasswordReset sets a new password using a password reset token.
func (i *interactor) PasswordReset(ctx context.Context, email, token, newPassword string) error {
	return i.service.PasswordReset(ctx, email, token, newPassword)
}

func (i *interactor) sendActivationEmail(user *data.User, token *data.Token) {
	payload, err := json.Marshal(activationPayload{Token: token.Plaintext, Email: user.Email})
	if err != nil {
		i.logger.PrintError(err, nil)
		return
	}
	i.sendEmail(user, mailer.ActivationTemplate, payload)
}

// sendEmail delivers templateFile to user in a background goroutine.
func (i *interactor) sendEmail(user *data.User, templateFile string, payload []byte) {
	i.background(func() {
		data := map[string]any{
			"username": user.Username,
			"payload":  string(payload),
			"ttl":      humanDuration(i.config.Accounts.TokenTTL),
		}
		err := i.mailer.Send(user.Email, templateFile, data)
		if err != nil {
			i.logger.PrintError(err, map[string]string{
				"email":    user.Email,
				"template": templateFile,
			})
		}
	})
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%d hours", d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	default:
		return d.String()
	}
}
