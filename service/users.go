package service

import (
	"context"
	"errors"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/validator"
	"github.com/emzola/blogapi/repository"
)

type users interface {
	GetAllUsers(ctx context.Context) ([]*data.User, error)
	GetUserByID(ctx context.Context, userID int64) (*data.User, error)
	GetUserByUsername(ctx context.Context, username string) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	CreateUser(ctx context.Context, user *data.User, password string) error
	CreateSuperuser(ctx context.Context, email, username, password string) (*data.User, error)
	ActivateUserWithToken(ctx context.Context, email string) error
	Authenticate(ctx context.Context, email, password string) (*data.User, error)
}

// GetAllUsers service retrieves every user.
func (s *service) GetAllUsers(ctx context.Context) ([]*data.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// GetUserByID service retrieves a user by id.
func (s *service) GetUserByID(ctx context.Context, userID int64) (*data.User, error) {
	return s.lookupUser(s.repo.GetUserByID(ctx, userID))
}

// GetUserByUsername service retrieves a user by username.
func (s *service) GetUserByUsername(ctx context.Context, username string) (*data.User, error) {
	return s.lookupUser(s.repo.GetUserByUsername(ctx, username))
}

// GetUserByEmail service retrieves a user by email.
func (s *service) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	return s.lookupUser(s.repo.GetUserByEmail(ctx, email))
}

func (s *service) lookupUser(user *data.User, err error) (*data.User, error) {
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// CreateUser service registers a new, inactive user together with its profile.
func (s *service) CreateUser(ctx context.Context, user *data.User, password string) error {
	user.IsActive = false
	if err := checkPasswordLength("password", password); err != nil {
		return err
	}
	err := user.Password.Set(password)
	if err != nil {
		return err
	}
	v := validator.New()
	data.ValidateUser(v, user)
	data.ValidateProfile(v, &user.Profile, s.now())
	if !v.Valid() {
		return failedValidation(v.Errors)
	}
	return s.insertUser(ctx, user)
}

// CreateSuperuser service creates an active staff superuser with an empty profile.
func (s *service) CreateSuperuser(ctx context.Context, email, username, password string) (*data.User, error) {
	user := &data.User{
		Email:       email,
		Username:    username,
		FirstName:   username,
		LastName:    username,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := checkPasswordLength("password", password); err != nil {
		return nil, err
	}
	err := user.Password.Set(password)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.insertUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) insertUser(ctx context.Context, user *data.User) error {
	exists, err := s.repo.UserExists(ctx, user.Email, user.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}
	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return ErrUserAlreadyExists
		default:
			return err
		}
	}
	return nil
}

// ActivateUserWithToken service marks the user owning email as active.
func (s *service) ActivateUserWithToken(ctx context.Context, email string) error {
	activated, err := s.repo.ActivateUser(ctx, email)
	if err != nil {
		return err
	}
	if activated {
		return nil
	}
	_, err = s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	return ErrUserAlreadyActivated
}

// Authenticate service returns the active user matching the credentials.
func (s *service) Authenticate(ctx context.Context, email, password string) (*data.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}
	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}
	if !match || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
