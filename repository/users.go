package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emzola/blogapi/data"
)

type users interface {
	GetAllUsers(ctx context.Context) ([]*data.User, error)
	GetUserByID(ctx context.Context, userID int64) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	GetUserByUsername(ctx context.Context, username string) (*data.User, error)
	UserExists(ctx context.Context, email, username string) (bool, error)
	CreateUser(ctx context.Context, user *data.User) error
	ActivateUser(ctx context.Context, email string) (bool, error)
	UpdateUserPassword(ctx context.Context, userID int64, hash []byte) error
}

const selectUser = `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash,
			u.is_active, u.is_staff, u.is_superuser, u.created_at,
			COALESCE(pr.avatar, ''), COALESCE(pr.gender, ''), pr.date_of_birth,
			COALESCE(pr.bio, ''), COALESCE(pr.info, '')
		FROM users u
		LEFT JOIN profiles pr ON pr.user_id = u.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*data.User, error) {
	var (
		user data.User
		dob  sql.NullTime
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Password.Hash,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.Profile.Avatar,
		&user.Profile.Gender,
		&dob,
		&user.Profile.Bio,
		&user.Profile.Info,
	)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		user.Profile.DateOfBirth = data.Date{Time: dob.Time}
	}
	return &user, nil
}

func (r *repository) getUser(ctx context.Context, where string, arg any) (*data.User, error) {
	query := selectUser + `
		WHERE ` + where
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetAllUsers retrieves every user ordered by id.
func (r *repository) GetAllUsers(ctx context.Context) ([]*data.User, error) {
	query := selectUser + `
		ORDER BY u.id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []*data.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID retrieves a user record by id.
func (r *repository) GetUserByID(ctx context.Context, userID int64) (*data.User, error) {
	if userID < 1 {
		return nil, ErrRecordNotFound
	}
	return r.getUser(ctx, "u.id = $1", userID)
}

// GetUserByEmail retrieves a user record by email.
func (r *repository) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	return r.getUser(ctx, "u.email = $1", email)
}

// GetUserByUsername retrieves a user record by username.
func (r *repository) GetUserByUsername(ctx context.Context, username string) (*data.User, error) {
	return r.getUser(ctx, "u.username = $1", username)
}

// UserExists reports whether the email or the username is taken.
func (r *repository) UserExists(ctx context.Context, email, username string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email, username).Scan(&exists)
	return exists, err
}

// CreateUser inserts the user and its profile in one transaction.
func (r *repository) CreateUser(ctx context.Context, user *data.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	err := r.runInTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO users (email, username, first_name, last_name, password_hash, is_active, is_staff, is_superuser)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at`
		args := []any{user.Email, user.Username, user.FirstName, user.LastName, user.Password.Hash, user.IsActive, user.IsStaff, user.IsSuperuser}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
			return err
		}
		var dob sql.NullTime
		if !user.Profile.DateOfBirth.IsZero() {
			dob = sql.NullTime{Time: user.Profile.DateOfBirth.Time, Valid: true}
		}
		query = `
			INSERT INTO profiles (user_id, avatar, gender, date_of_birth, bio, info)
			VALUES ($1, $2, $3, $4, $5, $6)`
		args = []any{user.ID, user.Profile.Avatar, user.Profile.Gender, dob, user.Profile.Bio, user.Profile.Info}
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// ActivateUser marks the user with email as active. It returns false when
// no inactive user with that email exists.
func (r *repository) ActivateUser(ctx context.Context, email string) (bool, error) {
	query := `
		UPDATE users
		SET is_active = true
		WHERE email = $1 AND is_active = false`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// UpdateUserPassword replaces the stored password hash.
func (r *repository) UpdateUserPassword(ctx context.Context, userID int64, hash []byte) error {
	query := `
		UPDATE users
		SET password_hash = $1
		WHERE id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, hash, userID)
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
