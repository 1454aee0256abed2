package repository

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/emzola/blogapi/data"
)

type tokens interface {
	CreateNewToken(ctx context.Context, user *data.User, ttl time.Duration, scope string) (*data.Token, error)
	GetTokenForUser(ctx context.Context, scope string, userID int64) (*data.Token, error)
	DeleteTokenForUser(ctx context.Context, scope string, userID int64) error
}

// HashToken returns the digest stored for a plaintext token.
func HashToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

// generateToken generates a new hex token sized for scope.
func generateToken(user *data.User, ttl time.Duration, scope string) (*data.Token, error) {
	now := time.Now().UTC().Truncate(time.Second)
	token := &data.Token{
		UserID:    user.ID,
		Email:     user.Email,
		Scope:     scope,
		CreatedAt: now,
		Expiry:    now.Add(ttl),
	}
	randomBytes := make([]byte, data.TokenLength(scope)/2)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}
	token.Plaintext = hex.EncodeToString(randomBytes)
	token.Hash = HashToken(token.Plaintext)
	return token, nil
}

// CreateNewToken generates a token and stores it, replacing any token the
// user already holds for scope.
func (r *repository) CreateNewToken(ctx context.Context, user *data.User, ttl time.Duration, scope string) (*data.Token, error) {
	token, err := generateToken(user, ttl, scope)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO tokens (hash, user_id, scope, created_at, expiry)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, scope) DO UPDATE
		SET hash = EXCLUDED.hash, created_at = EXCLUDED.created_at, expiry = EXCLUDED.expiry`
	args := []any{token.Hash, token.UserID, token.Scope, token.CreatedAt, token.Expiry}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// GetTokenForUser retrieves the stored token of scope for a user. The
// plaintext is never available after creation.
func (r *repository) GetTokenForUser(ctx context.Context, scope string, userID int64) (*data.Token, error) {
	query := `
		SELECT tokens.hash, tokens.user_id, users.email, tokens.scope, tokens.created_at, tokens.expiry
		FROM tokens
		INNER JOIN users ON users.id = tokens.user_id
		WHERE tokens.scope = $1 AND tokens.user_id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var token data.Token
	err := r.db.QueryRowContext(ctx, query, scope, userID).Scan(
		&token.Hash,
		&token.UserID,
		&token.Email,
		&token.Scope,
		&token.CreatedAt,
		&token.Expiry,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &token, nil
}

// DeleteTokenForUser deletes the token of scope held by a user.
func (r *repository) DeleteTokenForUser(ctx context.Context, scope string, userID int64) error {
	if userID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM tokens
		WHERE scope = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, scope, userID)
	return err
}
