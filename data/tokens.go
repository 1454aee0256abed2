package data

import "time"

const (
	ScopeActivation    = "activation"
	ScopePasswordReset = "password-reset"
)

// TokenLength returns the number of hex characters issued for scope.
func TokenLength(scope string) int {
	if scope == ScopePasswordReset {
		return 64
	}
	return 32
}

// Token defines a one-time account token. Only Hash is persisted.
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Email     string    `json:"email"`
	Scope     string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	Expiry    time.Time `json:"-"`
}

// Expired reports whether the token is past its expiry at now.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.Expiry)
}
