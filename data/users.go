package data

import (
	"errors"
	"time"

	"github.com/emzola/blogapi/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Specials accepted by the password strength rules.
const PasswordSpecials = `!@#$%^&*(),.?":{}|<>`

// MaxPasswordBytes is the longest plaintext bcrypt will hash.
const MaxPasswordBytes = 72

var AnonymousUser = &User{}

// IsAnonymous checks if a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// User defines a user model.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Password    password  `json:"-"`
	IsActive    bool      `json:"-"`
	IsStaff     bool      `json:"-"`
	IsSuperuser bool      `json:"-"`
	CreatedAt   time.Time `json:"-"`
	Profile     Profile   `json:"profile"`
}

// Profile holds the personal details collected at registration.
type Profile struct {
	Avatar      string `json:"avatar"`
	Gender      string `json:"gender"`
	DateOfBirth Date   `json:"date_of_birth"`
	Bio         string `json:"bio"`
	Info        string `json:"info"`
}

// password defines the plaintext and hashed versions of a user's password.
// Plaintext is a pointer so that an absent password can be told apart from
// an empty one.
type password struct {
	Plaintext *string
	Hash      []byte
}

// Set calculates the bcrypt hash of a plaintext password.
func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), 12)
	if err != nil {
		return err
	}
	p.Plaintext = &plaintextPassword
	p.Hash = hash
	return nil
}

// Matches checks whether the provided plaintext password matches the stored hash.
func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "This field is required.")
	v.Check(len(email) <= 255, "email", "Ensure this field has no more than 255 characters.")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "Enter a valid email address.")
}

func ValidatePasswordPlaintext(v *validator.Validator, password string) {
	v.Check(password != "", "password", "This field is required.")
	v.Check(len(password) <= MaxPasswordBytes, "password", "Ensure this field has no more than 72 bytes.")
}

// ValidateBirthDate enforces the registration age rules relative to now.
func ValidateBirthDate(v *validator.Validator, dob time.Time, now time.Time) {
	if dob.Year() < 1900 {
		v.AddError("date_of_birth", "Invalid birth date - year must be greater than 1900.")
		return
	}
	days := int(now.Sub(dob).Hours() / 24)
	v.Check(days/365 >= 18, "date_of_birth", "You must be at least 18 years old to register.")
}

func ValidateProfile(v *validator.Validator, profile *Profile, now time.Time) {
	v.Check(len(profile.Avatar) <= 250, "avatar", "Ensure this field has no more than 250 characters.")
	v.Check(validator.PermittedValue(profile.Gender, GenderMale, GenderFemale), "gender", `"`+profile.Gender+`" is not a valid choice.`)
	v.Check(len(profile.Info) <= 255, "info", "Ensure this field has no more than 255 characters.")
	if profile.DateOfBirth.IsZero() {
		v.AddError("date_of_birth", "This field is required.")
		return
	}
	ValidateBirthDate(v, profile.DateOfBirth.Time, now)
}

func ValidateUser(v *validator.Validator, user *User) {
	ValidateEmail(v, user.Email)
	v.Check(user.Username != "", "username", "This field is required.")
	v.Check(len(user.Username) <= 30, "username", "Ensure this field has no more than 30 characters.")
	v.Check(user.FirstName != "", "first_name", "This field is required.")
	v.Check(len(user.FirstName) <= 150, "first_name", "Ensure this field has no more than 150 characters.")
	v.Check(user.LastName != "", "last_name", "This field is required.")
	v.Check(len(user.LastName) <= 150, "last_name", "Ensure this field has no more than 150 characters.")
	if user.Password.Plaintext != nil {
		ValidatePasswordPlaintext(v, *user.Password.Plaintext)
	}
	if user.Password.Hash == nil {
		panic("missing password hash for user")
	}
}
