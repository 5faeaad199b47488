package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
)

// User represents a dashboard account. PasswordHash is stored under "password"
// and never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

const msgPasswordTooLong = "Password must be at most 72 bytes"

func (in *UserInput) ValidateCreate() error {
	if err := requireAll("Name, email, and password are required", in.Name, in.Email, in.Password); err != nil {
		return err
	}
	return in.validatePasswordLength()
}

// ValidateUpdate leaves the password optional.
func (in *UserInput) ValidateUpdate() error {
	if err := requireAll("Name and email are required", in.Name, in.Email); err != nil {
		return err
	}
	return in.validatePasswordLength()
}

func (in *UserInput) validatePasswordLength() error {
	if len(in.Password) > MaxPasswordBytes {
		return apperr.Validation(msgPasswordTooLong)
	}
	return nil
}

// NormalizeEmail trims and lowercases the address used as the unique key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginInput is the body of POST /login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	return requireAll("Email and password are required", in.Email, in.Password)
}
