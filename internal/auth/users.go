package auth

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/jroosing/zoneinv/internal/couch"
)

// UsersDB is the default database holding user documents.
const UsersDB = "users"

// User is the public profile returned by /users/me.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Disabled bool   `json:"disabled"`
}

// StoredUser is a user as persisted, including the password hash.
type StoredUser struct {
	User
	HashedPassword string `json:"hashed_password"`
}

type userDoc struct {
	couch.Meta
	StoredUser
}

// Validate checks the profile fields. Email is optional.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Required),
		validation.Field(&u.Email, is.EmailFormat),
	)
}

// UserID returns the document key for username.
func UserID(username string) string {
	return "user:" + username
}

// Store is the subset of the document store the user repository needs.
type Store interface {
	Get(ctx context.Context, db, id string, out any) (bool, error)
	Put(ctx context.Context, db string, doc couch.Document) error
}

// Users reads and writes user documents.
type Users struct {
	store Store
	db    string
}

// NewUsers returns a repository over db (UsersDB when empty).
func NewUsers(store Store, db string) *Users {
	if db == "" {
		db = UsersDB
	}
	return &Users{store: store, db: db}
}

// Get loads username. A missing user yields (nil, nil).
func (u *Users) Get(ctx context.Context, username string) (*StoredUser, error) {
	var doc userDoc
	found, err := u.store.Get(ctx, u.db, UserID(username), &doc)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", username, err)
	}
	if !found {
		return nil, nil
	}
	return &doc.StoredUser, nil
}

// Create stores a new user. It fails with couch.ErrConflict if the
// username is taken.
func (u *Users) Create(ctx context.Context, user StoredUser) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	doc := &userDoc{Meta: couch.Meta{ID: UserID(user.Username)}, StoredUser: user}
	if err := u.store.Put(ctx, u.db, doc); err != nil {
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return nil
}
