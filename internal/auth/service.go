package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/jroosing/zoneinv/internal/config"
	"github.com/jroosing/zoneinv/internal/couch"
)

// Service authenticates users and resolves bearer tokens.
type Service struct {
	users  *Users
	signer *Signer
	cfg    config.AuthConfig
	logger *slog.Logger
	notice io.Writer
}

// NewService wires the user repository and token signer from cfg.
func NewService(cfg config.AuthConfig, users *Users, logger *slog.Logger) (*Service, error) {
	signer, err := NewSigner(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, signer: signer, cfg: cfg, logger: logger, notice: os.Stderr}, nil
}

// SetNoticeWriter redirects the one-time generated admin password, which is
// never logged. The default is stderr.
func (s *Service) SetNoticeWriter(w io.Writer) {
	s.notice = w
}

// IssueToken checks the credentials and returns a signed token.
func (s *Service) IssueToken(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", ErrInvalidCredentials
	}
	if !VerifyPassword(user.HashedPassword, password) {
		return "", ErrInvalidCredentials
	}
	return s.signer.Sign(user.Username)
}

// ResolveToken verifies token and loads the user it names.
func (s *Service) ResolveToken(ctx context.Context, token string) (*User, error) {
	username, err := s.signer.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return &user.User, nil
}

// RequireActiveUser rejects disabled accounts.
func RequireActiveUser(user *User) (*User, error) {
	if user == nil {
		return nil, ErrInvalidToken
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

// Bootstrap creates the configured admin account when it is enabled and
// missing. Without a configured password a random one is generated and
// logged once.
func (s *Service) Bootstrap(ctx context.Context) error {
	if !s.cfg.BootstrapAdmin {
		return nil
	}
	username := s.cfg.BootstrapUsername
	if username == "" {
		username = "admin"
	}
	existing, err := s.users.Get(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	password := s.cfg.BootstrapPassword
	generated := password == ""
	if generated {
		if password, err = randomPassword(); err != nil {
			return err
		}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	err = s.users.Create(ctx, StoredUser{
		User:           User{Username: username, FullName: "Admin User"},
		HashedPassword: hash,
	})
	if errors.Is(err, couch.ErrConflict) {
		// Another instance created it between our read and write.
		return nil
	}
	if err != nil {
		return err
	}
	if generated {
		s.logger.Warn("created bootstrap admin with generated password; change it", "username", username)
		fmt.Fprintf(s.notice, "bootstrap admin %q password: %s\n", username, password)
	} else {
		s.logger.Info("created bootstrap admin", "username", username)
	}
	return nil
}

func randomPassword() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
