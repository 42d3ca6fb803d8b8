package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength matches the register endpoint's validation rule.
const minPasswordLength = 6

// Sentinel errors, named after the wire codes the handlers return.
var (
	ErrInvalidInput   = errors.New("invalid_input")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrUsernameTaken  = errors.New("username_taken")
	ErrEmailTaken     = errors.New("email_taken")
	ErrNotFound       = errors.New("not_found")
	ErrBadCredentials = errors.New("bad_credentials")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service implements account registration and login over a repository.
type Service struct {
	repo UserRepository
}

// NewService creates an auth service.
func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// Register validates the input, rejects conflicts, and stores the user
// with a bcrypt hash. Username and email are stored lowercased.
func (s *Service) Register(ctx context.Context, name, username, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || username == "" || email == "" || len(password) < minPasswordLength {
		return nil, ErrInvalidInput
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if existing, err := s.repo.FindConflict(ctx, username, email); err == nil {
		if strings.EqualFold(existing.Username, username) {
			return nil, ErrUsernameTaken
		}
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Username: username,
		Email:    email,
		Hash:     string(hash),
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login matches a username or email against the stored hash.
func (s *Service) Login(ctx context.Context, login, password string) (*User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// Lookup resolves a user by identifier.
func (s *Service) Lookup(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
