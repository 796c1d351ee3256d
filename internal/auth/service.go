package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"FacultyManager/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var (
	ErrInvalidSignup      = errors.New("invalid signup")
	ErrMissingFields      = fmt.Errorf("%w: username, password and email are required", ErrInvalidSignup)
	ErrPasswordTooLong    = fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidSignup, maxPasswordBytes)
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStore is the persistence the account service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	UpdateNotificationPreference(ctx context.Context, id int64, enabled bool) error
}

type UserService struct {
	repo     UserStore
	sessions *session.Manager
	log      *zap.Logger
}

func NewUserService(repo UserStore, sessions *session.Manager, log *zap.Logger) *UserService {
	return &UserService{repo: repo, sessions: sessions, log: log.With(zap.String("component", "accounts"))}
}

// Signup creates an account opted in to notifications. Duplicate usernames or
// emails fail with ErrAccountExists.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}
	user := &User{
		Username:             username,
		PasswordHash:         hash,
		Email:                email,
		ReceiveNotifications: true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User signed up", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Authenticate verifies the credential and returns a signed session token.
func (s *UserService) Authenticate(ctx context.Context, cred Credential) (string, *User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(cred.Username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) Settings(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateNotifications flips the opt-in flag. Only future dispatches see the
// change.
func (s *UserService) UpdateNotifications(ctx context.Context, userID int64, enabled bool) (*User, error) {
	if err := s.repo.UpdateNotificationPreference(ctx, userID, enabled); err != nil {
		return nil, err
	}
	s.log.Info("Notification preference updated", zap.Int64("user_id", userID), zap.Bool("enabled", enabled))
	return s.repo.FindByID(ctx, userID)
}
