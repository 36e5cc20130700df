package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/taskdesk/taskdesk-go/internal/async"
	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/repository"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// SessionService handles signup, login, logout and the profile of the
// single stored user.
type SessionService struct {
	mu       sync.Mutex
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	opts     Options
}

// NewSessionService creates a new SessionService.
func NewSessionService(users *repository.UserRepository, sessions *repository.SessionRepository, opts Options) *SessionService {
	return &SessionService{
		users:    users,
		sessions: sessions,
		opts:     opts.withDefaults(),
	}
}

// Signup stores a new user record. It does not log the user in.
// Only the single stored record is checked for a clashing email; a
// different email replaces it.
func (s *SessionService) Signup(ctx context.Context, req model.SignupRequest) (model.User, error) {
	if err := validateSignup(req); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.users.Get(ctx)
	switch {
	case err == nil:
		if existing.Email == req.Email {
			return model.User{}, ErrDuplicateEmail
		}
		// The new record must not inherit the previous owner's session.
		if err := s.sessions.End(ctx); err != nil {
			return model.User{}, err
		}
		slog.Info("replacing stored user", "previous_email", existing.Email)
	case !errors.Is(err, repository.ErrUserNotFound):
		return model.User{}, err
	}

	user := model.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		SignupDate: s.opts.Now().Format(SignupDateLayout),
	}
	if err := s.users.Save(ctx, &user); err != nil {
		return model.User{}, err
	}

	slog.Info("user signed up", "email", user.Email)
	return user, nil
}

func validateSignup(req model.SignupRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return ErrNameRequired
	case strings.TrimSpace(req.Email) == "":
		return ErrEmailRequired
	case strings.TrimSpace(req.Password) == "":
		return ErrPasswordRequired
	case !emailPattern.MatchString(req.Email):
		return ErrInvalidEmail
	case utf8.RuneCountInString(req.Password) < MinPasswordLength:
		return ErrPasswordTooShort
	}
	return nil
}

// Login checks the credentials against the stored record and starts a session.
func (s *SessionService) Login(ctx context.Context, req model.LoginRequest) (model.User, error) {
	if strings.TrimSpace(req.Email) == "" {
		return model.User{}, ErrEmailRequired
	}
	if strings.TrimSpace(req.Password) == "" {
		return model.User{}, ErrPasswordRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrAuth
		}
		return model.User{}, err
	}
	if user.Email != req.Email || user.Password != req.Password {
		slog.Info("login rejected", "email", req.Email)
		return model.User{}, ErrAuth
	}

	now := s.opts.Now()
	if err := s.sessions.Begin(ctx, now.Format(LastLoginLayout)); err != nil {
		return model.User{}, err
	}
	if err := s.backfill(ctx, user); err != nil {
		return model.User{}, err
	}

	slog.Info("user logged in", "email", user.Email)
	return *user, nil
}

// backfill stamps a signup date on records stored before the field existed.
func (s *SessionService) backfill(ctx context.Context, user *model.User) error {
	if user.SignupDate != "" {
		return nil
	}
	user.SignupDate = s.opts.Now().Format(SignupDateLayout)
	return s.users.Save(ctx, user)
}

// Logout ends the session. The user record is kept for later logins.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.End(ctx); err != nil {
		return err
	}
	slog.Info("user logged out")
	return nil
}

// UpdateProfileName changes the stored user's display name.
func (s *SessionService) UpdateProfileName(ctx context.Context, name string) (model.User, error) {
	if strings.TrimSpace(name) == "" {
		return model.User{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	user.Name = name
	if err := s.users.Save(ctx, user); err != nil {
		return model.User{}, err
	}
	return *user, nil
}

// Restore resumes a persisted session at start-up. ok is false when nobody
// is logged in. A session whose user record is missing, corrupt or has no
// email is discarded along with the record.
func (s *SessionService) Restore(ctx context.Context) (user model.User, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authed, err := s.sessions.IsAuthenticated(ctx)
	if err != nil || !authed {
		return model.User{}, false, err
	}

	stored, err := s.users.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return model.User{}, false, err
	}
	if stored == nil || stored.Email == "" {
		slog.Warn("discarding session without a usable user record")
		if err := s.sessions.Clear(ctx); err != nil {
			return model.User{}, false, err
		}
		return model.User{}, false, s.users.Remove(ctx)
	}

	if err := s.backfill(ctx, stored); err != nil {
		return model.User{}, false, err
	}
	return *stored, true, nil
}

// Current returns the logged-in user or ErrNotLoggedIn.
func (s *SessionService) Current(ctx context.Context) (model.User, error) {
	authed, err := s.sessions.IsAuthenticated(ctx)
	if err != nil {
		return model.User{}, err
	}
	if !authed {
		return model.User{}, ErrNotLoggedIn
	}

	user, err := s.users.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrNotLoggedIn
		}
		return model.User{}, err
	}
	return *user, nil
}

// IsAuthenticated reports whether the session flag is set.
func (s *SessionService) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.sessions.IsAuthenticated(ctx)
}

// LastLogin returns the last login stamp, or "" when logged out.
func (s *SessionService) LastLogin(ctx context.Context) (string, error) {
	return s.sessions.LastLogin(ctx)
}

// SignupAsync is Signup resolved after the configured latency.
func (s *SessionService) SignupAsync(ctx context.Context, req model.SignupRequest) *async.Pending[model.User] {
	ctx = context.WithoutCancel(ctx)
	return async.After(s.opts.Timer, s.opts.Latency, func() (model.User, error) {
		return s.Signup(ctx, req)
	})
}

// LoginAsync is Login resolved after the configured latency.
func (s *SessionService) LoginAsync(ctx context.Context, req model.LoginRequest) *async.Pending[model.User] {
	ctx = context.WithoutCancel(ctx)
	return async.After(s.opts.Timer, s.opts.Latency, func() (model.User, error) {
		return s.Login(ctx, req)
	})
}

// UpdateProfileNameAsync is UpdateProfileName resolved after the configured latency.
func (s *SessionService) UpdateProfileNameAsync(ctx context.Context, name string) *async.Pending[model.User] {
	ctx = context.WithoutCancel(ctx)
	return async.After(s.opts.Timer, s.opts.Latency, func() (model.User, error) {
		return s.UpdateProfileName(ctx, name)
	})
}
