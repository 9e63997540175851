package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niyontwali/personal-job-at/pkg/appwrite"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

// confirmTimeout bounds the poll-until-confirmed loop after a session
// is created. The identity service settles new sessions eventually;
// polling replaces the fixed sleeps the web client shipped with.
const confirmTimeout = 10 * time.Second

// State is the auth view of the world handed to the router. Remote
// check failures never appear here as errors: any failure reads as
// not authenticated.
type State struct {
	User           *domain.User
	Authenticated  bool
	Loading        bool // true only while the synchronous check runs
	Authenticating bool // true while an explicit login/logout is in flight
	LastFetch      time.Time
}

// Service owns the auth state cache: the in-memory state, the persisted
// snapshot and the session secret installed on the API client.
type Service struct {
	client       *appwrite.Client
	snapshotPath string
	adminUserID  string
	now          func() time.Time

	mu    sync.Mutex
	state State
}

// NewService creates the auth service. adminUserID is the one
// pre-provisioned account the deployment supports.
func NewService(client *appwrite.Client, snapshotPath, adminUserID string) *Service {
	return &Service{
		client:       client,
		snapshotPath: snapshotPath,
		adminUserID:  adminUserID,
		now:          time.Now,
	}
}

// State returns a copy of the current auth state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UserID returns the stable id for the single supported account: the
// configured admin id, else the id of whoever is logged in.
func (s *Service) UserID() string {
	if s.adminUserID != "" {
		return s.adminUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User != nil {
		return s.state.User.ID
	}
	return ""
}

// Start performs the first auth check. When a usable snapshot exists
// it is presented immediately (no loading state) and the caller must
// schedule Verify to re-check in the background; needVerify reports
// that. Otherwise Start falls through to a synchronous Refresh.
func (s *Service) Start(ctx context.Context) (State, bool) {
	snap := LoadSnapshot(s.snapshotPath, s.now())
	if snap.Usable(s.now()) {
		if snap.SessionSecret != "" {
			s.client.SetSession(snap.SessionSecret)
		}
		s.mu.Lock()
		s.state = State{User: snap.User, Authenticated: true, LastFetch: snap.LastFetch}
		st := s.state
		s.mu.Unlock()
		return st, true
	}
	return s.Refresh(ctx), false
}

// Verify re-checks the cached identity against the remote service.
// Failure or a missing user clears state and the snapshot; the caller
// routes on the returned state.
func (s *Service) Verify(ctx context.Context) State {
	user, err := s.client.GetAccount(ctx)
	if err != nil || user == nil {
		slog.Debug("background auth verify failed", "error", err)
		return s.clearState()
	}
	return s.setAuthenticated(user)
}

// Refresh performs the synchronous auth check: fetch the current user,
// cache on success, purge on any failure.
func (s *Service) Refresh(ctx context.Context) State {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	user, err := s.client.GetAccount(ctx)
	if err != nil || user == nil {
		slog.Debug("auth check failed", "error", err)
		return s.clearState()
	}
	return s.setAuthenticated(user)
}

// Login establishes a fresh session for the pre-provisioned account.
// Any cached state is cleared first and the previous remote session is
// torn down best-effort, so a half-dead session can never shadow the
// new one. The new session is confirmed by polling the current-user
// endpoint until the identity service agrees it exists.
func (s *Service) Login(ctx context.Context, email, password string) (State, error) {
	s.setAuthenticating(true)
	defer s.setAuthenticating(false)

	ClearSnapshot(s.snapshotPath)
	s.bestEffortLogout(ctx)
	s.client.ClearSession()

	session, err := s.client.CreateEmailSession(ctx, email, password)
	if err != nil {
		st := s.clearState()
		return st, fmt.Errorf("auth.Login: %w", err)
	}
	s.client.SetSession(session.Secret)

	user, err := s.pollAccount(ctx)
	if err != nil {
		s.client.ClearSession()
		st := s.clearState()
		return st, fmt.Errorf("auth.Login: confirm session: %w", err)
	}

	st := s.setAuthenticatedWithSecret(user, session.Secret)
	slog.Info("logged in", "user", user.ID)
	return st, nil
}

// Logout tears down the remote session best-effort and clears local
// state regardless of the remote outcome, so logging out while offline
// still leaves the client signed out.
func (s *Service) Logout(ctx context.Context) State {
	s.setAuthenticating(true)
	defer s.setAuthenticating(false)

	s.bestEffortLogout(ctx)
	s.client.ClearSession()
	slog.Info("logged out")
	return s.clearState()
}

// bestEffortLogout deletes the current remote session, falling back to
// deleting all sessions. Every failure is ignored; a failure here just
// means the user was already signed out (or the network is down).
func (s *Service) bestEffortLogout(ctx context.Context) {
	sessions, err := s.client.ListSessions(ctx)
	if err == nil && len(sessions) == 0 {
		return
	}
	if err == nil {
		if err := s.client.DeleteCurrentSession(ctx); err == nil {
			return
		}
	}
	if err := s.client.DeleteSessions(ctx); err != nil {
		slog.Debug("session cleanup failed, continuing", "error", err)
	}
}

// pollAccount fetches the current user, retrying with a capped backoff
// until the new session is visible or confirmTimeout passes.
func (s *Service) pollAccount(ctx context.Context) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	delay := 250 * time.Millisecond
	for {
		user, err := s.client.GetAccount(ctx)
		if err == nil && user != nil {
			return user, nil
		}
		select {
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
			return nil, err
		case <-time.After(delay):
		}
		if delay < 2*time.Second {
			delay *= 2
		}
	}
}

func (s *Service) setAuthenticating(v bool) {
	s.mu.Lock()
	s.state.Authenticating = v
	s.mu.Unlock()
}

func (s *Service) setAuthenticated(user *domain.User) State {
	return s.setAuthenticatedWithSecret(user, "")
}

func (s *Service) setAuthenticatedWithSecret(user *domain.User, secret string) State {
	now := s.now()
	s.mu.Lock()
	keep := s.state.Authenticating
	s.state = State{User: user, Authenticated: true, Authenticating: keep, LastFetch: now}
	st := s.state
	s.mu.Unlock()

	snap := Snapshot{User: user, IsAuthenticated: true, LastFetch: now, SessionSecret: secret}
	if secret == "" {
		if prev := LoadSnapshot(s.snapshotPath, now); prev != nil {
			snap.SessionSecret = prev.SessionSecret
		}
	}
	if err := SaveSnapshot(s.snapshotPath, snap); err != nil {
		slog.Warn("failed to persist auth snapshot", "error", err)
	}
	return st
}

func (s *Service) clearState() State {
	s.mu.Lock()
	keep := s.state.Authenticating
	s.state = State{Authenticating: keep}
	st := s.state
	s.mu.Unlock()
	ClearSnapshot(s.snapshotPath)
	return st
}
