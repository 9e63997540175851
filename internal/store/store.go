// Package store is the data layer between the views and the remote
// document service: a small request cache with per-kind staleness, one
// retry for flaky calls, and cache invalidation on every mutation.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/niyontwali/personal-job-at/pkg/appwrite"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

const (
	listStaleAfter   = 5 * time.Minute
	detailStaleAfter = 10 * time.Minute
	retryDelay       = time.Second
)

type listEntry struct {
	apps    []domain.Application
	fetched time.Time
}

type detailEntry struct {
	app     *domain.Application
	fetched time.Time
}

// Store caches reads and routes mutations for the application
// collection. Reads are served from cache while fresh; mutations
// invalidate the affected cache entries before reporting success, so
// the next read always observes the change.
type Store struct {
	client *appwrite.Client
	userID func() string
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error

	mu      sync.Mutex
	list    *listEntry
	details map[string]*detailEntry
}

// New creates a store. userID supplies the owner id stamped on new
// documents and used to scope list queries.
func New(client *appwrite.Client, userID func() string) *Store {
	return &Store{
		client:  client,
		userID:  userID,
		now:     time.Now,
		sleep:   sleepCtx,
		details: make(map[string]*detailEntry),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Applications returns the user's applications, newest first. A cached
// result younger than five minutes is served as is.
func (s *Store) Applications(ctx context.Context) ([]domain.Application, error) {
	s.mu.Lock()
	if e := s.list; e != nil && s.now().Sub(e.fetched) < listStaleAfter {
		apps := e.apps
		s.mu.Unlock()
		return apps, nil
	}
	s.mu.Unlock()

	var list *appwrite.ApplicationList
	err := s.withRetry(ctx, true, func() error {
		var err error
		list, err = s.client.ListApplications(ctx,
			appwrite.Equal("userId", s.userID()),
			appwrite.OrderDesc("$createdAt"),
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store.Applications: %w", err)
	}

	s.mu.Lock()
	s.list = &listEntry{apps: list.Applications, fetched: s.now()}
	s.mu.Unlock()
	return list.Applications, nil
}

// Application returns a single application by id. A cached result
// younger than ten minutes is served as is.
func (s *Store) Application(ctx context.Context, id string) (*domain.Application, error) {
	s.mu.Lock()
	if e := s.details[id]; e != nil && s.now().Sub(e.fetched) < detailStaleAfter {
		app := e.app
		s.mu.Unlock()
		return app, nil
	}
	s.mu.Unlock()

	var app *domain.Application
	err := s.withRetry(ctx, true, func() error {
		var err error
		app, err = s.client.GetApplication(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store.Application: %w", err)
	}

	s.mu.Lock()
	s.details[id] = &detailEntry{app: app, fetched: s.now()}
	s.mu.Unlock()
	return app, nil
}

// Create stores a new application under a client-generated id. The
// list cache is invalidated before the created record is returned.
func (s *Store) Create(ctx context.Context, in domain.ApplicationInput) (*domain.Application, error) {
	in.UserID = s.userID()
	id := uuid.NewString()

	var app *domain.Application
	err := s.withRetry(ctx, false, func() error {
		var err error
		app, err = s.client.CreateApplication(ctx, id, in)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store.Create: %w", err)
	}

	s.invalidate(app.ID)
	slog.Info("application created", "id", app.ID, "company", app.CompanyName)
	return app, nil
}

// Update rewrites an application. Both the list cache and the record's
// detail cache are invalidated before the updated record is returned.
func (s *Store) Update(ctx context.Context, id string, in domain.ApplicationInput) (*domain.Application, error) {
	in.UserID = s.userID()

	var app *domain.Application
	err := s.withRetry(ctx, false, func() error {
		var err error
		app, err = s.client.UpdateApplication(ctx, id, in)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store.Update: %w", err)
	}

	s.invalidate(id)
	slog.Info("application updated", "id", id)
	return app, nil
}

// Delete removes an application and invalidates the caches that could
// still show it.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.withRetry(ctx, false, func() error {
		return s.client.DeleteApplication(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("store.Delete: %w", err)
	}

	s.invalidate(id)
	slog.Info("application deleted", "id", id)
	return nil
}

// Invalidate drops every cached result. Used when the signed-in user
// changes.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.list = nil
	s.details = make(map[string]*detailEntry)
	s.mu.Unlock()
}

func (s *Store) invalidate(id string) {
	s.mu.Lock()
	s.list = nil
	delete(s.details, id)
	s.mu.Unlock()
}

// withRetry runs call and retries it once after a short delay. Reads
// retry on any failure; mutations (always=false) retry only on
// transport-level failures, so a rejected write is never re-issued.
func (s *Store) withRetry(ctx context.Context, always bool, call func() error) error {
	err := call()
	if err == nil {
		return nil
	}
	if !always && appwrite.IsHTTP(err) {
		return err
	}
	slog.Debug("retrying after failure", "error", err)
	if serr := s.sleep(ctx, retryDelay); serr != nil {
		return err
	}
	return call()
}
