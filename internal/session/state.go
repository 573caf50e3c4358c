// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/blogfront/internal/model"
)

// ErrInvalidToken is returned by Login when the supplied token cannot be
// decoded or is already expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Snapshot is a read-only view of the session.
type Snapshot struct {
	LoggedIn bool
	UserID   model.ID
}

// loggedOut is the state of a session without a usable token.
var loggedOut = Snapshot{}

// State is the authentication state derived from a persisted token.
// It is owned by whoever constructs it and handed to every controller;
// mutation goes through Login and Logout only.
type State struct {
	store  TokenStore
	now    func() time.Time
	key    []byte
	logger *slog.Logger

	mu      sync.RWMutex
	snap    Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option configures a State.
type Option func(*State)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithVerificationKey enables HMAC signature verification of tokens.
// Without a key, tokens are decoded without verification and the claims
// are advisory only; the API remains the authority.
func WithVerificationKey(key []byte) Option {
	return func(s *State) { s.key = key }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) { s.logger = logger }
}

// New creates a logged-out State over store. Call Initialize to derive the
// state from the persisted token.
func New(store TokenStore, opts ...Option) *State {
	s := &State{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
		subs:   make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize re-derives the state from the persisted token. An undecodable
// or expired token is erased from the store.
func (s *State) Initialize(ctx context.Context) error {
	_, err := s.initialize(ctx)
	return err
}

func (s *State) initialize(ctx context.Context) (Snapshot, error) {
	token, err := s.store.Load(ctx)
	if err != nil {
		s.set(loggedOut)
		return loggedOut, fmt.Errorf("loading token: %w", err)
	}
	if token == "" {
		s.set(loggedOut)
		return loggedOut, nil
	}

	// Expired, malformed and id-less tokens all end the session.
	claims, err := DecodeToken(token, s.now(), s.key)
	if err != nil {
		s.logger.Debug("discarding stored token", "error", err)
		s.set(loggedOut)
		if delErr := s.store.Delete(ctx); delErr != nil {
			return loggedOut, fmt.Errorf("erasing invalid token: %w", delErr)
		}
		return loggedOut, nil
	}

	snap := Snapshot{LoggedIn: true, UserID: claims.UserID}
	s.set(snap)
	return snap, nil
}

// Login persists token, re-initializes and notifies subscribers.
// ErrInvalidToken is returned when the token does not yield a session.
func (s *State) Login(ctx context.Context, token string) error {
	if err := s.store.Save(ctx, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	snap, err := s.initialize(ctx)
	s.notify(snap)
	if err != nil {
		return err
	}
	if !snap.LoggedIn {
		return ErrInvalidToken
	}
	s.logger.Info("session started", "user_id", snap.UserID)
	return nil
}

// Logout erases the persisted token and notifies subscribers.
// The in-memory state is cleared even when erasing fails.
func (s *State) Logout(ctx context.Context) error {
	err := s.store.Delete(ctx)
	prev := s.Snapshot()
	s.set(loggedOut)
	s.notify(loggedOut)
	if err != nil {
		return fmt.Errorf("erasing token: %w", err)
	}
	if prev.LoggedIn {
		s.logger.Info("session ended", "user_id", prev.UserID)
	}
	return nil
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// LoggedIn reports whether a valid token is present.
func (s *State) LoggedIn() bool {
	return s.Snapshot().LoggedIn
}

// UserID returns the id of the logged-in user, or an empty ID.
func (s *State) UserID() model.ID {
	return s.Snapshot().UserID
}

// Token returns the persisted token. It satisfies apiclient.TokenSource.
func (s *State) Token(ctx context.Context) (string, error) {
	return s.store.Load(ctx)
}

// Subscribe registers fn to be called after every Login and Logout.
// The returned function removes the subscription.
func (s *State) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *State) set(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// notify calls subscribers outside the lock so they may read the state.
func (s *State) notify(snap Snapshot) {
	s.mu.RLock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snap)
	}
}
