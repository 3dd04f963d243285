// Package authstate implements the client-side session/profile state
// container. It owns the {user, profile, loading} triple the app routes on,
// and the lifecycle around it: bootstrap, provider change events, sign-in
// with cancellation as a no-op, and optimistic sign-out.
package authstate

import (
	"context"
	"errors"
	"sync"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
)

// Identity is the signed-in user as asserted by the session provider.
type Identity struct {
	UserID int
	Email  string
}

// SessionProvider is the hosted auth service: it issues sessions and emits
// change events on sign-in/sign-out.
type SessionProvider interface {
	// Current returns the existing session, or (nil, nil) when signed out.
	Current(ctx context.Context) (*Identity, error)
	// SignInWithGoogle and SignInWithApple return
	// domain.ErrSignInCancelled when the user dismissed the provider UI.
	SignInWithGoogle(ctx context.Context, credential string) (*Identity, error)
	SignInWithApple(ctx context.Context, credential string) (*Identity, error)
	SignOut(ctx context.Context) error
	// Subscribe registers a session-change callback and returns an
	// unsubscribe function. The callback receives nil on sign-out.
	Subscribe(fn func(*Identity)) (unsubscribe func())
}

// ProfileStore fetches the profile document for a user.
type ProfileStore interface {
	Fetch(ctx context.Context, userID int) (*domain.ProfileDocument, error)
}

// Cache is local storage for the last-seen profile document, read once at
// startup for instant paint.
type Cache interface {
	Load(ctx context.Context) (*domain.ProfileDocument, error)
	Store(ctx context.Context, doc *domain.ProfileDocument) error
	Clear(ctx context.Context) error
}

// Snapshot is one consistent observation of the holder's state.
type Snapshot struct {
	User    *Identity
	Profile *domain.ProfileDocument
	Loading bool
}

// Holder is the state container. Concurrent refreshes are not de-duplicated;
// the last write wins, which is acceptable for this flow.
type Holder struct {
	provider SessionProvider
	store    ProfileStore
	cache    Cache
	log      logging.Logger

	mu      sync.Mutex
	user    *Identity
	profile *domain.ProfileDocument
	loading bool

	subs        map[int]func(Snapshot)
	nextSubID   int
	unsubscribe func()
}

func NewHolder(provider SessionProvider, store ProfileStore, cache Cache, log logging.Logger) *Holder {
	return &Holder{
		provider: provider,
		store:    store,
		cache:    cache,
		log:      log,
		loading:  true,
		subs:     map[int]func(Snapshot){},
	}
}

// Initialize bootstraps the holder: cached profile first for instant paint,
// then session resolution, then the profile fetch. loading turns false only
// after session and profile have settled; the cache read does not gate it.
func (h *Holder) Initialize(ctx context.Context) {
	if cached, err := h.cache.Load(ctx); err != nil {
		h.log.Warn(ctx, "cached profile load failed", "error", err)
	} else if cached != nil {
		h.mu.Lock()
		h.profile = cached
		h.mu.Unlock()
		h.notify()
	}

	user, err := h.provider.Current(ctx)
	if err != nil {
		h.log.Warn(ctx, "session resolution failed", "error", err)
		user = nil
	}

	var profile *domain.ProfileDocument
	if user != nil {
		profile = h.fetchProfile(ctx, user.UserID)
	}

	h.mu.Lock()
	h.user = user
	h.profile = profile
	h.loading = false
	h.mu.Unlock()
	h.notify()

	// Session events arrive for the holder's whole lifetime, which outlives
	// a bootstrap-scoped ctx; fetches they trigger get a fresh context.
	h.unsubscribe = h.provider.Subscribe(func(id *Identity) {
		h.onSessionChange(context.Background(), id)
	})
}

// Close tears the holder down; it stops receiving session events.
func (h *Holder) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
}

// fetchProfile treats a missing profile row as a valid pre-onboarding state.
func (h *Holder) fetchProfile(ctx context.Context, userID int) *domain.ProfileDocument {
	doc, err := h.store.Fetch(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			h.log.Warn(ctx, "profile fetch failed", "user_id", userID, "error", err)
		}
		return nil
	}
	return doc
}

func (h *Holder) onSessionChange(ctx context.Context, id *Identity) {
	if id == nil {
		if err := h.cache.Clear(ctx); err != nil {
			h.log.Warn(ctx, "cached profile clear failed", "error", err)
		}
		h.mu.Lock()
		h.user = nil
		h.profile = nil
		h.mu.Unlock()
		h.notify()
		return
	}

	profile := h.fetchProfile(ctx, id.UserID)
	h.mu.Lock()
	h.user = id
	h.profile = profile
	h.mu.Unlock()
	h.notify()
}

// SignInWithGoogle delegates to the provider. Cancellation resolves to
// (nil, nil) and leaves state untouched; the caller must not treat it as an
// error.
func (h *Holder) SignInWithGoogle(ctx context.Context, credential string) (*Identity, error) {
	return h.signIn(ctx, credential, h.provider.SignInWithGoogle)
}

// SignInWithApple behaves like SignInWithGoogle.
func (h *Holder) SignInWithApple(ctx context.Context, credential string) (*Identity, error) {
	return h.signIn(ctx, credential, h.provider.SignInWithApple)
}

func (h *Holder) signIn(ctx context.Context, credential string, do func(context.Context, string) (*Identity, error)) (*Identity, error) {
	id, err := do(ctx, credential)
	if err != nil {
		if errors.Is(err, domain.ErrSignInCancelled) {
			return nil, nil
		}
		return nil, err
	}

	profile := h.fetchProfile(ctx, id.UserID)
	h.mu.Lock()
	h.user = id
	h.profile = profile
	h.mu.Unlock()
	h.storeCache(ctx, profile)
	h.notify()
	return id, nil
}

// RefreshProfile re-fetches the profile for the current user; no-op when
// signed out.
func (h *Holder) RefreshProfile(ctx context.Context) {
	h.mu.Lock()
	user := h.user
	h.mu.Unlock()
	if user == nil {
		return
	}

	profile := h.fetchProfile(ctx, user.UserID)
	h.mu.Lock()
	h.profile = profile
	h.mu.Unlock()
	h.storeCache(ctx, profile)
	h.notify()
}

// SignOut is optimistic: local state and the cache are cleared regardless of
// whether revocation succeeded. A revocation failure is logged, not
// returned.
func (h *Holder) SignOut(ctx context.Context) {
	if err := h.provider.SignOut(ctx); err != nil {
		h.log.Warn(ctx, "session revocation failed, clearing local state anyway", "error", err)
	}
	if err := h.cache.Clear(ctx); err != nil {
		h.log.Warn(ctx, "cached profile clear failed", "error", err)
	}

	h.mu.Lock()
	h.user = nil
	h.profile = nil
	h.mu.Unlock()
	h.notify()
}

func (h *Holder) storeCache(ctx context.Context, doc *domain.ProfileDocument) {
	if doc == nil {
		return
	}
	if err := h.cache.Store(ctx, doc); err != nil {
		h.log.Warn(ctx, "cached profile store failed", "error", err)
	}
}

// Snapshot returns the current state.
func (h *Holder) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Snapshot{User: h.user, Profile: h.profile, Loading: h.loading}
}

// Resolve runs the onboarding router against the current state.
func (h *Holder) Resolve(current domain.Route) domain.Decision {
	snap := h.Snapshot()
	var user *domain.User
	if snap.User != nil {
		if snap.Profile != nil {
			u := snap.Profile.User
			user = &u
		} else {
			// Signed in but no profile document yet: pre-onboarding.
			user = &domain.User{ID: snap.User.UserID, OnboardingStep: domain.FirstStep}
		}
	}
	return domain.Resolve(user, current, snap.Loading)
}

// Subscribe registers a state-change callback and returns an unsubscribe
// function. Callbacks run outside the holder's lock.
func (h *Holder) Subscribe(fn func(Snapshot)) func() {
	h.mu.Lock()
	id := h.nextSubID
	h.nextSubID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *Holder) notify() {
	h.mu.Lock()
	snap := Snapshot{User: h.user, Profile: h.profile, Loading: h.loading}
	fns := make([]func(Snapshot), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
