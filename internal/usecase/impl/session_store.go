// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "sokoni/internal/delivery/context"
	"sokoni/internal/domain/entity"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/repository"
	"sokoni/internal/domain/service"
	"sokoni/internal/errors"
	"sokoni/internal/infra/localstore"
	"sokoni/internal/usecase"

	"go.uber.org/fx"
)

const (
	sessionSnapshotNamespace = "session"
	sessionSnapshotKey       = "current"
)

// sessionSnapshot is the persisted slice of session state. The loading flag
// is transient and never stored.
type sessionSnapshot struct {
	User            *entity.User `json:"user"`
	SessionToken    string       `json:"sessionToken"`
	AccessToken     string       `json:"accessToken"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// sessionStore implements the SessionStore interface.
type sessionStore struct {
	mu sync.RWMutex

	user          *entity.User
	sessionToken  string
	accessToken   string
	authenticated bool

	identity    service.IdentityProvider
	profileRepo repository.ProfileRepository
	snapshots   localstore.SnapshotStore
	logger      *slog.Logger
}

// SessionStoreParams holds dependencies for the session store, injected by Fx.
type SessionStoreParams struct {
	fx.In

	Identity    service.IdentityProvider
	ProfileRepo repository.ProfileRepository
	Snapshots   localstore.SnapshotStore
	Logger      *slog.Logger
}

// NewSessionStore is the constructor for sessionStore. State left by a
// previous run is rehydrated from the snapshot store; the session itself is
// still revalidated by the next CheckAuth.
func NewSessionStore(params SessionStoreParams) usecase.SessionStore {
	store := &sessionStore{
		identity:    params.Identity,
		profileRepo: params.ProfileRepo,
		snapshots:   params.Snapshots,
		logger:      params.Logger,
	}
	store.rehydrate()

	return store
}

// log returns a request-scoped logger if available, otherwise falls back to the store's logger.
func (store *sessionStore) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, store.logger)
}

// Login ends any existing session best-effort, establishes a new one and
// assembles the full user aggregate. Two concurrent Logins race; the later
// resolution wins and overwrites the earlier one's state.
func (store *sessionStore) Login(ctx context.Context, input usecase.LoginInput) (*entity.User, error) {
	// Best-effort teardown of a stale session. A failure here never blocks
	// the new login.
	store.mu.Lock()
	staleToken := store.sessionToken
	store.mu.Unlock()
	if staleToken != "" {
		if err := store.identity.DeleteSession(ctx, staleToken); err != nil {
			store.log(ctx).DebugContext(ctx, "stale session delete failed", slog.String("error", err.Error()))
		}
	}

	accountSession, err := store.identity.CreateEmailSession(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	user, err := store.assembleUser(ctx, accountSession.Account)
	if err != nil {
		return nil, err
	}

	store.mu.Lock()
	store.user = user
	store.sessionToken = accountSession.SessionToken
	store.accessToken = accountSession.AccessToken
	store.authenticated = true
	store.persistLocked(ctx)
	store.mu.Unlock()

	store.log(ctx).InfoContext(ctx, "user logged in",
		slog.String("accountID", user.ID.String()),
		slog.String("role", user.Role.String()),
	)

	return user, nil
}

// Register creates the account, an immediate session and the profile document
// seeded with the requested role and default preference/stat blocks.
func (store *sessionStore) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	account, err := store.identity.CreateAccount(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	profile := &entity.Profile{
		AccountID:   account.ID,
		Role:        entity.NormalizeRole(input.Role).String(),
		Preferences: entity.DefaultPreferences(),
	}
	if entity.NormalizeRole(input.Role) == entity.RoleSeller {
		profile.SellerProfile = &entity.SellerProfile{StoreName: input.Name}
	}
	if err := store.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	accountSession, err := store.identity.CreateEmailSession(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	user, err := store.assembleUser(ctx, accountSession.Account)
	if err != nil {
		return nil, err
	}

	store.mu.Lock()
	store.user = user
	store.sessionToken = accountSession.SessionToken
	store.accessToken = accountSession.AccessToken
	store.authenticated = true
	store.persistLocked(ctx)
	store.mu.Unlock()

	store.log(ctx).InfoContext(ctx, "user registered",
		slog.String("accountID", user.ID.String()),
		slog.String("role", user.Role.String()),
	)

	return user, nil
}

// Logout clears local state unconditionally and deletes the remote session
// best-effort. It never fails; the result reports whether the remote side
// acknowledged.
func (store *sessionStore) Logout(ctx context.Context) usecase.LogoutResult {
	store.mu.Lock()
	token := store.sessionToken
	store.clearLocked(ctx)
	store.mu.Unlock()

	result := usecase.LogoutResult{}
	if token == "" {
		return result
	}

	if err := store.identity.DeleteSession(ctx, token); err != nil {
		store.log(ctx).WarnContext(ctx, "remote session delete failed; session expires server-side",
			slog.String("error", err.Error()),
		)

		return result
	}

	result.RemoteSessionEnded = true

	return result
}

// CheckAuth rehydrates the user from an existing remote session. Any failure
// clears local state; the outcome is always determinate.
func (store *sessionStore) CheckAuth(ctx context.Context) (*entity.User, bool) {
	store.mu.RLock()
	token := store.sessionToken
	store.mu.RUnlock()

	if token == "" {
		store.mu.Lock()
		store.clearLocked(ctx)
		store.mu.Unlock()

		return nil, false
	}

	account, err := store.identity.GetAccount(ctx, token)
	if err != nil {
		store.log(ctx).DebugContext(ctx, "session check failed", slog.String("error", err.Error()))
		store.mu.Lock()
		store.clearLocked(ctx)
		store.mu.Unlock()

		return nil, false
	}

	user, err := store.assembleUser(ctx, account)
	if err != nil {
		store.log(ctx).WarnContext(ctx, "profile assembly failed during session check",
			slog.String("accountID", account.ID.String()),
			slog.String("error", err.Error()),
		)
		store.mu.Lock()
		store.clearLocked(ctx)
		store.mu.Unlock()

		return nil, false
	}

	store.mu.Lock()
	store.user = user
	store.authenticated = true
	store.persistLocked(ctx)
	store.mu.Unlock()

	return user, true
}

// UpdateProfile shallow-merges the patch into the in-memory user. The change
// is local-only: the profile document in the database is not written back.
func (store *sessionStore) UpdateProfile(patch usecase.ProfilePatch) (*entity.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.authenticated || store.user == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	updated := *store.user
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Bio != nil {
		updated.SocialProfile.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		updated.SocialProfile.AvatarURL = *patch.AvatarURL
	}
	if patch.Website != nil {
		updated.SocialProfile.Website = *patch.Website
	}
	if patch.StoreName != nil || patch.StoreDescription != nil {
		seller := entity.SellerProfile{}
		if updated.SellerProfile != nil {
			seller = *updated.SellerProfile
		}
		if patch.StoreName != nil {
			seller.StoreName = *patch.StoreName
		}
		if patch.StoreDescription != nil {
			seller.StoreDescription = *patch.StoreDescription
		}
		updated.SellerProfile = &seller
	}
	if patch.Preferences != nil {
		updated.Preferences = *patch.Preferences
	}

	store.user = &updated
	store.persistLocked(context.Background())

	return &updated, nil
}

// CurrentUser returns the authenticated user, if any.
func (store *sessionStore) CurrentUser() (*entity.User, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if !store.authenticated || store.user == nil {
		return nil, false
	}

	return store.user, true
}

// IsAuthenticated reports whether a user is currently logged in.
func (store *sessionStore) IsAuthenticated() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.authenticated
}

// AccessToken returns the bearer token of the current session, if any.
func (store *sessionStore) AccessToken() (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if !store.authenticated {
		return "", false
	}

	return store.accessToken, true
}

// assembleUser merges the provider's account record with the profile
// document into the client-facing aggregate. A missing document is a
// data-integrity failure, not a login failure.
func (store *sessionStore) assembleUser(ctx context.Context, account *entity.Account) (*entity.User, error) {
	profile, err := store.profileRepo.FindByAccountID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileMissing
		}

		return nil, err
	}

	role := entity.NormalizeRole(profile.Role)
	if profile.Role != role.String() {
		store.log(ctx).WarnContext(ctx, "stored role normalized",
			slog.String("accountID", account.ID.String()),
			slog.String("storedRole", profile.Role),
			slog.String("normalizedRole", role.String()),
		)
	}

	preferences := profile.Preferences
	if preferences == (entity.Preferences{}) {
		preferences = entity.DefaultPreferences()
	}

	return &entity.User{
		ID:            account.ID,
		Email:         account.Email,
		Name:          account.Name,
		Role:          role,
		Verified:      account.Verified,
		SellerProfile: profile.SellerProfile,
		SocialProfile: profile.SocialProfile,
		Preferences:   preferences,
		Stats:         profile.Stats,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}, nil
}

// clearLocked wipes local state and its snapshot. Callers hold the mutex.
func (store *sessionStore) clearLocked(ctx context.Context) {
	store.user = nil
	store.sessionToken = ""
	store.accessToken = ""
	store.authenticated = false

	if err := store.snapshots.Delete(sessionSnapshotNamespace, sessionSnapshotKey); err != nil {
		store.log(ctx).WarnContext(ctx, "session snapshot delete failed", slog.String("error", err.Error()))
	}
}

// persistLocked writes the current state snapshot. Callers hold the mutex.
func (store *sessionStore) persistLocked(ctx context.Context) {
	snapshot := sessionSnapshot{
		User:            store.user,
		SessionToken:    store.sessionToken,
		AccessToken:     store.accessToken,
		IsAuthenticated: store.authenticated,
	}
	if err := store.snapshots.Save(sessionSnapshotNamespace, sessionSnapshotKey, snapshot); err != nil {
		store.log(ctx).WarnContext(ctx, "session snapshot save failed", slog.String("error", err.Error()))
	}
}

func (store *sessionStore) rehydrate() {
	var snapshot sessionSnapshot
	err := store.snapshots.Load(sessionSnapshotNamespace, sessionSnapshotKey, &snapshot)
	if err != nil {
		if !errors.Is(err, localstore.ErrSnapshotNotFound) {
			store.logger.Warn("session snapshot load failed", slog.String("error", err.Error()))
		}

		return
	}

	store.user = snapshot.User
	store.sessionToken = snapshot.SessionToken
	store.accessToken = snapshot.AccessToken
	store.authenticated = snapshot.IsAuthenticated && snapshot.User != nil
}
