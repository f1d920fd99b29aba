package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"sokoni/internal/domain/entity"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/repository"
	"sokoni/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes ---

type fakeAccountRepo struct {
	accounts    map[uuid.UUID]*entity.Account
	credentials map[string]*entity.Credential // keyed by email
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:    make(map[uuid.UUID]*entity.Account),
		credentials: make(map[string]*entity.Credential),
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account, credential *entity.Credential) error {
	if _, exists := r.credentials[account.Email]; exists {
		return domainerrors.ErrAccountAlreadyExists
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	credential.AccountID = account.ID

	r.accounts[account.ID] = account
	r.credentials[account.Email] = credential

	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindCredentialByEmail(_ context.Context, email string) (*entity.Credential, error) {
	credential, ok := r.credentials[email]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return credential, nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session // keyed by token hash
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	r.sessions[session.TokenHash] = session

	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, hash string) (*entity.Session, error) {
	session, ok := r.sessions[hash]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, hash string) error {
	if _, ok := r.sessions[hash]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(r.sessions, hash)

	return nil
}

func (r *fakeSessionRepo) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	for hash, session := range r.sessions {
		if session.AccountID == accountID {
			delete(r.sessions, hash)
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var count int64
	now := time.Now()
	for hash, session := range r.sessions {
		if now.After(session.ExpiresAt) {
			delete(r.sessions, hash)
			count++
		}
	}

	return count, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entity.Profile) error {
	r.profiles[profile.AccountID] = profile

	return nil
}

func (r *fakeProfileRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	profile, ok := r.profiles[accountID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	return profile, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *entity.Profile) error {
	if _, ok := r.profiles[profile.AccountID]; !ok {
		return repository.ErrProfileNotFound
	}
	r.profiles[profile.AccountID] = profile

	return nil
}

// fakeTxManager forwards the factory call without any transaction semantics.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeRepoFactory struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository { return f.accountRepo }
func (f *fakeRepoFactory) SessionRepo() repository.SessionRepository { return f.sessionRepo }
func (f *fakeRepoFactory) ProfileRepo() repository.ProfileRepository { return f.profileRepo }

// fakeHasher marks hashes with a prefix instead of running bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }
func (fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password too short")
	}

	return nil
}

type fakeTokenService struct {
	counter int
}

func (s *fakeTokenService) GenerateAccessToken(accountID uuid.UUID, role entity.Role) (string, error) {
	return fmt.Sprintf("access:%s:%s", accountID, role), nil
}

func (s *fakeTokenService) ValidateAccessToken(string) (*service.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTokenService) NewSessionToken() string {
	s.counter++

	return fmt.Sprintf("session-token-%d", s.counter)
}

func (s *fakeTokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (s *fakeTokenService) SessionTTL() time.Duration { return time.Hour }

type providerFixture struct {
	provider    service.IdentityProvider
	accountRepo *fakeAccountRepo
	sessionRepo *fakeSessionRepo
	profileRepo *fakeProfileRepo
}

func newProviderFixture() *providerFixture {
	accountRepo := newFakeAccountRepo()
	sessionRepo := newFakeSessionRepo()
	profileRepo := newFakeProfileRepo()
	factory := &fakeRepoFactory{accountRepo: accountRepo, sessionRepo: sessionRepo, profileRepo: profileRepo}

	return &providerFixture{
		provider: NewProvider(
			&fakeTxManager{factory: factory},
			accountRepo,
			sessionRepo,
			profileRepo,
			fakeHasher{},
			&fakeTokenService{},
		),
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
	}
}

// --- tests ---

func TestProvider_CreateAccount(t *testing.T) {
	fix := newProviderFixture()
	ctx := context.Background()

	account, err := fix.provider.CreateAccount(ctx, "amina@example.com", "correct-horse", "Amina")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "amina@example.com", account.Email)

	// Credential is stored hashed, never plaintext.
	credential, err := fix.accountRepo.FindCredentialByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:correct-horse", credential.PasswordHash)
}

func TestProvider_CreateAccount_WeakPassword(t *testing.T) {
	fix := newProviderFixture()

	_, err := fix.provider.CreateAccount(context.Background(), "amina@example.com", "short", "Amina")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPasswordStrength.ErrorCode(), appErr.ErrorCode())
}

func TestProvider_CreateEmailSession(t *testing.T) {
	fix := newProviderFixture()
	ctx := context.Background()

	account, err := fix.provider.CreateAccount(ctx, "amina@example.com", "correct-horse", "Amina")
	require.NoError(t, err)
	fix.profileRepo.profiles[account.ID] = &entity.Profile{AccountID: account.ID, Role: "SELLER"}

	session, err := fix.provider.CreateEmailSession(ctx, "amina@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, account.ID, session.Account.ID)
	assert.NotEmpty(t, session.SessionToken)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	// Access token embeds the normalized role.
	assert.Contains(t, session.AccessToken, ":seller")

	// Only the hash of the session token is stored.
	for hash := range fix.sessionRepo.sessions {
		assert.NotEqual(t, session.SessionToken, hash)
	}
}

func TestProvider_CreateEmailSession_BadCredentials(t *testing.T) {
	fix := newProviderFixture()
	ctx := context.Background()

	_, err := fix.provider.CreateAccount(ctx, "amina@example.com", "correct-horse", "Amina")
	require.NoError(t, err)

	// Wrong password and unknown email read identically.
	_, wrongPassErr := fix.provider.CreateEmailSession(ctx, "amina@example.com", "wrong")
	_, unknownErr := fix.provider.CreateEmailSession(ctx, "nobody@example.com", "correct-horse")

	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
}

func TestProvider_GetAccount(t *testing.T) {
	fix := newProviderFixture()
	ctx := context.Background()

	_, err := fix.provider.CreateAccount(ctx, "amina@example.com", "correct-horse", "Amina")
	require.NoError(t, err)

	session, err := fix.provider.CreateEmailSession(ctx, "amina@example.com", "correct-horse")
	require.NoError(t, err)

	account, err := fix.provider.GetAccount(ctx, session.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, session.Account.ID, account.ID)

	_, err = fix.provider.GetAccount(ctx, "bogus-token")
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}

func TestProvider_GetAccount_ExpiredSessionIsRemoved(t *testing.T) {
	fix := newProviderFixture()
	ctx := context.Background()

	_, err := fix.provider.CreateAccount(ctx, "amina@example.com", "correct-horse", "Amina")
	require.NoError(t, err)

	session, err := fix.provider.CreateEmailSession(ctx, "amina@example.com", "correct-horse")
	require.NoError(t, err)

	// Force the stored session past its expiry.
	for _, stored := range fix.sessionRepo.sessions {
		stored.ExpiresAt = time.Now().Add(-time.Minute)
	}

	_, err = fix.provider.GetAccount(ctx, session.SessionToken)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
	assert.Empty(t, fix.sessionRepo.sessions)
}

func TestProvider_DeleteSession(t *testing.T) {
	fix := newProviderFixture()
	ctx := context.Background()

	_, err := fix.provider.CreateAccount(ctx, "amina@example.com", "correct-horse", "Amina")
	require.NoError(t, err)

	session, err := fix.provider.CreateEmailSession(ctx, "amina@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, fix.provider.DeleteSession(ctx, session.SessionToken))
	assert.Empty(t, fix.sessionRepo.sessions)

	// Deleting an already-gone session is not an error.
	assert.NoError(t, fix.provider.DeleteSession(ctx, session.SessionToken))
}

func TestProvider_DeleteSessions(t *testing.T) {
	fix := newProviderFixture()
	ctx := context.Background()

	account, err := fix.provider.CreateAccount(ctx, "amina@example.com", "correct-horse", "Amina")
	require.NoError(t, err)

	_, err = fix.provider.CreateEmailSession(ctx, "amina@example.com", "correct-horse")
	require.NoError(t, err)
	_, err = fix.provider.CreateEmailSession(ctx, "amina@example.com", "correct-horse")
	require.NoError(t, err)
	require.Len(t, fix.sessionRepo.sessions, 2)

	require.NoError(t, fix.provider.DeleteSessions(ctx, account.ID))
	assert.Empty(t, fix.sessionRepo.sessions)
}
