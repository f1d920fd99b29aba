package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"sokoni/internal/domain/entity"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/repository"
	"sokoni/internal/domain/service"
	"sokoni/internal/errors"
	"sokoni/internal/infra/localstore"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnowflakeNode(t *testing.T) *snowflake.Node {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return node
}

// memorySnapshotStore is an in-memory stand-in for the bbolt snapshot store.
type memorySnapshotStore struct {
	data map[string][]byte
}

func newMemorySnapshotStore() *memorySnapshotStore {
	return &memorySnapshotStore{data: make(map[string][]byte)}
}

func (s *memorySnapshotStore) Save(namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[namespace+"/"+key] = raw

	return nil
}

func (s *memorySnapshotStore) Load(namespace, key string, out any) error {
	raw, ok := s.data[namespace+"/"+key]
	if !ok {
		return localstore.ErrSnapshotNotFound
	}

	return json.Unmarshal(raw, out)
}

func (s *memorySnapshotStore) Delete(namespace, key string) error {
	delete(s.data, namespace+"/"+key)

	return nil
}

// fakeIdentity is a scripted identity provider.
type fakeIdentity struct {
	accounts       map[string]*entity.Account // keyed by email
	passwords      map[string]string          // keyed by email
	activeSessions map[string]uuid.UUID       // session token -> account id
	tokenCounter   int
	deleteFails    bool
	deleteCalls    int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		accounts:       make(map[string]*entity.Account),
		passwords:      make(map[string]string),
		activeSessions: make(map[string]uuid.UUID),
	}
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, password, name string) (*entity.Account, error) {
	if _, exists := f.accounts[email]; exists {
		return nil, domainerrors.ErrAccountAlreadyExists
	}

	account := &entity.Account{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.accounts[email] = account
	f.passwords[email] = password

	return account, nil
}

func (f *fakeIdentity) CreateEmailSession(_ context.Context, email, password string) (*service.AccountSession, error) {
	account, ok := f.accounts[email]
	if !ok || f.passwords[email] != password {
		return nil, domainerrors.ErrInvalidCredentials
	}

	f.tokenCounter++
	token := "session-" + uuid.NewString()
	f.activeSessions[token] = account.ID

	return &service.AccountSession{
		Account:      account,
		SessionToken: token,
		AccessToken:  "access-" + account.ID.String(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeIdentity) GetAccount(_ context.Context, sessionToken string) (*entity.Account, error) {
	accountID, ok := f.activeSessions[sessionToken]
	if !ok {
		return nil, domainerrors.ErrSessionExpired
	}

	for _, account := range f.accounts {
		if account.ID == accountID {
			return account, nil
		}
	}

	return nil, domainerrors.ErrSessionExpired
}

func (f *fakeIdentity) DeleteSession(_ context.Context, sessionToken string) error {
	f.deleteCalls++
	if f.deleteFails {
		return errors.New("identity provider unreachable")
	}
	delete(f.activeSessions, sessionToken)

	return nil
}

func (f *fakeIdentity) DeleteSessions(_ context.Context, accountID uuid.UUID) error {
	for token, id := range f.activeSessions {
		if id == accountID {
			delete(f.activeSessions, token)
		}
	}

	return nil
}

// fakeProfiles is an in-memory profile repository.
type fakeProfiles struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfiles) Create(_ context.Context, profile *entity.Profile) error {
	f.profiles[profile.AccountID] = profile

	return nil
}

func (f *fakeProfiles) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	profile, ok := f.profiles[accountID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	return profile, nil
}

func (f *fakeProfiles) Update(_ context.Context, profile *entity.Profile) error {
	if _, ok := f.profiles[profile.AccountID]; !ok {
		return repository.ErrProfileNotFound
	}
	f.profiles[profile.AccountID] = profile

	return nil
}
