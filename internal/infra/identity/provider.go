// Package identity implements the identity provider on top of the
// persistence layer. It owns account creation, credential checks and the
// opaque-session lifecycle.
package identity

import (
	"context"
	"time"

	"sokoni/internal/domain/entity"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/repository"
	"sokoni/internal/domain/service"
	"sokoni/internal/errors"

	"github.com/google/uuid"
)

type provider struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	sessionRepo  repository.SessionRepository
	profileRepo  repository.ProfileRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
}

// NewProvider is the constructor for the identity provider.
func NewProvider(
	txManager repository.TransactionManager,
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
) service.IdentityProvider {
	return &provider{
		txManager:    txManager,
		accountRepo:  accountRepo,
		sessionRepo:  sessionRepo,
		profileRepo:  profileRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

// CreateAccount registers a new account with an email/password credential.
// The account and credential rows are written atomically.
func (p *provider) CreateAccount(ctx context.Context, email, password, name string) (*entity.Account, error) {
	if err := p.hasher.ValidatePasswordStrength(password); err != nil {
		return nil, domainerrors.ErrPasswordStrength.WrapMessage(err.Error())
	}

	hash, err := p.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	account := &entity.Account{
		Email: email,
		Name:  name,
	}
	credential := &entity.Credential{
		PasswordHash: hash,
	}

	err = p.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Create(ctx, account, credential)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// CreateEmailSession authenticates the credentials and establishes a session.
// Wrong email and wrong password are indistinguishable to the caller.
func (p *provider) CreateEmailSession(ctx context.Context, email, password string) (*service.AccountSession, error) {
	credential, err := p.accountRepo.FindCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) || errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "load credential")
	}

	if !p.hasher.Check(password, credential.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	account, err := p.accountRepo.FindByID(ctx, credential.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "load account")
	}

	token := p.tokenService.NewSessionToken()
	session := &entity.Session{
		AccountID: account.ID,
		TokenHash: p.tokenService.HashToken(token),
		ExpiresAt: time.Now().Add(p.tokenService.SessionTTL()),
	}
	if err := p.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := p.generateAccessToken(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &service.AccountSession{
		Account:      account,
		SessionToken: token,
		AccessToken:  accessToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// GetAccount resolves the account behind an existing session token.
// An unknown or expired token reads as an expired session; expired rows are
// removed on sight.
func (p *provider) GetAccount(ctx context.Context, sessionToken string) (*entity.Account, error) {
	hash := p.tokenService.HashToken(sessionToken)

	session, err := p.sessionRepo.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionExpired
		}

		return nil, errors.Wrap(err, "load session")
	}

	if time.Now().After(session.ExpiresAt) {
		_ = p.sessionRepo.DeleteByTokenHash(ctx, hash)

		return nil, domainerrors.ErrSessionExpired
	}

	account, err := p.accountRepo.FindByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrSessionExpired
		}

		return nil, errors.Wrap(err, "load account")
	}

	return account, nil
}

// DeleteSession ends the session identified by the token.
func (p *provider) DeleteSession(ctx context.Context, sessionToken string) error {
	hash := p.tokenService.HashToken(sessionToken)

	err := p.sessionRepo.DeleteByTokenHash(ctx, hash)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return err
	}

	return nil
}

// DeleteSessions ends every session of an account.
func (p *provider) DeleteSessions(ctx context.Context, accountID uuid.UUID) error {
	return p.sessionRepo.DeleteByAccountID(ctx, accountID)
}

// generateAccessToken signs an access token carrying the account's normalized
// role. Accounts without a profile document still get a token; the missing
// document surfaces later during profile assembly.
func (p *provider) generateAccessToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	role := entity.RoleBuyer
	profile, err := p.profileRepo.FindByAccountID(ctx, accountID)
	if err == nil {
		role = entity.NormalizeRole(profile.Role)
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return "", errors.Wrap(err, "load profile for token")
	}

	return p.tokenService.GenerateAccessToken(accountID, role)
}
