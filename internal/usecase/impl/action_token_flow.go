// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// errActionTokenActive signals that the (user, purpose) slot still holds a live
// token. Callers on enumeration-safe paths swallow it; others map it to a
// user-facing error.
var errActionTokenActive = errors.New("a live action token already exists for this purpose")

// actionTokenFlow issues and validates one-time tokens for a single purpose.
// All three account workflows (verify email, reset password, delete account)
// share the same mechanics and differ only in purpose and lifetime.
type actionTokenFlow struct {
	purpose entity.TokenPurpose
	ttl     time.Duration
	hasher  service.PasswordHasher
}

func newActionTokenFlow(purpose entity.TokenPurpose, ttl time.Duration, hasher service.PasswordHasher) *actionTokenFlow {
	return &actionTokenFlow{purpose: purpose, ttl: ttl, hasher: hasher}
}

// issue mints a fresh token for the user unless a live one already occupies
// the slot. It returns the plaintext exactly once; only the bcrypt hash is
// persisted.
func (f *actionTokenFlow) issue(ctx context.Context, repo repository.ActionTokenRepository, userID uuid.UUID) (string, error) {
	existing, err := repo.FindActionToken(ctx, userID, f.purpose)
	if err == nil && !existing.Expired(time.Now()) {
		return "", errActionTokenActive
	}
	if err != nil && !errors.Is(err, repository.ErrActionTokenNotFound) {
		return "", errors.Wrap(err, "failed to check for existing action token")
	}

	raw, err := generateActionToken()
	if err != nil {
		return "", err
	}

	hash, err := f.hasher.Hash(raw)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash action token")
	}

	token := &entity.ActionToken{
		UserID:    userID,
		Purpose:   f.purpose,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(f.ttl),
	}
	if err := repo.SaveActionToken(ctx, token); err != nil {
		return "", errors.Wrap(err, "failed to save action token")
	}

	return raw, nil
}

// validate checks a presented plaintext against the stored token. Every failure
// mode collapses into the same generic error so callers leak nothing about
// which check failed.
func (f *actionTokenFlow) validate(ctx context.Context, repo repository.ActionTokenRepository, userID uuid.UUID, raw string) error {
	token, err := repo.FindActionToken(ctx, userID, f.purpose)
	if err != nil {
		if errors.Is(err, repository.ErrActionTokenNotFound) {
			return domainerrors.ErrActionTokenInvalid
		}

		return errors.Wrap(err, "failed to load action token")
	}

	if token.Expired(time.Now()) {
		return domainerrors.ErrActionTokenInvalid
	}

	if !f.hasher.Check(raw, token.TokenHash) {
		return domainerrors.ErrActionTokenInvalid
	}

	return nil
}

// consume removes the token after its effect has been applied. It must run in
// the same transaction as the effect so the token is single use.
func (f *actionTokenFlow) consume(ctx context.Context, repo repository.ActionTokenRepository, userID uuid.UUID) error {
	if err := repo.DeleteActionToken(ctx, userID, f.purpose); err != nil {
		if errors.Is(err, repository.ErrActionTokenNotFound) {
			return domainerrors.ErrActionTokenInvalid
		}

		return errors.Wrap(err, "failed to consume action token")
	}

	return nil
}

// generateActionToken returns 32 random bytes as 64 hex characters.
func generateActionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
