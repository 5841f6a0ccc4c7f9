package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	tokenService service.TokenService
	hasher       service.PasswordHasher
	googleAuth   service.OAuthAuthService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	TokenService service.TokenService
	Hasher       service.PasswordHasher
	GoogleAuth   service.OAuthAuthService
	Logger       *slog.Logger
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:    params.TxManager,
		tokenService: params.TokenService,
		hasher:       params.Hasher,
		googleAuth:   params.GoogleAuth,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies email credentials and opens a session. Unknown addresses,
// wrong passwords and unverified accounts all surface the same credential
// error, so the endpoint reveals nothing about which check failed.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()

		auth, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to look up credential")
		}

		if !srv.hasher.Check(input.Password, auth.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		found, err := userRepo.FindByID(ctx, auth.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to load user")
		}

		if !found.Verified {
			return domainerrors.ErrInvalidCredentials
		}

		// Login is the one path every client hits, so expired rows are
		// swept here instead of by a scheduler.
		refreshRepo := repoFactory.NewRefreshTokenRepository()
		if err := refreshRepo.DeleteExpiredRefreshTokens(ctx); err != nil {
			return errors.Wrap(err, "failed to prune expired sessions")
		}
		if err := repoFactory.NewActionTokenRepository().DeleteExpiredActionTokens(ctx); err != nil {
			return errors.Wrap(err, "failed to prune expired action tokens")
		}

		sessions, err := refreshRepo.CountActiveSessionsByUserID(ctx, found.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count active sessions")
		}
		srv.log(ctx).Debug("Opening session", slog.Any("userID", found.ID), slog.Int("activeSessions", sessions))

		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	output, err := srv.openSession(ctx, user, entity.ProviderTypeEmail)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return output, nil
}

// Refresh mints a fresh access token from a live refresh token. The refresh
// token is left in place, so the client keeps using it until it expires or
// the session is revoked.
func (srv *sessionService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	accessToken, expiresAt, err := srv.tokenService.IssueAccessToken(claims.UserID, claims.AuthMethod)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.RefreshOutput{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the session behind a refresh token. A token that is already
// gone is a successful logout.
func (srv *sessionService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	revoked, err := srv.tokenService.RevokeRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	if revoked {
		srv.log(ctx).Info("Session revoked")
	}

	return nil
}

// GoogleAuthURL builds the Google consent URL with a one-time CSRF state.
func (srv *sessionService) GoogleAuthURL(ctx context.Context) (string, error) {
	url, err := srv.googleAuth.GenerateAuthorizationURL(ctx)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrOAuthFailed, err.Error())
	}

	return url, nil
}

// GoogleCallback verifies the posted ID token, finds or creates the matching
// account and opens a session. Google accounts arrive with a verified email,
// so they skip the mail verification workflow entirely.
func (srv *sessionService) GoogleCallback(ctx context.Context, input *usecase.GoogleCallbackInput) (*usecase.LoginOutput, error) {
	if !srv.googleAuth.ValidateState(input.State) {
		return nil, domainerrors.ErrOAuthStateInvalid
	}

	oauthUser, err := srv.googleAuth.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("Google ID token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthTokenInvalid
	}

	user, err := srv.findOrCreateGoogleUser(ctx, oauthUser)
	if err != nil {
		return nil, err
	}

	output, err := srv.openSession(ctx, user, entity.ProviderTypeGoogle)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in via Google", slog.Any("userID", user.ID))

	return output, nil
}

// openSession issues the access and refresh token pair for a user.
func (srv *sessionService) openSession(ctx context.Context, user *entity.User, authMethod string) (*usecase.LoginOutput, error) {
	accessToken, expiresAt, err := srv.tokenService.IssueAccessToken(user.ID, authMethod)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(ctx, user.ID, authMethod)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	return &usecase.LoginOutput{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
		RefreshToken:         refreshToken,
		User:                 user,
	}, nil
}

// findOrCreateGoogleUser resolves a verified Google identity to a local
// account. A returning Google user is matched by the provider subject; an
// existing email account gets the Google credential linked; otherwise a new
// verified account is created with a cookbook.
func (srv *sessionService) findOrCreateGoogleUser(ctx context.Context, oauthUser *service.OAuthUser) (*entity.User, error) {
	if !oauthUser.EmailVerified {
		return nil, domainerrors.ErrOAuthTokenInvalid
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()
		cookbookRepo := repoFactory.NewCookbookRepository()

		auth, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeGoogle, oauthUser.ID)
		if err == nil {
			found, err := userRepo.FindByID(ctx, auth.UserID)
			if err != nil {
				return errors.Wrap(err, "failed to load user")
			}
			user = found

			return nil
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to look up credential")
		}

		found, err := userRepo.FindByEmail(ctx, oauthUser.Email)
		if err == nil {
			// Same mailbox, so link the Google credential to the existing account.
			return srv.linkGoogleCredential(ctx, repoFactory, found, oauthUser, &user)
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up user")
		}

		created, err := srv.createGoogleUser(ctx, userRepo, oauthUser)
		if err != nil {
			return err
		}

		if err := authRepo.CreateAuthentication(ctx, &entity.Authentication{
			UserID:         created.ID,
			Provider:       entity.ProviderTypeGoogle,
			ProviderUserID: oauthUser.ID,
		}); err != nil {
			return errors.Wrap(err, "failed to create credential")
		}

		slug, err := generateShareSlug()
		if err != nil {
			return errors.Wrap(err, "failed to generate share slug")
		}

		if err := cookbookRepo.CreateCookbook(ctx, &entity.Cookbook{
			UserID:    created.ID,
			Title:     fmt.Sprintf("%s 的食譜本", created.Username),
			ShareSlug: slug,
		}); err != nil {
			return errors.Wrap(err, "failed to create cookbook")
		}

		user = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// linkGoogleCredential attaches a Google credential to an existing account.
// Holding the Google identity proves control of the mailbox, so an unverified
// account becomes verified here.
func (srv *sessionService) linkGoogleCredential(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User, oauthUser *service.OAuthUser, out **entity.User) error {
	authRepo := repoFactory.NewAuthRepository()
	userRepo := repoFactory.NewUserRepository()
	cookbookRepo := repoFactory.NewCookbookRepository()

	if err := authRepo.CreateAuthentication(ctx, &entity.Authentication{
		UserID:         user.ID,
		Provider:       entity.ProviderTypeGoogle,
		ProviderUserID: oauthUser.ID,
	}); err != nil {
		return errors.Wrap(err, "failed to link credential")
	}

	if !user.Verified {
		user.Verified = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to mark user verified")
		}

		slug, err := generateShareSlug()
		if err != nil {
			return errors.Wrap(err, "failed to generate share slug")
		}

		err = cookbookRepo.CreateCookbook(ctx, &entity.Cookbook{
			UserID:    user.ID,
			Title:     fmt.Sprintf("%s 的食譜本", user.Username),
			ShareSlug: slug,
		})
		if err != nil && !errors.Is(err, repository.ErrCookbookAlreadyExists) {
			return errors.Wrap(err, "failed to create cookbook")
		}
	}

	*out = user

	return nil
}

// createGoogleUser creates a verified account for a first-time Google login.
// The username is derived from the mailbox local part with a random suffix;
// a collision retries with a fresh suffix.
func (srv *sessionService) createGoogleUser(ctx context.Context, userRepo repository.UserRepository, oauthUser *service.OAuthUser) (*entity.User, error) {
	localPart := oauthUser.Email
	if at := strings.Index(localPart, "@"); at > 0 {
		localPart = localPart[:at]
	}

	displayName := oauthUser.Name
	if displayName == "" {
		displayName = localPart
	}

	for attempt := 0; attempt < 3; attempt++ {
		suffix, err := randomUsernameSuffix()
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate username suffix")
		}

		user := &entity.User{
			Email:       oauthUser.Email,
			Username:    fmt.Sprintf("%s_%s", localPart, suffix),
			DisplayName: displayName,
			Verified:    true,
		}

		err = userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, repository.ErrUsernameTaken) {
			continue
		}
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to find a free username")
}

// randomUsernameSuffix returns 4 random hex characters.
func randomUsernameSuffix() (string, error) {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
