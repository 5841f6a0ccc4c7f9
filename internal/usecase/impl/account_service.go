// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultVerificationTTL  = 30 * time.Minute
	defaultPasswordResetTTL = time.Hour
	defaultDeleteAccountTTL = time.Hour
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	tokenService service.TokenService
	hasher       service.PasswordHasher
	mailer       service.MailSender
	baseURL      string
	logger       *slog.Logger

	verifyFlow *actionTokenFlow
	resetFlow  *actionTokenFlow
	deleteFlow *actionTokenFlow
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	TokenService service.TokenService
	Hasher       service.PasswordHasher
	Mailer       service.MailSender
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	verifyTTL := defaultVerificationTTL
	resetTTL := defaultPasswordResetTTL
	deleteTTL := defaultDeleteAccountTTL
	if params.Config != nil && params.Config.Auth != nil {
		if params.Config.Auth.VerificationTTL > 0 {
			verifyTTL = params.Config.Auth.VerificationTTL
		}
		if params.Config.Auth.PasswordResetTTL > 0 {
			resetTTL = params.Config.Auth.PasswordResetTTL
		}
		if params.Config.Auth.DeleteAccountTTL > 0 {
			deleteTTL = params.Config.Auth.DeleteAccountTTL
		}
	}

	baseURL := ""
	if params.Config != nil && params.Config.App != nil {
		baseURL = params.Config.App.BaseURL
	}

	return &accountService{
		txManager:    params.TxManager,
		tokenService: params.TokenService,
		hasher:       params.Hasher,
		mailer:       params.Mailer,
		baseURL:      baseURL,
		logger:       params.Logger,
		verifyFlow:   newActionTokenFlow(entity.PurposeVerifyEmail, verifyTTL, params.Hasher),
		resetFlow:    newActionTokenFlow(entity.PurposeResetPassword, resetTTL, params.Hasher),
		deleteFlow:   newActionTokenFlow(entity.PurposeDeleteAccount, deleteTTL, params.Hasher),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified account with an email credential and mails a
// verification link. The user, credential and verification token are written
// in one transaction; the mail is sent after commit.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	var registeredUser *entity.User
	var verifyToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()
		tokenRepo := repoFactory.NewActionTokenRepository()

		// Pre-check the username; the unique constraint still catches races.
		if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
			return domainerrors.ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username")
		}

		user := &entity.User{
			Email:       input.Email,
			Username:    input.Username,
			DisplayName: input.Username,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			switch {
			case errors.Is(err, repository.ErrEmailTaken):
				return domainerrors.ErrUserAlreadyExists
			case errors.Is(err, repository.ErrUsernameTaken):
				return domainerrors.ErrUsernameTaken
			default:
				return errors.Wrap(err, "failed to create user")
			}
		}

		auth := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, auth); err != nil {
			return errors.Wrap(err, "failed to create email credential")
		}

		token, err := srv.verifyFlow.issue(ctx, tokenRepo, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to issue verification token")
		}

		registeredUser = user
		verifyToken = token

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration transaction failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.sendVerificationMail(ctx, registeredUser, verifyToken)

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// ConfirmAccount consumes a verification token and marks the account verified.
// Cookbook provisioning runs in a second transaction so a provisioning failure
// never rolls back the verification itself; it is surfaced as a distinct error.
func (srv *accountService) ConfirmAccount(ctx context.Context, input *usecase.ConfirmAccountInput) (*usecase.ConfirmAccountOutput, error) {
	var verifiedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		tokenRepo := repoFactory.NewActionTokenRepository()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrActionTokenInvalid
			}

			return errors.Wrap(err, "failed to load user")
		}

		if err := srv.verifyFlow.validate(ctx, tokenRepo, user.ID, input.Token); err != nil {
			return err
		}

		user.Verified = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to mark user verified")
		}

		if err := srv.verifyFlow.consume(ctx, tokenRepo, user.ID); err != nil {
			return err
		}

		verifiedUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account confirmation failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	if err := srv.provisionCookbook(ctx, verifiedUser); err != nil {
		srv.log(ctx).Error("Cookbook provisioning failed after verification",
			slog.Any("userID", verifiedUser.ID), slog.Any("error", err))

		return nil, domainerrors.ErrCookbookProvisionFailed
	}

	srv.log(ctx).Info("Account verified", slog.Any("userID", verifiedUser.ID))

	return &usecase.ConfirmAccountOutput{User: verifiedUser}, nil
}

// ResendVerification issues a fresh verification mail. The response is the same
// whether the address is unknown, already verified or still holding a live
// token, so the endpoint cannot be used to probe for accounts.
func (srv *accountService) ResendVerification(ctx context.Context, input *usecase.ResendVerificationInput) error {
	var user *entity.User
	var verifyToken string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		tokenRepo := repoFactory.NewActionTokenRepository()

		found, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to look up user")
		}
		if found.Verified {
			return nil
		}

		token, err := srv.verifyFlow.issue(ctx, tokenRepo, found.ID)
		if err != nil {
			if errors.Is(err, errActionTokenActive) {
				return nil
			}

			return errors.Wrap(err, "failed to issue verification token")
		}

		user = found
		verifyToken = token

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Resend verification failed", slog.Any("error", err))

		return err
	}

	if user != nil {
		srv.sendVerificationMail(ctx, user, verifyToken)
	}

	return nil
}

// provisionCookbook creates the user's cookbook. An existing cookbook makes
// this a no-op so confirmation stays idempotent at the provisioning step.
func (srv *accountService) provisionCookbook(ctx context.Context, user *entity.User) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cookbookRepo := repoFactory.NewCookbookRepository()

		slug, err := generateShareSlug()
		if err != nil {
			return err
		}

		cookbook := &entity.Cookbook{
			UserID:    user.ID,
			Title:     fmt.Sprintf("%s 的食譜本", user.Username),
			ShareSlug: slug,
		}
		if err := cookbookRepo.CreateCookbook(ctx, cookbook); err != nil {
			if errors.Is(err, repository.ErrCookbookAlreadyExists) {
				return nil
			}

			return errors.Wrap(err, "failed to create cookbook")
		}

		return nil
	})
}

// sendVerificationMail delivers the verification link. Mail failures are
// logged and never propagated; the account is created either way.
func (srv *accountService) sendVerificationMail(ctx context.Context, user *entity.User, token string) {
	link := fmt.Sprintf("%s/auth/users/%s/confirm?token=%s", srv.baseURL, user.ID, token)
	body := fmt.Sprintf("您好 %s,\n\n請點擊以下連結完成電子郵件驗證:\n%s\n\n如果這不是您本人的操作,請忽略此信件。", user.Username, link)

	if err := srv.mailer.Send(ctx, user.Email, "請驗證您的電子郵件", body); err != nil {
		srv.log(ctx).Error("Failed to send verification mail", slog.Any("userID", user.ID), slog.Any("error", err))
	}
}

// generateShareSlug returns a 12-character URL-safe slug.
func generateShareSlug() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
