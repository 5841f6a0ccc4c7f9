package impl

import (
	"context"
	"fmt"
	"log/slog"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
)

// ForgotPassword starts the password reset workflow. Unknown addresses,
// Google-only accounts and addresses already holding a live reset token all
// take the same silent path, so the endpoint's observable behavior is constant.
func (srv *accountService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	var user *entity.User
	var resetToken string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()
		tokenRepo := repoFactory.NewActionTokenRepository()

		found, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to look up user")
		}

		// A reset mail only makes sense when an email credential exists.
		if _, err := authRepo.FindAuthenticationByUserID(ctx, found.ID, entity.ProviderTypeEmail); err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to look up email credential")
		}

		token, err := srv.resetFlow.issue(ctx, tokenRepo, found.ID)
		if err != nil {
			if errors.Is(err, errActionTokenActive) {
				return nil
			}

			return errors.Wrap(err, "failed to issue reset token")
		}

		user = found
		resetToken = token

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Forgot password flow failed", slog.Any("error", err))

		return err
	}

	if user != nil {
		srv.sendPasswordResetMail(ctx, user, resetToken)
	}

	return nil
}

// ResetPassword consumes a reset token, replaces the password and revokes
// every live session so stolen refresh tokens die with the old password.
func (srv *accountService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()
		tokenRepo := repoFactory.NewActionTokenRepository()
		refreshRepo := repoFactory.NewRefreshTokenRepository()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrActionTokenInvalid
			}

			return errors.Wrap(err, "failed to load user")
		}

		if err := srv.resetFlow.validate(ctx, tokenRepo, user.ID, input.Token); err != nil {
			return err
		}

		auth, err := authRepo.FindAuthenticationByUserID(ctx, user.ID, entity.ProviderTypeEmail)
		if err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				return domainerrors.ErrActionTokenInvalid
			}

			return errors.Wrap(err, "failed to load email credential")
		}

		// Reusing the current password would defeat the point of the reset.
		if srv.hasher.Check(input.NewPassword, auth.PasswordHash) {
			return domainerrors.ErrPasswordReuse
		}

		if err := authRepo.UpdatePasswordHash(ctx, auth.ID, hashedPassword); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		if err := srv.resetFlow.consume(ctx, tokenRepo, user.ID); err != nil {
			return err
		}

		// Every live session dies with the old password.
		if err := refreshRepo.DeleteRefreshTokensByUserID(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", input.UserID))

	return nil
}

// sendPasswordResetMail delivers the reset link. Failures are logged only.
func (srv *accountService) sendPasswordResetMail(ctx context.Context, user *entity.User, token string) {
	link := fmt.Sprintf("%s/auth/users/%s/password/reset?token=%s", srv.baseURL, user.ID, token)
	body := fmt.Sprintf("您好 %s,\n\n我們收到了重設密碼的請求,請點擊以下連結設定新密碼:\n%s\n\n如果這不是您本人的操作,請忽略此信件,您的密碼不會變更。", user.Username, link)

	if err := srv.mailer.Send(ctx, user.Email, "重設密碼請求", body); err != nil {
		srv.log(ctx).Error("Failed to send password reset mail", slog.Any("userID", user.ID), slog.Any("error", err))
	}
}
