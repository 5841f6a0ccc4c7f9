package impl

import (
	"context"
	"fmt"
	"log/slog"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DeleteAccount runs the two-step account deletion protocol. The first step
// re-authenticates the owner (password for email accounts, a live Google
// session for Google accounts) and mails a deletion token; only the mailed
// token actually deletes. Deletion is never a single request.
func (srv *accountService) DeleteAccount(ctx context.Context, input *usecase.DeleteAccountInput) (*usecase.DeleteAccountOutput, error) {
	if input.Password != "" && input.DeleteToken != "" {
		return nil, domainerrors.ErrDeletionCredentialAmbiguous
	}

	// A presented identity must match the target. Anonymous callers pass; the
	// per-path checks below decide whether anonymity is acceptable.
	if input.ActorUserID != uuid.Nil && input.ActorUserID != input.TargetUserID {
		return nil, domainerrors.ErrForbidden
	}

	if input.DeleteToken != "" {
		return srv.deleteWithToken(ctx, input)
	}

	return srv.requestDeletionConfirmation(ctx, input)
}

// requestDeletionConfirmation is the re-authentication step. The owner proves
// intent with the account password, or implicitly through a live Google
// session, and receives a short-lived deletion token by mail.
func (srv *accountService) requestDeletionConfirmation(ctx context.Context, input *usecase.DeleteAccountInput) (*usecase.DeleteAccountOutput, error) {
	if input.ActorUserID == uuid.Nil {
		return nil, domainerrors.ErrDeletionCredentialMissing
	}

	var user *entity.User
	var deleteToken string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()
		tokenRepo := repoFactory.NewActionTokenRepository()

		found, err := userRepo.FindByID(ctx, input.TargetUserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user")
		}

		if input.Password != "" {
			auth, err := authRepo.FindAuthenticationByUserID(ctx, found.ID, entity.ProviderTypeEmail)
			if err != nil {
				if errors.Is(err, repository.ErrAuthNotFound) {
					return domainerrors.ErrInvalidCredentials
				}

				return errors.Wrap(err, "failed to load email credential")
			}

			if !srv.hasher.Check(input.Password, auth.PasswordHash) {
				return domainerrors.ErrInvalidCredentials
			}
		} else if input.ActorAuthMethod != entity.ProviderTypeGoogle {
			// An email session alone proves nothing; the password is required.
			return domainerrors.ErrDeletionCredentialMissing
		}

		token, err := srv.deleteFlow.issue(ctx, tokenRepo, found.ID)
		if err != nil {
			if errors.Is(err, errActionTokenActive) {
				// A confirmation mail is already on its way.
				return nil
			}

			return errors.Wrap(err, "failed to issue deletion token")
		}

		user = found
		deleteToken = token

		return nil
	})
	if err != nil {
		return nil, err
	}

	if user != nil {
		srv.sendDeletionConfirmationMail(ctx, user, deleteToken)
	}

	return &usecase.DeleteAccountOutput{ConfirmationSent: true}, nil
}

// deleteWithToken validates a mailed deletion token and runs the cascade. The
// token itself proves intent, so the caller may be anonymous; a user who
// logged out before clicking the mailed link can still finish the protocol.
func (srv *accountService) deleteWithToken(ctx context.Context, input *usecase.DeleteAccountInput) (*usecase.DeleteAccountOutput, error) {
	output := &usecase.DeleteAccountOutput{}
	var deletedUser *entity.User
	var tokenRejected bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		tokenRepo := repoFactory.NewActionTokenRepository()

		user, err := userRepo.FindByID(ctx, input.TargetUserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user")
		}

		if err := srv.deleteFlow.validate(ctx, tokenRepo, user.ID, input.DeleteToken); err != nil {
			if errors.Is(err, domainerrors.ErrActionTokenInvalid) {
				tokenRejected = true
			}

			return err
		}

		if err := srv.cascadeDelete(ctx, repoFactory, user.ID, output); err != nil {
			return err
		}

		deletedUser = user

		return nil
	})
	if err != nil {
		if tokenRejected {
			// A rejected token forces the protocol to restart from step one.
			srv.clearDeletionToken(ctx, input.TargetUserID)
		}

		return nil, err
	}

	srv.sendDeletionCompletedMail(ctx, deletedUser)

	srv.log(ctx).Info("Account deleted", slog.Any("userID", input.TargetUserID))

	return output, nil
}

// clearDeletionToken drops a stale deletion token in its own transaction, so
// the cleanup survives the rollback of the failed deletion attempt.
func (srv *accountService) clearDeletionToken(ctx context.Context, userID uuid.UUID) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.NewActionTokenRepository()

		if err := tokenRepo.DeleteActionToken(ctx, userID, entity.PurposeDeleteAccount); err != nil {
			if errors.Is(err, repository.ErrActionTokenNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to clear deletion token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to clear rejected deletion token", slog.Any("userID", userID), slog.Any("error", err))
	}
}

// cascadeDelete removes the user and every satellite record inside the
// caller's transaction, so a failure anywhere leaves the account intact.
func (srv *accountService) cascadeDelete(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID, output *usecase.DeleteAccountOutput) error {
	tokenRepo := repoFactory.NewActionTokenRepository()
	refreshRepo := repoFactory.NewRefreshTokenRepository()
	reviewRepo := repoFactory.NewReviewRepository()
	cookbookRepo := repoFactory.NewCookbookRepository()
	authRepo := repoFactory.NewAuthRepository()
	userRepo := repoFactory.NewUserRepository()

	if err := tokenRepo.DeleteActionTokensByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to remove action tokens")
	}

	if err := refreshRepo.DeleteRefreshTokensByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to revoke sessions")
	}

	removed, err := reviewRepo.DeleteReviewsByAuthorID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to remove reviews")
	}
	output.ReviewsRemoved = removed

	if err := cookbookRepo.DeleteCookbookByUserID(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrCookbookNotFound) {
			return errors.Wrap(err, "failed to remove cookbook")
		}
	}

	if err := authRepo.DeleteAuthenticationsByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to remove credentials")
	}

	if err := userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	output.Deleted = true

	return nil
}

// sendDeletionConfirmationMail delivers the deletion link. Failures are logged only.
func (srv *accountService) sendDeletionConfirmationMail(ctx context.Context, user *entity.User, token string) {
	link := fmt.Sprintf("%s/auth/users/%s/delete?token=%s", srv.baseURL, user.ID, token)
	body := fmt.Sprintf("您好 %s,\n\n我們收到了刪除帳號的請求。此操作將永久移除您的帳號、食譜本與所有評論,無法復原。\n\n請點擊以下連結確認刪除:\n%s\n\n如果這不是您本人的操作,請忽略此信件。", user.Username, link)

	if err := srv.mailer.Send(ctx, user.Email, "帳號刪除確認", body); err != nil {
		srv.log(ctx).Error("Failed to send deletion confirmation mail", slog.Any("userID", user.ID), slog.Any("error", err))
	}
}

// sendDeletionCompletedMail notifies the owner that the account is gone.
// The account no longer exists, so failures are logged only.
func (srv *accountService) sendDeletionCompletedMail(ctx context.Context, user *entity.User) {
	body := fmt.Sprintf("您好 %s,\n\n您的帳號與所有相關資料已永久刪除。\n\n感謝您曾經使用我們的服務。", user.Username)

	if err := srv.mailer.Send(ctx, user.Email, "帳號已刪除", body); err != nil {
		srv.log(ctx).Error("Failed to send deletion completed mail", slog.Any("userID", user.ID), slog.Any("error", err))
	}
}
