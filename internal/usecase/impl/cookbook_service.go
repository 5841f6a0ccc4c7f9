package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cookbookService implements the CookbookUsecase interface.
type cookbookService struct {
	txManager   repository.TransactionManager
	qrService   service.QRCodeService
	frontendURL string
	logger      *slog.Logger
}

// CookbookServiceParams holds dependencies for cookbookService, injected by Fx.
type CookbookServiceParams struct {
	fx.In

	Config    *config.Config
	TxManager repository.TransactionManager
	QRService service.QRCodeService
	Logger    *slog.Logger
}

// NewCookbookService creates a new instance of cookbookService.
func NewCookbookService(params CookbookServiceParams) usecase.CookbookUsecase {
	frontendURL := ""
	if params.Config.App != nil {
		frontendURL = strings.TrimRight(params.Config.App.FrontendURL, "/")
	}

	return &cookbookService{
		txManager:   params.TxManager,
		qrService:   params.QRService,
		frontendURL: frontendURL,
		logger:      params.Logger,
	}
}

func (srv *cookbookService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ShareQR renders a QR code for a public cookbook's share link. A private
// cookbook answers exactly like a missing one, so the endpoint never reveals
// whether a user exists.
func (srv *cookbookService) ShareQR(ctx context.Context, input *usecase.ShareQRInput) (*usecase.ShareQROutput, error) {
	var shareURL string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cookbookRepo := repoFactory.NewCookbookRepository()

		cookbook, err := cookbookRepo.FindCookbookByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCookbookNotFound) {
				return domainerrors.ErrCookbookNotFound
			}

			return errors.Wrap(err, "failed to load cookbook")
		}

		if !cookbook.Public {
			return domainerrors.ErrCookbookNotPublic
		}

		shareURL = fmt.Sprintf("%s/cookbooks/shared/%s", srv.frontendURL, cookbook.ShareSlug)

		return nil
	})
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateShareQR(shareURL)
	if err != nil {
		srv.log(ctx).Error("Failed to render share QR code", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render QR code")
	}

	return &usecase.ShareQROutput{PNG: png, ShareURL: shareURL}, nil
}
