package usecase

import (
	"context"

	"github.com/google/uuid"
)

// ShareQRInput identifies the cookbook owner whose share link is requested.
type ShareQRInput struct {
	UserID uuid.UUID
}

// ShareQROutput carries the rendered QR code and the link it encodes.
type ShareQROutput struct {
	PNG      []byte
	ShareURL string
}

// CookbookUsecase defines cookbook sharing operations.
type CookbookUsecase interface {
	// ShareQR renders a QR code for a public cookbook's share link.
	// Private and missing cookbooks are indistinguishable to the caller.
	ShareQR(ctx context.Context, input *ShareQRInput) (*ShareQROutput, error)
}
