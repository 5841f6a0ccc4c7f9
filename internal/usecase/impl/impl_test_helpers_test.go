package impl

import (
	"io"
	"log/slog"
	"time"

	"cookbook/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:       12,
			VerificationTTL:  24 * time.Hour,
			PasswordResetTTL: time.Hour,
			DeleteAccountTTL: 15 * time.Minute,
		},
		App: &config.AppConfig{
			BaseURL:     "https://cookbook.example.com",
			FrontendURL: "https://app.cookbook.example.com",
		},
	}
}
