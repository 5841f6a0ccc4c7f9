package validator

import (
	"net/http"
	"strings"
	"testing"

	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_RegisterInput(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "password123", wantErr: false},
		{name: "too short", password: "short", wantErr: true},
		// bcrypt reads at most 72 bytes; anything longer must fail
		// validation instead of erroring inside the hasher.
		{name: "at the bcrypt limit", password: strings.Repeat("a", 72), wantErr: false},
		{name: "over the bcrypt limit", password: strings.Repeat("a", 73), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&usecase.RegisterInput{
				Username: "alice",
				Email:    "alice@example.com",
				Password: tt.password,
			})

			if tt.wantErr {
				var httpErr *echo.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_RejectsInvalidEmail(t *testing.T) {
	v := New()

	err := v.Validate(&usecase.RegisterInput{
		Username: "alice",
		Email:    "not-an-email",
		Password: "password123",
	})

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
