package auth_test

import (
	"testing"
	"time"

	"github.com/dom/account-service/internal/auth"
	"github.com/dom/account-service/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-for-testing-only"

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	userID := uuid.New()

	tokenString, err := codec.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := codec.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	codec := auth.NewTokenCodec(testSecret, time.Hour).WithClock(fixedClock(issuedAt))
	tokenString, err := codec.Issue(userID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{
			name: "just before expiry",
			at:   issuedAt.Add(3599 * time.Second),
		},
		{
			name:    "just after expiry",
			at:      issuedAt.Add(3601 * time.Second),
			wantErr: domain.ErrExpiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := auth.NewTokenCodec(testSecret, time.Hour).WithClock(fixedClock(tt.at))
			got, err := verifier.Verify(tokenString)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, got)
		})
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	tokenString, err := codec.Issue(uuid.New())
	require.NoError(t, err)

	other := auth.NewTokenCodec("a-completely-different-secret", time.Hour)
	_, err = other.Verify(tokenString)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenCodec_InvalidTokens(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt", token: "deadbeefdeadbeefdeadbeefdeadbeef"},
		{name: "truncated jwt", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIi"},
		{name: "alg none", token: "eyJhbGciOiJub25lIn0.eyJzdWIiOiJ4In0."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}
