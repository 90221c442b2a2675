package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_Login(t *testing.T) {
	auth := NewAuthenticator("hr.manager@company.com", "hrpass123", 0)

	tests := []struct {
		name    string
		creds   domain.Credentials
		wantErr bool
	}{
		{name: "valid", creds: domain.Credentials{Email: "hr.manager@company.com", Password: "hrpass123"}},
		{name: "email is case insensitive", creds: domain.Credentials{Email: " HR.Manager@company.com ", Password: "hrpass123"}},
		{name: "wrong password", creds: domain.Credentials{Email: "hr.manager@company.com", Password: "nope"}, wantErr: true},
		{name: "wrong email", creds: domain.Credentials{Email: "ceo@company.com", Password: "hrpass123"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := auth.Login(context.Background(), tt.creds)
			if tt.wantErr {
				var authErr *domain.AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, "Invalid credentials. Please check email and password.", authErr.Message)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hr.manager@company.com", user.Email)
		})
	}
}

func TestAuthenticator_RetriesAreUnlimited(t *testing.T) {
	auth := NewAuthenticator("hr.manager@company.com", "hrpass123", 0)
	for i := 0; i < 10; i++ {
		_, err := auth.Login(context.Background(), domain.Credentials{Email: "x", Password: "y"})
		require.Error(t, err)
	}
	_, err := auth.Login(context.Background(), domain.Credentials{Email: "hr.manager@company.com", Password: "hrpass123"})
	assert.NoError(t, err)
}

func TestAuthenticator_LatencyHonoursContext(t *testing.T) {
	auth := NewAuthenticator("hr.manager@company.com", "hrpass123", time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := auth.Login(ctx, domain.Credentials{Email: "hr.manager@company.com", Password: "hrpass123"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAuthenticator_LatencyIsApplied(t *testing.T) {
	auth := NewAuthenticator("hr.manager@company.com", "hrpass123", 20*time.Millisecond)

	start := time.Now()
	_, err := auth.Login(context.Background(), domain.Credentials{Email: "hr.manager@company.com", Password: "hrpass123"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
