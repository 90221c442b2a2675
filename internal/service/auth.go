package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/logger"
)

// Authenticator checks the login form against a single configured HR account.
type Authenticator struct {
	email    string
	password string
	latency  time.Duration
}

// NewAuthenticator creates an Authenticator. Each Login waits latency before answering.
func NewAuthenticator(email, password string, latency time.Duration) *Authenticator {
	return &Authenticator{email: email, password: password, latency: latency}
}

// Login returns the HR user for matching credentials and domain.ErrInvalidCredentials otherwise.
// The simulated latency is abandoned when ctx is done.
func (a *Authenticator) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if a.latency > 0 {
		timer := time.NewTimer(a.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	emailOK := strings.EqualFold(strings.TrimSpace(creds.Email), a.email)
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(a.password)) == 1
	if !emailOK || !passOK {
		recordLogin(false)
		logger.WarnLog(ctx, "login rejected for %q", creds.Email)
		return nil, domain.ErrInvalidCredentials
	}

	recordLogin(true)
	logger.InfoLog(ctx, "login succeeded for %q", a.email)
	return &domain.User{
		Name:   "HR Manager",
		Email:  a.email,
		Avatar: "https://ui-avatars.com/api/?name=HR+Manager",
	}, nil
}
