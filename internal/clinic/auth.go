package clinic

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// Session is the result of a successful login. ExpiresAt is read from
// the token's exp claim without signature verification; the client only
// uses it to know when to prompt for a fresh login, and the backend
// remains the authority on token validity.
type Session struct {
	Token     string
	OwnerID   string
	ExpiresAt time.Time
}

// Expired reports whether the session's token has passed its exp claim.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// AuthService wraps the login endpoint and installs the bearer token
// on the shared client.
type AuthService struct {
	client *api.Client
	logger *logging.Logger
}

func NewAuthService(client *api.Client, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{client: client, logger: logger}
}

// Login exchanges credentials for a bearer token and attaches it to
// every subsequent request.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out struct {
		AccessToken string `json:"access_token"`
		OwnerID     string `json:"owner_id"`
	}
	if err := s.client.Post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("clinic: login response missing access_token")
	}

	session := &Session{Token: out.AccessToken, OwnerID: out.OwnerID}
	if exp, err := tokenExpiry(out.AccessToken); err == nil {
		session.ExpiresAt = exp
	} else {
		s.logger.Warn("could not read token expiry", "error", err)
	}

	s.client.SetToken(out.AccessToken)
	s.logger.Info("logged in", "owner_id", out.OwnerID)
	return session, nil
}

// tokenExpiry parses the JWT without verifying the signature and pulls
// the exp claim.
func tokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("clinic: parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("clinic: token has no exp claim")
	}
	return exp.Time, nil
}
