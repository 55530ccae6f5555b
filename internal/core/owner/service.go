// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package owner authenticates the library's single owner.

There are no user accounts: the owner's username and bcrypt password hash come
from configuration, and a successful login returns a short-lived RS256 access
token carrying the owner role. Reads are public; writes require that token.
*/
package owner

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/sec"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(username, role string, timeToLive time.Duration) (string, error)
}

// Credentials identify the owner.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Session is returned by a successful login.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

type Service struct {
	owner  Credentials
	tokens TokenIssuer
	ttl    time.Duration
	logger *slog.Logger
}

func NewService(owner Credentials, tokens TokenIssuer, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{owner: owner, tokens: tokens, ttl: ttl, logger: logger}
}

// Login checks the credentials and issues an owner token. Wrong usernames
// and wrong passwords get the same error.
func (service *Service) Login(context context.Context, username, password string) (*Session, error) {
	if service.owner.Username == "" || service.owner.PasswordHash == "" {
		return nil, apperr.ServiceUnavailable("Owner login is not configured")
	}

	usernameMatches := subtle.ConstantTimeCompare([]byte(username), []byte(service.owner.Username)) == 1

	// The hash is checked even for a wrong username so both paths cost the same.
	passwordMatches := sec.CheckPasswordHash(password, service.owner.PasswordHash)

	if !usernameMatches || !passwordMatches {
		service.logger.WarnContext(context, "owner_login_failed", slog.String("username", username))
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	token, err := service.tokens.GenerateAccessToken(service.owner.Username, string(sec.RoleOwner), service.ttl)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("owner_token_generation_failed: %w", err))
	}

	service.logger.InfoContext(context, "owner_logged_in")
	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(service.ttl),
		Username:    service.owner.Username,
	}, nil
}
