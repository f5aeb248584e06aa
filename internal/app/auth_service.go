package app

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/ports"
)

// StateTTL bounds how long an install handshake may take.
const StateTTL = 10 * time.Minute

const (
	statePrefix   = "state:"
	offlinePrefix = "offline_"
	callbackPath  = "/auth/callback"
)

var shopPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// ValidShop reports whether shop is a *.myshopify.com domain.
func ValidShop(shop string) bool {
	return shopPattern.MatchString(shop)
}

// OfflineSessionID is the id of a shop's long-lived session.
func OfflineSessionID(shop string) string {
	return offlinePrefix + shop
}

// AuthServiceConfig configures the install handshake.
type AuthServiceConfig struct {
	APIKey    string
	APISecret string
	Scopes    []string

	// AppURL is where the app is hosted; the callback is AppURL + /auth/callback.
	AppURL string

	Sessions ports.SessionStore

	// SessionTTL is how long a shop session is kept. Zero keeps it until
	// the shop reinstalls.
	SessionTTL time.Duration

	Logger *slog.Logger
}

// AuthService runs the OAuth install handshake and owns shop sessions.
type AuthService struct {
	apiKey     string
	apiSecret  string
	scopes     []string
	redirect   string
	sessions   ports.SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger

	shopURL func(shop string) string
	now     func() time.Time
}

// NewAuthService creates the service. Panics if Sessions is nil.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	if cfg.Sessions == nil {
		panic("AuthService: Sessions is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		scopes:     slices.Clone(cfg.Scopes),
		redirect:   strings.TrimRight(cfg.AppURL, "/") + callbackPath,
		sessions:   cfg.Sessions,
		sessionTTL: cfg.SessionTTL,
		logger:     logger.With(slog.String("component", "app.AuthService")),
		shopURL:    func(shop string) string { return "https://" + shop },
		now:        time.Now,
	}
}

func (s *AuthService) oauthConfig(shop string) *oauth2.Config {
	base := s.shopURL(shop)

	return &oauth2.Config{
		ClientID:     s.apiKey,
		ClientSecret: s.apiSecret,
		RedirectURL:  s.redirect,
		Endpoint: oauth2.Endpoint{
			AuthURL:   base + "/admin/oauth/authorize",
			TokenURL:  base + "/admin/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Begin stores a state nonce for shop and returns the authorize URL the
// merchant is redirected to.
func (s *AuthService) Begin(ctx context.Context, shop string) (string, error) {
	shop = strings.ToLower(strings.TrimSpace(shop))
	if !ValidShop(shop) {
		return "", domain.NewValidationErrorWithValue("shop", "A valid shop domain is required.", shop)
	}

	state := uuid.NewString()

	err := s.sessions.Store(ctx, &domain.Session{
		ID:        statePrefix + state,
		Shop:      shop,
		State:     state,
		ExpiresAt: s.now().Add(StateTTL),
	})
	if err != nil {
		return "", err
	}

	// The platform expects a comma separated scope list, not oauth2's spaces.
	authURL := s.oauthConfig(shop).AuthCodeURL(state,
		oauth2.SetAuthURLParam("scope", strings.Join(s.scopes, ",")),
	)

	s.logger.InfoContext(ctx, "install handshake started", slog.String("shop", shop))

	return authURL, nil
}

// Complete validates the callback query, exchanges the code for an access
// token, and stores the shop's offline session.
func (s *AuthService) Complete(ctx context.Context, query url.Values) (*domain.Session, error) {
	shop := strings.ToLower(query.Get("shop"))
	if !ValidShop(shop) {
		return nil, domain.NewValidationErrorWithValue("shop", "A valid shop domain is required.", shop)
	}

	if !VerifyHMAC(query, s.apiSecret) {
		return nil, domain.NewForbiddenError("complete install", "hmac mismatch")
	}

	state := query.Get("state")
	if state == "" {
		return nil, domain.NewForbiddenError("complete install", "missing state")
	}

	pending, err := s.sessions.Load(ctx, statePrefix+state)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewForbiddenError("complete install", "unknown or expired state")
		}

		return nil, err
	}

	if pending.Shop != shop {
		return nil, domain.NewForbiddenError("complete install", "state issued for another shop")
	}

	if err := s.sessions.Delete(ctx, pending.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete state session", slog.Any("error", err))
	}

	token, err := s.oauthConfig(shop).Exchange(ctx, query.Get("code"))
	if err != nil {
		return nil, domain.NewRemoteError("oauthAccessToken", "exchanging authorization code", err)
	}

	session := &domain.Session{
		ID:          OfflineSessionID(shop),
		Shop:        shop,
		State:       state,
		AccessToken: token.AccessToken,
	}

	if scope, ok := token.Extra("scope").(string); ok {
		session.Scope = scope
	}

	if s.sessionTTL > 0 {
		session.ExpiresAt = s.now().Add(s.sessionTTL)
	}

	if err := s.sessions.Store(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "shop installed",
		slog.String("shop", shop),
		slog.String("scope", session.Scope),
	)

	return session, nil
}

// AccessToken returns the stored offline token for shop.
func (s *AuthService) AccessToken(ctx context.Context, shop string) (string, error) {
	session, err := s.sessions.Load(ctx, OfflineSessionID(shop))
	if err != nil {
		return "", err
	}

	return session.AccessToken, nil
}

// VerifyHMAC checks the hmac parameter of a callback query: the hex
// HMAC-SHA256 of every other parameter, sorted by key and joined as
// key=value pairs with &.
func VerifyHMAC(query url.Values, secret string) bool {
	got := query.Get("hmac")
	if got == "" || secret == "" {
		return false
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "hmac" || k == "signature" {
			continue
		}

		keys = append(keys, k)
	}

	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(query[k], ","))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))

	want := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(want), []byte(strings.ToLower(got)))
}
