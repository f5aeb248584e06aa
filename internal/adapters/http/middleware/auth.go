package middleware

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
	"github.com/acme/quote-manager/internal/platform/logging"
)

const (
	// ContextKeySession is the gin context key for verified session claims.
	ContextKeySession = "session_claims"

	// RetryInvalidSessionHeader asks the embedded frontend to fetch a fresh
	// token and retry.
	RetryInvalidSessionHeader = "X-Shopify-Retry-Invalid-Session-Request"

	bearerPrefix = "Bearer "
	shopSuffix   = ".myshopify.com"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errShopMismatch = errors.New("issuer and destination shops differ")
	errNotAShop     = errors.New("destination is not a shop")
)

// SessionClaims are the claims of an embedded app session token.
// The token is signed by the platform with the app's API secret.
type SessionClaims struct {
	// Dest is the shop the merchant is signed into, e.g. https://acme.myshopify.com.
	Dest string `json:"dest"`

	// SessionID identifies the admin session.
	SessionID string `json:"sid,omitempty"`

	jwt.RegisteredClaims
}

// Shop returns the shop domain from Dest.
func (c *SessionClaims) Shop() string {
	u, err := url.Parse(c.Dest)
	if err != nil {
		return ""
	}

	return u.Host
}

// SessionTokenConfig configures session token verification.
type SessionTokenConfig struct {
	// Secret is the app's API secret.
	Secret string

	// Audience is the app's API key.
	Audience string

	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration
}

// ParseSessionToken verifies a session token and returns its claims.
func ParseSessionToken(raw string, cfg SessionTokenConfig) (*SessionClaims, error) {
	claims := &SessionClaims{}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return []byte(cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(cfg.Audience),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	shop := claims.Shop()
	if !strings.HasSuffix(shop, shopSuffix) {
		return nil, errNotAShop
	}

	// iss is the shop's admin URL; it must name the same shop as dest.
	iss, err := url.Parse(claims.Issuer)
	if err != nil || iss.Host != shop {
		return nil, errShopMismatch
	}

	return claims, nil
}

// RequireSessionToken returns middleware that rejects requests without a
// valid session token in the Authorization header.
func RequireSessionToken(cfg SessionTokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
		if !ok || raw == "" {
			abortUnauthorized(c, errMissingToken)
			return
		}

		claims, err := ParseSessionToken(strings.TrimSpace(raw), cfg)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextKeySession, claims)
		c.Request = c.Request.WithContext(logging.WithShop(c.Request.Context(), claims.Shop()))
		c.Next()
	}
}

// GetSessionClaims returns the verified claims, or nil.
func GetSessionClaims(c *gin.Context) *SessionClaims {
	if v, ok := c.Get(ContextKeySession); ok {
		if claims, ok := v.(*SessionClaims); ok {
			return claims
		}
	}

	return nil
}

func abortUnauthorized(c *gin.Context, err error) {
	logging.FromContext(c.Request.Context()).Debug("session token rejected", "error", err.Error())

	c.Header(RetryInvalidSessionHeader, "1")
	rejectedTotal.WithLabelValues("session_token").Inc()
	dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, "a valid session token is required")
}
