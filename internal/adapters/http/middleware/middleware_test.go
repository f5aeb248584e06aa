package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generates a uuid", incoming: ""},
		{name: "keeps the caller's id", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ginID, ctxID string

			router := gin.New()
			router.Use(RequestID())
			router.GET("/x", func(c *gin.Context) {
				ginID = GetRequestID(c)
				ctxID = RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}

			router.ServeHTTP(w, req)

			header := w.Header().Get(HeaderRequestID)
			assert.Equal(t, header, ginID)
			assert.Equal(t, header, ctxID)

			if tt.incoming == "" {
				_, err := uuid.Parse(header)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.incoming, header)
			}
		})
	}
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	var ginID, ctxID string

	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/x", func(c *gin.Context) {
		ginID = GetCorrelationID(c)
		ctxID = CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderCorrelationID, "corr-456")
	router.ServeHTTP(w, req)

	assert.Equal(t, "corr-456", w.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "corr-456", ginID)
	assert.Equal(t, "corr-456", ctxID)
}

func TestIDsMissingOutsideMiddleware(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CorrelationIDFromContext(nil)) //nolint:staticcheck // nil context is handled
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		target    string
		status    int
		wantLog   bool
		wantLevel string
		wantQuery bool
	}{
		{name: "logs api request", target: "/api/v1/quotes?limit=5", status: http.StatusOK, wantLog: true, wantLevel: "INFO", wantQuery: true},
		{name: "client error is a warning", target: "/api/v1/quotes/x", status: http.StatusNotFound, wantLog: true, wantLevel: "WARN", wantQuery: false},
		{name: "server error is an error", target: "/api/v1/quotes", status: http.StatusBadGateway, wantLog: true, wantLevel: "ERROR", wantQuery: false},
		{name: "drops handshake query", target: "/auth/callback?code=secret&hmac=abc", status: http.StatusFound, wantLog: true, wantLevel: "INFO", wantQuery: false},
		{name: "skips probes", target: "/-/live", status: http.StatusOK, wantLog: false},
		{name: "skips metrics", target: "/metrics", status: http.StatusOK, wantLog: false},
		{name: "skips extra paths", target: "/favicon.ico", status: http.StatusNotFound, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			router := gin.New()
			router.Use(Logging(logger, "/favicon.ico"))
			router.Any("/*path", func(c *gin.Context) { c.Status(tt.status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))

			out := buf.String()
			if !tt.wantLog {
				assert.Empty(t, out)
				return
			}

			assert.Contains(t, out, `"msg":"request started"`)
			assert.Contains(t, out, `"msg":"request completed"`)
			assert.Contains(t, out, `"route":"/*path"`)
			assert.Contains(t, out, `"level":"`+tt.wantLevel+`"`)
			assert.NotContains(t, out, "secret")

			if tt.wantQuery {
				assert.Contains(t, out, "limit=5")
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var hooked any

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	router := gin.New()
	router.Use(Recovery(logger, func(err any, stack []byte) {
		hooked = err
		assert.NotEmpty(t, stack)
	}))
	router.GET("/boom", func(*gin.Context) { panic("kaput") })

	panics := panicsTotal.WithLabelValues("/boom")
	before := testutil.ToFloat64(panics)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.InDelta(t, before+1, testutil.ToFloat64(panics), 0)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "kaput", hooked)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
	assert.Equal(t, "an internal error occurred", resp.Error.Message)
}

func TestRecovery_AfterWrite(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(Recovery(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	router.GET("/late", func(c *gin.Context) {
		c.String(http.StatusAccepted, "partial")
		panic("late")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/late", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(Timeout(20*time.Millisecond, "/slow-ok"))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	router.GET("/fast", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})
	router.GET("/slow-ok", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	t.Run("expired deadline returns 503", func(t *testing.T) {
		timeouts := timeoutsTotal.WithLabelValues("/slow")
		before := testutil.ToFloat64(timeouts)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

		assert.InDelta(t, before+1, testutil.ToFloat64(timeouts), 0)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrorCodeTimeout, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("fast handler sees a deadline", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skipped path has no deadline", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow-ok", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

const (
	testSecret   = "shpss_test_secret"
	testAudience = "api-key-123"
)

func signSessionToken(t *testing.T, method jwt.SigningMethod, secret string, mutate func(*SessionClaims)) string {
	t.Helper()

	now := time.Now()
	claims := &SessionClaims{
		Dest:      "https://acme.myshopify.com",
		SessionID: "sid-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://acme.myshopify.com/admin",
			Subject:   "42",
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Second)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestRequireSessionToken(t *testing.T) {
	t.Parallel()

	cfg := SessionTokenConfig{Secret: testSecret, Audience: testAudience, Leeway: 5 * time.Second}

	tests := []struct {
		name       string
		header     func(t *testing.T) string
		wantStatus int
	}{
		{
			name: "valid token",
			header: func(t *testing.T) string {
				return "Bearer " + signSessionToken(t, jwt.SigningMethodHS256, testSecret, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     func(*testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "not a bearer token",
			header: func(t *testing.T) string {
				return "Basic " + signSessionToken(t, jwt.SigningMethodHS256, testSecret, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			header: func(t *testing.T) string {
				return "Bearer " + signSessionToken(t, jwt.SigningMethodHS256, "other", nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unexpected algorithm",
			header: func(t *testing.T) string {
				return "Bearer " + signSessionToken(t, jwt.SigningMethodHS512, testSecret, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: func(t *testing.T) string {
				return "Bearer " + signSessionToken(t, jwt.SigningMethodHS256, testSecret, func(c *SessionClaims) {
					c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "other app's audience",
			header: func(t *testing.T) string {
				return "Bearer " + signSessionToken(t, jwt.SigningMethodHS256, testSecret, func(c *SessionClaims) {
					c.Audience = jwt.ClaimStrings{"someone-else"}
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "issuer names another shop",
			header: func(t *testing.T) string {
				return "Bearer " + signSessionToken(t, jwt.SigningMethodHS256, testSecret, func(c *SessionClaims) {
					c.Issuer = "https://evil.myshopify.com/admin"
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "destination is not a shop",
			header: func(t *testing.T) string {
				return "Bearer " + signSessionToken(t, jwt.SigningMethodHS256, testSecret, func(c *SessionClaims) {
					c.Dest = "https://example.com"
					c.Issuer = "https://example.com/admin"
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var shop string

			router := gin.New()
			router.Use(RequireSessionToken(cfg))
			router.GET("/api", func(c *gin.Context) {
				if claims := GetSessionClaims(c); claims != nil {
					shop = claims.Shop()
				}
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}

			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "acme.myshopify.com", shop)
				return
			}

			assert.Equal(t, "1", w.Header().Get(RetryInvalidSessionHeader))
			assert.Equal(t, dto.ErrorCodeUnauthorized, decodeEnvelope(t, w).Error.Code)
		})
	}
}

func TestGetSessionClaims_Absent(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetSessionClaims(c))

	c.Set(ContextKeySession, "not claims")
	assert.Nil(t, GetSessionClaims(c))
}

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0.5, 2)

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":5000"
		router.ServeHTTP(w, req)

		return w
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	w := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, dto.ErrorCodeRateLimited, decodeEnvelope(t, w).Error.Code)

	// Buckets are per client.
	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code)
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_DropsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	ok, _ := rl.allow("a")
	assert.True(t, ok)
	assert.Equal(t, 1, rl.Len())

	now = now.Add(idleLimiterTTL + time.Second)

	ok, _ = rl.allow("b")
	assert.True(t, ok)
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_SweepsOncePerTTL(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	at := func(tenths time.Duration, key string) {
		now = start.Add(idleLimiterTTL * tenths / 10)
		rl.allow(key)
	}

	at(0, "a")
	at(9, "b")
	assert.Equal(t, 2, rl.Len(), "no sweep inside the first interval")

	at(11, "c")
	assert.Equal(t, 2, rl.Len(), "a is dropped, b is still fresh")

	at(20, "c")
	assert.Equal(t, 2, rl.Len(), "b is idle past the TTL but the last sweep is recent")

	at(22, "c")
	assert.Equal(t, 1, rl.Len())
}

func TestCORS(t *testing.T) {
	t.Parallel()

	preflight := func(h gin.HandlerFunc, origin string) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(h)
		router.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		router.ServeHTTP(w, req)

		return w
	}

	t.Run("disabled without origins", func(t *testing.T) {
		w := preflight(CORS(nil), "https://admin.example.com")
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allows configured origin", func(t *testing.T) {
		w := preflight(CORS([]string{"https://admin.example.com"}), "https://admin.example.com")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
