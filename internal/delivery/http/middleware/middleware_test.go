package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("UserID"))
	})

	t.Run("Should accept a valid bearer token", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("Should accept the auth cookie", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"sub": "user-2"})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tok})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "user-2", w.Body.String())
	})

	t.Run("Should reject missing, expired and foreign tokens", func(t *testing.T) {
		cases := map[string]string{
			"missing": "",
			"expired": "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()}),
			"foreign": "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"sub": "u"}),
			"no sub":  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"email": "a@b.c"}),
		}
		for name, header := range cases {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		}
	})
}

func TestCSRFMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret), CSRFMiddleware(false))
	r.POST("/things", func(c *gin.Context) { c.Status(http.StatusCreated) })

	tok := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1"})

	t.Run("Should skip bearer clients", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/things", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Should require the token for cookie sessions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/things", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tok})
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "abc"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)

		req.Header.Set(CSRFTokenHeaderName, "abc")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperror.NotFound("Application not found")) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("pq: password authentication failed")) })

	t.Run("Should render application errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "Application not found", body.Message)
		assert.NotEmpty(t, body.RequestID)
		assert.Equal(t, body.RequestID, w.Header().Get(RequestIDHeader))
	})

	t.Run("Should hide unexpected errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("RequestID")) })

	t.Run("Should keep a well-formed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "9b2f0c3e-4d7a-4c1e-8f6b-2a5d9e7c1b30")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "9b2f0c3e-4d7a-4c1e-8f6b-2a5d9e7c1b30", w.Body.String())
	})

	t.Run("Should replace garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Body.String())
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	clock := time.Date(2024, 1, 15, 9, 0, 10, 0, time.UTC)
	l := &rateLimiter{cfg: APIRateLimitConfig(2, time.Minute), now: func() time.Time { return clock }}
	r := gin.New()
	r.Use(l.handle)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	t.Run("Should reject requests over the budget", func(t *testing.T) {
		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			codes = append(codes, hit().Code)
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Should tell the client when the window resets", func(t *testing.T) {
		w := hit()
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "2024-01-15T09:01:00Z", w.Header().Get("X-RateLimit-Reset"))
		assert.Equal(t, "50", w.Header().Get("Retry-After"))
	})

	t.Run("Should start a fresh budget in the next window", func(t *testing.T) {
		clock = clock.Add(time.Minute)
		w := hit()
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should count through the exported constructor", func(t *testing.T) {
		r := gin.New()
		r.Use(RateLimitMiddleware(APIRateLimitConfig(1, time.Hour)))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	})
}

func TestGenerationRateLimitConfig(t *testing.T) {
	t.Run("Should take a quarter of the api budget", func(t *testing.T) {
		assert.Equal(t, 30, GenerationRateLimitConfig(120, time.Minute).Limit)
		assert.Equal(t, 2, GenerationRateLimitConfig(10, time.Minute).Limit)
	})

	t.Run("Should never drop to zero for small thresholds", func(t *testing.T) {
		for _, api := range []int{1, 2, 3} {
			assert.Equal(t, 1, GenerationRateLimitConfig(api, time.Minute).Limit, "api limit %d", api)
		}
	})

	t.Run("Should derive from the default when the api limit is unset", func(t *testing.T) {
		cfg := GenerationRateLimitConfig(0, 0)
		assert.Equal(t, defaultAPILimit/generationShare, cfg.Limit)
		assert.Equal(t, time.Minute, cfg.Window)
	})

	t.Run("Should key by user when authenticated", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		cfg := GenerationRateLimitConfig(8, time.Minute)
		assert.Equal(t, c.ClientIP(), cfg.KeyFunc(c))
		c.Set("UserID", "user-1")
		assert.Equal(t, "user-1", cfg.KeyFunc(c))
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://copilot.example.com", true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://copilot.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://copilot.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
