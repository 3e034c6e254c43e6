package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/logger"
)

// AuthCookieName is the cookie accepted in place of the Authorization header
const AuthCookieName = "auth_token"

// ctxAuthViaCookie marks requests authenticated by cookie (checked by CSRFMiddleware)
const ctxAuthViaCookie = "auth_via_cookie"

// AuthMiddleware accepts HS256 tokens signed with secret. The user id is the
// sub claim; every stored record is scoped to it.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string
		viaCookie := false

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie(AuthCookieName)
			if err == nil && cookie != "" {
				tokenString = cookie
				viaCookie = true
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if secret == "" {
				return nil, fmt.Errorf("JWT_SECRET is not configured")
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || !token.Valid {
			logger.Log.Warn("Token validation failed",
				"request_id", c.GetString("RequestID"),
				"error", err,
			)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		var email string
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			email, _ = claims["email"].(string)
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(ctxAuthViaCookie, viaCookie)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, sub)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
