package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	sharedutils "github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	"github.com/KBesada24/CSC430-SWE/v1/utils"
)

// JWTAuthConfig holds configuration for the JWT authentication middleware
type JWTAuthConfig struct {
	// Secret is the HS256 signing secret shared with the auth issuer
	Secret string
	// Issuer, when set, must match the token's iss claim
	Issuer string
}

// Validate checks that the configuration is usable
func (c JWTAuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	return nil
}

// StudentClaims are the claims carried by a platform access token
type StudentClaims struct {
	StudentID string `json:"studentId"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware verifies bearer tokens and attaches the authenticated
// student to the request context
type JWTAuthMiddleware struct {
	config JWTAuthConfig
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(config JWTAuthConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{config: config}
}

// Authenticate wraps a handler with bearer-token verification
func (m *JWTAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := utils.ExtractBearerToken(r)
		if err != nil {
			sharedutils.RespondWithError(w, http.StatusUnauthorized, "No authentication token provided")
			return
		}

		claims := &StudentClaims{}
		parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if m.config.Issuer != "" {
			parserOpts = append(parserOpts, jwt.WithIssuer(m.config.Issuer))
		}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(m.config.Secret), nil
		}, parserOpts...)
		if err != nil || !token.Valid {
			slog.Debug("JWT verification failed", "error", err)
			sharedutils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		student, err := models.NewAuthenticatedStudent(claims.StudentID, claims.Email, models.StudentRole(claims.Role))
		if err != nil {
			slog.Warn("Verified token carries unusable identity", "error", err)
			sharedutils.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		ctx := utils.SetAuthenticatedStudent(r.Context(), student)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
