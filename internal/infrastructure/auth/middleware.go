package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

const (
	// ContextUserIDKey holds the authenticated user id in the gin context.
	ContextUserIDKey = "auth_user_id"
	// ContextClaimsKey holds the full token claims in the gin context.
	ContextClaimsKey = "auth_claims"
)

// Middleware rejects requests without a valid bearer token and stores the
// authenticated identity on the request context.
func (s *TokenService) Middleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			apperrors.WriteError(c, apperrors.New(c.Request.Context(),
				apperrors.LayerInfrastructure, apperrors.ErrorTypeUnauthenticated,
				"missing bearer token", nil,
				"8f0a2b4c-6d5e-4f8a-93e5-7a9b1c3d5e46"), log)
			return
		}

		claims, err := s.Validate(token)
		if err != nil {
			apperrors.WriteError(c, apperrors.New(c.Request.Context(),
				apperrors.LayerInfrastructure, apperrors.ErrorTypeUnauthenticated,
				"invalid bearer token", err,
				"2b4c6d8e-0f1a-4b0c-84f6-8b0c2d4e6f57"), log)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			apperrors.WriteError(c, apperrors.New(c.Request.Context(),
				apperrors.LayerInfrastructure, apperrors.ErrorTypeUnauthenticated,
				"invalid token subject", err,
				"6d8e0f2a-4b3c-4d2e-95a7-9c1d3e5f7a68"), log)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header, falling
// back to the "token" query parameter for WebSocket handshakes where
// browsers cannot set headers.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// UserID returns the authenticated user id stored by the middleware.
func UserID(c *gin.Context) uint {
	if id, ok := c.Get(ContextUserIDKey); ok {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}
