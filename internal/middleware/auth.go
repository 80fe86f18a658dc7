package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/purva252/study-connect-hub/internal/config"
	"github.com/purva252/study-connect-hub/internal/utils"
)

// Auth validates bearer tokens and attaches the caller identity to the
// request context. Locally issued HS256 tokens are the default; when a JWKS
// URL is configured the token is validated against the external provider.
func Auth(cfg config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, 401, "Unauthorized, token missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)

		claims, err := ValidateToken(tokenString, cfg)
		if err != nil {
			utils.ErrorResponse(c, 401, "Unauthorized, token missing or invalid")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// ValidateToken picks the validation path based on configuration.
func ValidateToken(tokenString string, cfg config.App) (*utils.Claims, error) {
	if cfg.AuthJWKSURL != "" {
		return utils.ValidateRemoteToken(tokenString, cfg.JWTIssuer, cfg.AuthRoleClaim)
	}
	return utils.ParseToken(tokenString, cfg.JWTSigningKey, cfg.JWTIssuer)
}
