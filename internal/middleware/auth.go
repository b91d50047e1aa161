package middleware

import (
	"strings"

	"skillswap/internal/utils"
	"skillswap/pkg/logger"

	"github.com/gin-gonic/gin"
)

// MemberAuth validates the bearer token and stores the member identity
// in the request context. For WebSocket upgrades, which cannot carry
// headers from the browser, the token may arrive as a query parameter.
func MemberAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			token := c.Query("token")
			if token == "" {
				utils.UnauthorizedResponse(c, "Missing authorization token")
				c.Abort()
				return
			}
			authHeader = "Bearer " + token
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c, "Invalid token format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateMemberJWT(tokenString)
		if err != nil {
			logger.WithError(err).Debug("Token validation failed")
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("member_id", claims.MemberID)
		c.Set("nickname", claims.Nickname)

		c.Next()
	}
}

// MemberID returns the authenticated member id from the context.
func MemberID(c *gin.Context) string {
	return c.GetString("member_id")
}
