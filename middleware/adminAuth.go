package middleware

import (
	"net/http"
	"strings"

	"infinitewash/models"
	"infinitewash/services/apperror"
	"infinitewash/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware admits requests carrying a valid admin bearer token.
func JWTAuthAdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONErrorKind(c, http.StatusUnauthorized, string(apperror.Unauthorized), "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaims(secret, tokenString)
		if err != nil || role != models.RoleAdmin {
			utils.JSONErrorKind(c, http.StatusUnauthorized, string(apperror.Unauthorized), "Unauthorized admin access", "")
			return
		}

		c.Set("adminEmail", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
