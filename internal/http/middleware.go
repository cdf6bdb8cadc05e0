package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campus-connect/internal/auth"
)

// subjectKey is the gin context key the guard stores the verified email under.
const subjectKey = "auth.subject"

// AuthRequired extracts a bearer token from the Authorization header and
// verifies it. No token at all is 401; a present but invalid token is 403.
// On success the subject email is attached to the request context.
func AuthRequired(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
			return
		}

		email, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		c.Set(subjectKey, email)
		c.Next()
	}
}

// subjectEmail returns the email the guard resolved for this request.
func subjectEmail(c *gin.Context) string {
	email, _ := c.Get(subjectKey)
	s, _ := email.(string)
	return s
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
