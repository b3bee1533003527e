package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextAgentID is the gin context key carrying the authenticated agent id
const ContextAgentID = "agent_id"

// Middleware gates routes behind a valid Bearer token. Requests without a
// session get 401; the route handler never runs.
func Middleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := issuer.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextAgentID, claims.AgentID)
		c.Next()
	}
}

// AgentID extracts the authenticated agent id from the request context
func AgentID(c *gin.Context) string {
	return c.GetString(ContextAgentID)
}
