package middleware

import (
	"net/http"
	"strings"

	"shopadmin/internal/auth"
	"shopadmin/internal/domain"

	"github.com/gin-gonic/gin"
)

const requestContextKey = "request_context"

// AuthOptional reads a bearer token when one is sent. Requests without a
// token pass through anonymously; a token that fails validation is rejected.
func AuthOptional(v auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || v == nil {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: format token tidak valid"})
			return
		}
		claims, err := v.Validate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: token tidak valid"})
			return
		}
		c.Set(requestContextKey, domain.RequestContext{Subject: claims.Subject, Role: claims.Role})
		c.Next()
	}
}

// GetRequestContext returns the authenticated caller, or the zero value for
// anonymous requests.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc
		}
	}
	return domain.RequestContext{}
}

// GetSubject returns the authenticated caller id, or "" for anonymous requests.
func GetSubject(c *gin.Context) string {
	return GetRequestContext(c).Subject
}
