package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"carbook/internal/domain"
)

const requestContextKey = "request_context"

// AuthOptional parses a bearer token when one is sent and stores the owner
// identity; anonymous requests pass through. The booking pipeline runs
// end-to-end without an owner, so most routes use this.
func AuthOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rc, ok := parseBearer(c, secret); ok {
			c.Set(requestContextKey, rc)
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a valid owner identity. Only
// persistence-facing routes (reservations, server-side drafts) need it.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := parseBearer(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// GetRequestContext returns the authenticated identity, zero-valued for
// anonymous requests.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc
		}
	}
	return domain.RequestContext{}
}

func parseBearer(c *gin.Context, secret []byte) (domain.RequestContext, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return domain.RequestContext{}, false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return domain.RequestContext{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.RequestContext{}, false
	}

	rc := domain.RequestContext{}
	if v, ok := claims["user_id"].(float64); ok {
		rc.OwnerID = domain.ID(v)
	}
	if v, ok := claims["email"].(string); ok {
		rc.Email = v
	}
	return rc, rc.OwnerID > 0
}
