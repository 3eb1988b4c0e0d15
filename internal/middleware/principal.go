package middleware

import (
	"errors"
	"net/http"

	"github.com/instapay/ledger/pkg/web"

	"github.com/gin-gonic/gin"
)

const (
	// PrincipalHeader carries the authenticated username, placed there by the
	// authentication layer that fronts this service. The ledger trusts it.
	PrincipalHeader = "X-Principal"

	// PrincipalKey is the gin context key the principal is stored under.
	PrincipalKey = "principal"
)

// ErrPrincipalNotFound indicates that the request carries no principal header.
var ErrPrincipalNotFound = errors.New("principal header is not provided")

// Principal extracts the authenticated username from the request headers and
// aborts the request when it is missing.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.Request.Header.Get(PrincipalHeader)
		if principal == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrPrincipalNotFound))
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}
