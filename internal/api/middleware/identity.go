package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/nft-registry/internal/domain"
)

// PrincipalHeader carries the caller's principal. The value is opaque and
// taken at face value; there is no cryptographic validation of callers.
const PrincipalHeader = "X-Registry-Principal"

const principalKey = "principal"

// Identity resolves the caller principal from the request header and stashes
// it on the context. Requests without the header run as the anonymous
// principal.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := domain.Identity(c.GetHeader(PrincipalHeader))
		if principal == "" {
			principal = domain.Anonymous
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the caller identity resolved by the Identity middleware.
func Principal(c *gin.Context) domain.Identity {
	if v, ok := c.Get(principalKey); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Anonymous
}
