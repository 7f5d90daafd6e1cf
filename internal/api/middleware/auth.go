package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/pkg/jwthelper"
)

// ContextUserIDKey is the context key under which the authenticated
// user's ID is stored for downstream handlers.
const ContextUserIDKey = "userID"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey []byte) *Authenticator {
	return &Authenticator{signingKey: signingKey}
}

// VerifyJWT validates the Authorization bearer token and rejects tokens
// presented from a different user agent than the one they were issued to.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(c, response.ErrUnauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.RenderErr(c, response.ErrUnauthorized("invalid authorization header"))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, parts[1])
		if err != nil {
			response.RenderErr(c, response.ErrUnauthorized("invalid token"))
			return
		}

		if claims.UserAgent != c.Request.UserAgent() {
			response.RenderErr(c, response.ErrUnauthorized("invalid token"))
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
