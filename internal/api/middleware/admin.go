package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/repository/dao"
)

// AdminOnly allows the request through only when the authenticated user
// carries the admin flag. Must run after VerifyJWT.
func AdminOnly(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserIDKey)
		if !exists {
			response.RenderErr(c, response.ErrUnauthorized("missing authentication"))
			return
		}

		var user dao.User
		err := db.WithContext(c.Request.Context()).First(&user, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.RenderErr(c, response.ErrUnauthorized("unknown user"))
				return
			}

			response.RenderErr(c, response.ErrInternalServerError(err))
			return
		}

		if !user.IsAdmin {
			response.RenderErr(c, response.ErrForbidden("admin access required"))
			return
		}

		c.Next()
	}
}
