package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"legalease-api/core/constants"
	"legalease-api/core/controller"
	"legalease-api/core/errors"
	"legalease-api/core/utils"
)

type Middleware struct {
	base controller.BaseController
}

func NewMiddleware() *Middleware {
	return &Middleware{base: controller.NewBaseController()}
}

// AuthMiddleware validates the Bearer token and stores the claims in context
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return m.base.Unauthorized(errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose token does not carry the given role
func (m *Middleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := c.Get(constants.ContextTokenData)
			claims, ok := tokenData.(*utils.TokenClaims)
			if !ok || claims == nil {
				return m.base.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
			}
			if claims.Role != role {
				return m.base.Forbidden(errors.ErrForbidden, "Insufficient role for this operation")
			}
			return next(c)
		}
	}
}
