package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/service"
)

// TokenVerifier decodes a signed token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// Identity resolves the Authorization header once per request.
//
// A request without the header continues anonymously. A request whose token
// fails verification also continues; the failure is stored in the request
// context and surfaces only from operations that need an identity.
func Identity(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return next(c)
			}

			req := c.Request()
			ctx := req.Context()
			identity, err := verifier.Verify(token)
			if err != nil {
				ctx = service.WithTokenError(ctx, err)
			} else {
				ctx = service.WithIdentity(ctx, identity)
				c.Set("seller_id", identity.ID)
			}
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// bearerToken accepts "Bearer <token>" as well as a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
