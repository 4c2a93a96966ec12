package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/config"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/services"

	jwtware "github.com/gofiber/contrib/jwt"
)

// SessionProtected validates the bearer session token. When a JWKS URL
// is configured the identity provider's RS256 keys are used; otherwise
// the shared HS256 secret covers first-party tooling.
func SessionProtected(cfg *config.Config, jwks *services.ProviderJWKSClient) fiber.Handler {
	jwtCfg := jwtware.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	}
	if cfg.AuthJWKSURL != "" {
		jwtCfg.KeyFunc = jwks.Keyfunc
	} else {
		jwtCfg.SigningKey = jwtware.SigningKey{Key: []byte(cfg.JWTSecret)}
	}
	return jwtware.New(jwtCfg)
}
