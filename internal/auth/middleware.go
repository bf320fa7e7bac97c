package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"timesheet-service/internal/models"
)

// Middleware verifies the Authorization bearer token and stores the actor
// on the request. Requests without a valid token continue with a nil actor;
// whether that is fatal is decided per operation (reads fail open to empty,
// writes fail with unauthorized).
func Middleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Next()
		}
		actor, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			log.Printf("Rejected bearer token: %v", err)
			return c.Next()
		}
		storeActor(c, actor)
		return c.Next()
	}
}

// RequireRole guards a route group: 401 without an actor, 403 when the
// actor's role is not in the allowed set.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := FromContext(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "Authentication required",
			})
		}
		for _, role := range roles {
			if actor.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   true,
			"message": "Insufficient role",
		})
	}
}

// ParseToken verifies an HS256 token from the identity service and maps its
// claims (sub = user id, role) to an Actor.
func ParseToken(tokenString, secret string) (*Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, err
	}
	role, _ := claims["role"].(string)
	if !models.Role(role).Valid() {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &Actor{ID: id, Role: models.Role(role)}, nil
}
