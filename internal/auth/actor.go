// Package auth extracts the authenticated actor from incoming requests.
// Tokens are issued by the external identity service; this package only
// verifies them and exposes the actor's id and role to the rest of the app.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"timesheet-service/internal/models"
)

const actorLocalsKey = "actor"

// Actor is the authenticated identity issuing an operation. A nil *Actor
// means "not authenticated".
type Actor struct {
	ID   uuid.UUID   `json:"id"`
	Role models.Role `json:"role"`
}

// FromContext returns the actor stored by the middleware, or nil when the
// request carried no valid token.
func FromContext(c *fiber.Ctx) *Actor {
	actor, _ := c.Locals(actorLocalsKey).(*Actor)
	return actor
}

func storeActor(c *fiber.Ctx, actor *Actor) {
	c.Locals(actorLocalsKey, actor)
}
