package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"timesheet-service/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Business
// rejections carry the data the caller needs to render a kind-specific
// message; everything else is an infrastructure failure.
func respondError(c *fiber.Ctx, err error) error {
	var locked *domain.PeriodLockedError
	var limit *domain.DailyLimitExceededError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Unauthorized",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"message": "Entry not found",
		})
	case errors.As(err, &locked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      true,
			"message":    "Period is locked",
			"entry_date": locked.EntryDate.Format("2006-01-02"),
			"lock_date":  locked.LockDate.Format("2006-01-02"),
		})
	case errors.As(err, &limit):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":           true,
			"message":         "Daily limit exceeded",
			"existing_hours":  limit.ExistingHours,
			"attempted_hours": limit.AttemptedHours,
			"max_hours":       7.0,
		})
	default:
		log.Printf("Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Internal server error",
			"details": err.Error(),
		})
	}
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   true,
		"message": message,
		"details": details,
	})
}
