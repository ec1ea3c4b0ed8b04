package handlers

import (
	"context"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// Pinger is implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealth reports whether the database answers.
// GET /health
func HandleHealth(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Database ping failed: " + err.Error()})
		}
		return c.JSON(fiber.Map{"success": true, "message": "Database ping successful!"})
	}
}

// HandleVersion prints the build information.
// GET /version
func HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return c.Status(500).SendString("no build information available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.SendString("<pre>\n" + info.String() + "</pre>\n")
}
