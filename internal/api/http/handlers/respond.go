package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response wrapper. Every call returns one, success
// or failure; status mirrors the HTTP status code and data carries either
// the handler payload or a human-readable failure message.
type Envelope struct {
	Status    int    `json:"status"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Respond writes the envelope with the given status.
func Respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{
		Status:    status,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
