package api

import (
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	deps Deps
}

// handleGetConfig returns the effective configuration.
func (h *handlers) handleGetConfig(c *fiber.Ctx) error {
	return c.JSON(h.deps.Config)
}

// handleListStreams returns counters for every supervised stream, sorted by
// name.
func (h *handlers) handleListStreams(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"streams": h.deps.Registry.Snapshot(),
	})
}

func (h *handlers) handleGetStream(c *fiber.Ctx) error {
	name := c.Params("name")
	st, ok := h.deps.Registry.Get(name)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown stream: "+name)
	}
	return c.JSON(st)
}

func (h *handlers) handleGetJoystick(c *fiber.Ctx) error {
	return c.JSON(stateOf(h.deps.Widget))
}
