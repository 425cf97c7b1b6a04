package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ashumehta18/bajaj-test/domain/bfhl"
	"github.com/ashumehta18/bajaj-test/modules/compute"
)

// registerRoutes sets up all HTTP routes.
func (m *Module) registerRoutes(app *fiber.App) {
	app.Get("/health", m.health)
	app.Post("/bfhl", m.evaluate)

	if m.cfg.PublicDir != "" {
		app.Static("/", m.cfg.PublicDir)
	}

	// Fallback (must be last): any other path or method
	app.Use(m.notFound)
}

// health handles GET /health.
func (m *Module) health(c *fiber.Ctx) error {
	return c.JSON(bfhl.Healthy(m.cfg.OfficialEmail))
}

// evaluate handles POST /bfhl.
func (m *Module) evaluate(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if m.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.RequestTimeout)
		defer cancel()
	}

	// Fiber reuses the body buffer once the handler returns.
	body := append([]byte(nil), c.Body()...)

	result, err := m.evaluator.Evaluate(ctx, compute.EvaluateRequest{
		RequestID: requestID(c),
		Body:      body,
	})
	if err != nil {
		if msg, ok := bfhl.ClientMessage(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(bfhl.Failure(msg))
		}
		return err
	}

	return c.JSON(bfhl.Success(m.cfg.OfficialEmail, result.Data))
}

// notFound handles every unmatched route.
func (m *Module) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(bfhl.Failure(bfhl.MsgRouteNotFound))
}

// requestID returns the id assigned by the requestid middleware.
func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
