package api

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with middleware and routes.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Body Signal",
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          handler.errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: handler.accessLog}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	RegisterRoutes(app, handler)
	return app
}

func (handler *Handler) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	handler.logger.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, "error.internal")
}
