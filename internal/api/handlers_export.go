package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/services"
)

type resetPayload struct {
	Confirm bool `json:"confirm" form:"confirm"`
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	now := handler.now()
	document, err := handler.exportService.BuildDocument(now)
	if err != nil {
		return handler.serviceError(c, err)
	}

	serialized, err := services.EncodeExportDocument(document)
	if err != nil {
		return handler.serviceError(c, err)
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, services.ExportFileName(now, handler.location))
	return c.Send(serialized)
}

// ImportJSON replaces all stored data with the uploaded backup document.
func (handler *Handler) ImportJSON(c *fiber.Ctx) error {
	document, err := services.DecodeExportDocument(c.Body())
	if err != nil {
		handler.metrics.ImportFinished(err)
		return handler.serviceError(c, err)
	}

	summary, err := handler.exportService.Import(document)
	handler.metrics.ImportFinished(err)
	if err != nil {
		return handler.serviceError(c, err)
	}
	handler.logger.Info("backup imported", "conditions", summary.Conditions, "logs", summary.Logs, "dangling_logs", summary.DanglingLogs)
	return c.JSON(summary)
}

func (handler *Handler) ResetData(c *fiber.Ctx) error {
	payload := resetPayload{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "error.invalid_payload")
		}
	}
	if !payload.Confirm {
		return apiError(c, fiber.StatusBadRequest, "error.reset_confirmation_required")
	}

	if err := handler.exportService.Reset(); err != nil {
		return handler.serviceError(c, err)
	}
	handler.metrics.Reset()
	handler.logger.Warn("all data reset")
	return c.JSON(fiber.Map{"ok": true})
}
