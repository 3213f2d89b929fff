package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/models"
	"github.com/terraincognita07/bodysignal/internal/services"
)

type logPayload struct {
	ConditionID  string            `json:"condition_id"`
	NewCondition *conditionPayload `json:"new_condition"`
	Date         string            `json:"date"`
	Intensity    int               `json:"intensity"`
	Medication   string            `json:"medication"`
	Notes        string            `json:"notes"`
}

type createdLogResponse struct {
	Log       models.SymptomLog `json:"log"`
	Condition *models.Condition `json:"condition,omitempty"`
}

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	logs, err := handler.logService.ListLogsDescending(c.Query("condition"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(logs)
}

func (handler *Handler) CreateLog(c *fiber.Ctx) error {
	payload := logPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	input := services.LogInput{
		ConditionID: payload.ConditionID,
		Timestamp:   payload.Date,
		Intensity:   payload.Intensity,
		Medication:  payload.Medication,
		Notes:       payload.Notes,
	}
	if payload.NewCondition != nil {
		conditionInput := payload.NewCondition.input()
		input.NewCondition = &conditionInput
	}

	entry, condition, err := handler.logService.CreateLog(input, handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}
	handler.metrics.LogCreated()
	if condition != nil {
		handler.metrics.ConditionCreated()
	}
	return c.Status(fiber.StatusCreated).JSON(createdLogResponse{Log: entry, Condition: condition})
}
