package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/models"
	"github.com/terraincognita07/bodysignal/internal/services"
)

type conditionPayload struct {
	Label     string `json:"label" form:"label"`
	Location  string `json:"body_part" form:"body_part"`
	Region    string `json:"region" form:"region"`
	OnsetDate string `json:"onset_date" form:"onset_date"`
}

func (payload conditionPayload) input() services.ConditionInput {
	return services.ConditionInput{
		Label:     payload.Label,
		Location:  payload.Location,
		Region:    payload.Region,
		OnsetDate: payload.OnsetDate,
	}
}

type conditionPatchPayload struct {
	Label    *string `json:"label"`
	Location *string `json:"body_part"`
	Region   *string `json:"region"`
}

func (handler *Handler) ListConditions(c *fiber.Ctx) error {
	var (
		conditions []models.Condition
		err        error
	)
	if c.QueryBool("include_archived") {
		conditions, err = handler.conditionService.ListConditions()
	} else {
		conditions, err = handler.conditionService.ListActiveConditions()
	}
	if err != nil {
		return handler.serviceError(c, err)
	}
	if conditions == nil {
		conditions = []models.Condition{}
	}
	return c.JSON(conditions)
}

func (handler *Handler) CreateCondition(c *fiber.Ctx) error {
	payload := conditionPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	condition, err := handler.conditionService.CreateCondition(payload.input(), handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}
	handler.metrics.ConditionCreated()
	return c.Status(fiber.StatusCreated).JSON(condition)
}

func (handler *Handler) GetCondition(c *fiber.Ctx) error {
	condition, err := handler.conditionService.FindCondition(c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}

	done := handler.metrics.ObserveAggregation("condition_detail")
	detail, err := handler.statsService.BuildConditionDetail(condition, handler.currentThresholds())
	done()
	if err != nil {
		return handler.serviceError(c, err)
	}

	language := currentLanguage(c)
	return c.JSON(conditionDetailView{
		Card:       handler.cardView(language, detail.Card),
		RecentLogs: handler.logsWithDeltaView(language, detail.RecentLogs),
		Chronology: handler.logsWithDeltaView(language, detail.Chronology),
	})
}

func (handler *Handler) UpdateCondition(c *fiber.Ctx) error {
	payload := conditionPatchPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	patch := models.ConditionPatch{Label: payload.Label, Location: payload.Location}
	if payload.Region != nil {
		region := models.BodyRegion(*payload.Region)
		patch.Region = &region
	}

	condition, err := handler.conditionService.UpdateCondition(c.Params("id"), patch)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(condition)
}

func (handler *Handler) ArchiveCondition(c *fiber.Ctx) error {
	return handler.setArchived(c, true)
}

func (handler *Handler) UnarchiveCondition(c *fiber.Ctx) error {
	return handler.setArchived(c, false)
}

func (handler *Handler) setArchived(c *fiber.Ctx, archived bool) error {
	condition, err := handler.conditionService.SetArchived(c.Params("id"), archived)
	if err != nil {
		return handler.serviceError(c, err)
	}
	handler.metrics.ConditionArchived(archived)
	return c.JSON(condition)
}
