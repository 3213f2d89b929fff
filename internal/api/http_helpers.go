package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/services"
)

var (
	errInvalidDateQuery     = errors.New("invalid date")
	errInvalidMonthQuery    = errors.New("invalid month")
	errInvalidLookbackQuery = errors.New("invalid lookback")
)

func apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{"error": translateMessage(currentMessages(c), key)})
}

type serviceErrorMapping struct {
	target error
	status int
	key    string
}

var serviceErrorMappings = []serviceErrorMapping{
	{target: services.ErrConditionNotFound, status: fiber.StatusNotFound, key: "error.condition_not_found"},
	{target: services.ErrInvalidConditionLabel, status: fiber.StatusBadRequest, key: "error.invalid_condition_label"},
	{target: services.ErrInvalidBodyRegion, status: fiber.StatusBadRequest, key: "error.invalid_body_region"},
	{target: services.ErrInvalidLocationLabel, status: fiber.StatusBadRequest, key: "error.invalid_location_label"},
	{target: services.ErrInvalidOnsetDate, status: fiber.StatusBadRequest, key: "error.invalid_onset_date"},
	{target: services.ErrIntensityOutOfRange, status: fiber.StatusBadRequest, key: "error.intensity_out_of_range"},
	{target: services.ErrInvalidLogTimestamp, status: fiber.StatusBadRequest, key: "error.invalid_log_timestamp"},
	{target: services.ErrLogTextTooLong, status: fiber.StatusBadRequest, key: "error.log_text_too_long"},
	{target: services.ErrInvalidGranularity, status: fiber.StatusBadRequest, key: "error.invalid_granularity"},
	{target: services.ErrInvalidAggregationMode, status: fiber.StatusBadRequest, key: "error.invalid_aggregation_mode"},
	{target: services.ErrInvalidDashboardFilter, status: fiber.StatusBadRequest, key: "error.invalid_dashboard_filter"},
	{target: services.ErrInvalidExportDocument, status: fiber.StatusBadRequest, key: "error.invalid_export_document"},
	{target: services.ErrRangeFromDateInvalid, status: fiber.StatusBadRequest, key: "error.invalid_date"},
	{target: services.ErrRangeToDateInvalid, status: fiber.StatusBadRequest, key: "error.invalid_date"},
	{target: services.ErrDateRangeInvalid, status: fiber.StatusBadRequest, key: "error.invalid_date_range"},
	{target: errInvalidDateQuery, status: fiber.StatusBadRequest, key: "error.invalid_date"},
	{target: errInvalidMonthQuery, status: fiber.StatusBadRequest, key: "error.invalid_month"},
	{target: errInvalidLookbackQuery, status: fiber.StatusBadRequest, key: "error.invalid_lookback"},
}

// serviceError renders err with the status of its sentinel. Unknown errors
// are logged and hidden behind a generic 500.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return apiError(c, mapping.status, mapping.key)
		}
	}
	handler.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, "error.internal")
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}

// parseDateQuery reads a YYYY-MM-DD value; empty yields fallback.
func parseDateQuery(raw string, fallback services.DateKey) (services.DateKey, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fallback, nil
	}
	date, err := services.ParseDateKey(value)
	if err != nil {
		return services.DateKey{}, fmt.Errorf("%w: %v", errInvalidDateQuery, err)
	}
	return date, nil
}

// parseMonthQuery reads a YYYY-MM value as the first day of that month.
func parseMonthQuery(raw string, fallback services.DateKey) (services.DateKey, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return services.FirstOfMonth(fallback), nil
	}
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return services.DateKey{}, fmt.Errorf("%w: %v", errInvalidMonthQuery, err)
	}
	return services.DateKey{Year: parsed.Year(), Month: parsed.Month(), Day: 1}, nil
}

func parseLookbackQuery(raw string, fallback int) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 1 || days > services.MaxLookbackDays {
		return 0, fmt.Errorf("%w: %q", errInvalidLookbackQuery, raw)
	}
	return days, nil
}

func (handler *Handler) today() services.DateKey {
	return services.DateKeyOf(handler.now(), handler.location)
}
