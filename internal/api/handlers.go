package api

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/terraincognita07/bodysignal/internal/db"
	"github.com/terraincognita07/bodysignal/internal/i18n"
	"github.com/terraincognita07/bodysignal/internal/metrics"
	"github.com/terraincognita07/bodysignal/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	location     *time.Location
	weekStart    time.Weekday
	lookbackDays int
	now          func() time.Time
	i18n         *i18n.Manager
	logger       *slog.Logger
	metrics      *metrics.Metrics
	accessLog    io.Writer
	thresholds   atomic.Pointer[services.Thresholds]

	repositories     *db.Repositories
	conditionService *services.ConditionService
	logService       *services.LogService
	statsService     *services.StatsService
	exportService    *services.ExportService
}

type Options struct {
	Location     *time.Location
	WeekStart    time.Weekday
	LookbackDays int
	Thresholds   services.Thresholds
	// Now is the clock used for "today"; nil means time.Now.
	Now     func() time.Time
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// AccessLog receives the request log lines; nil means stdout.
	AccessLog io.Writer
}

func NewHandler(database *gorm.DB, i18nManager *i18n.Manager, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if err := options.Thresholds.Validate(); err != nil {
		return nil, err
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	accessLog := options.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	lookback := options.LookbackDays
	if lookback <= 0 {
		lookback = services.DefaultLookbackDays
	}

	handler := &Handler{
		db:           database,
		location:     location,
		weekStart:    options.WeekStart,
		lookbackDays: lookback,
		now:          now,
		i18n:         i18nManager,
		logger:       logger,
		metrics:      options.Metrics,
		accessLog:    accessLog,
	}
	handler.SetThresholds(options.Thresholds)
	return handler.withDependencies(database), nil
}

// SetThresholds swaps the bucket boundaries used by subsequent requests.
func (handler *Handler) SetThresholds(thresholds services.Thresholds) {
	handler.thresholds.Store(&thresholds)
}

func (handler *Handler) currentThresholds() services.Thresholds {
	if thresholds := handler.thresholds.Load(); thresholds != nil {
		return *thresholds
	}
	return services.DefaultThresholds()
}
