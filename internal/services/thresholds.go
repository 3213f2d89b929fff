package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/bodysignal/internal/models"
)

var ErrInvalidThresholds = errors.New("invalid thresholds")

// SeverityScale maps a max intensity to a severity bucket. ExtremeMin of 0
// disables the extreme tier.
type SeverityScale struct {
	LowMax      int `yaml:"low_max" json:"low_max"`
	ModerateMax int `yaml:"moderate_max" json:"moderate_max"`
	ExtremeMin  int `yaml:"extreme_min,omitempty" json:"extreme_min,omitempty"`
}

type DeltaScale struct {
	ChangeMin      int `yaml:"change_min" json:"change_min"`
	LargeChangeMin int `yaml:"large_change_min" json:"large_change_min"`
}

type DashboardThresholds struct {
	CriticalMin   int `yaml:"critical_min" json:"critical_min"`
	DetailHighMin int `yaml:"detail_high_min" json:"detail_high_min"`
}

// Thresholds holds every bucket boundary by the view that uses it. The views
// deliberately disagree on some cut points.
type Thresholds struct {
	HeatmapSeverity SeverityScale       `yaml:"heatmap_severity" json:"heatmap_severity"`
	MonthSeverity   SeverityScale       `yaml:"month_severity" json:"month_severity"`
	BodyMapSeverity SeverityScale       `yaml:"body_map_severity" json:"body_map_severity"`
	Delta           DeltaScale          `yaml:"delta" json:"delta"`
	Dashboard       DashboardThresholds `yaml:"dashboard" json:"dashboard"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HeatmapSeverity: SeverityScale{LowMax: 3, ModerateMax: 6, ExtremeMin: 9},
		MonthSeverity:   SeverityScale{LowMax: 4, ModerateMax: 7},
		BodyMapSeverity: SeverityScale{LowMax: 3, ModerateMax: 7},
		Delta:           DeltaScale{ChangeMin: 1, LargeChangeMin: 3},
		Dashboard:       DashboardThresholds{CriticalMin: 7, DetailHighMin: 8},
	}
}

func (thresholds Thresholds) Validate() error {
	scales := map[string]SeverityScale{
		"heatmap_severity":  thresholds.HeatmapSeverity,
		"month_severity":    thresholds.MonthSeverity,
		"body_map_severity": thresholds.BodyMapSeverity,
	}
	for name, scale := range scales {
		if err := scale.validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidThresholds, name, err)
		}
	}
	if thresholds.Delta.ChangeMin < 1 || thresholds.Delta.LargeChangeMin < thresholds.Delta.ChangeMin {
		return fmt.Errorf("%w: delta requires 1 <= change_min <= large_change_min", ErrInvalidThresholds)
	}
	if !intensityInRange(thresholds.Dashboard.CriticalMin) || !intensityInRange(thresholds.Dashboard.DetailHighMin) {
		return fmt.Errorf("%w: dashboard thresholds must be within intensity range", ErrInvalidThresholds)
	}
	return nil
}

func (scale SeverityScale) validate() error {
	if scale.LowMax < models.MinIntensity || scale.ModerateMax <= scale.LowMax || scale.ModerateMax >= models.MaxIntensity {
		return errors.New("requires 1 <= low_max < moderate_max < 10")
	}
	if scale.ExtremeMin != 0 && (scale.ExtremeMin <= scale.ModerateMax+1 || scale.ExtremeMin > models.MaxIntensity) {
		return errors.New("extreme_min must leave a high tier and stay within 10")
	}
	return nil
}

func intensityInRange(value int) bool {
	return value >= models.MinIntensity && value <= models.MaxIntensity
}
