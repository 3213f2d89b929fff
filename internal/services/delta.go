package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/bodysignal/internal/models"
)

var ErrIntensityOutOfRange = errors.New("intensity out of range")

type Trend string

const (
	TrendFirst    Trend = "first"
	TrendWorsened Trend = "worsened"
	TrendImproved Trend = "improved"
	TrendStable   Trend = "stable"
)

type DeltaResult struct {
	Delta             int   `json:"delta"`
	Trend             Trend `json:"trend"`
	IsFirstOccurrence bool  `json:"is_first_occurrence"`
}

// ClassifyDelta compares current with its predecessor. A nil previous marks a
// first occurrence with delta 0. Intensities are trusted; see ValidateIntensity.
func ClassifyDelta(current models.SymptomLog, previous *models.SymptomLog) DeltaResult {
	if previous == nil {
		return DeltaResult{Delta: 0, Trend: TrendFirst, IsFirstOccurrence: true}
	}

	delta := current.Intensity - previous.Intensity
	trend := TrendStable
	switch {
	case delta > 0:
		trend = TrendWorsened
	case delta < 0:
		trend = TrendImproved
	}
	return DeltaResult{Delta: delta, Trend: trend}
}

func ValidateIntensity(intensity int) error {
	if intensity < models.MinIntensity || intensity > models.MaxIntensity {
		return fmt.Errorf("%w: %d not in %d..%d", ErrIntensityOutOfRange, intensity, models.MinIntensity, models.MaxIntensity)
	}
	return nil
}
