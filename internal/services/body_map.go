package services

import (
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

type RegionIntensity struct {
	Region       models.BodyRegion `json:"region"`
	MaxIntensity int               `json:"max_intensity"`
	Count        int               `json:"count"`
	Bucket       Bucket            `json:"bucket"`
}

// BuildBodyMap takes the max intensity per region over logs dated within
// [from, to]. Logs of unknown conditions are attributed to RegionGeneral.
// Every region is present in the result, in BodyRegions order.
func BuildBodyMap(conditions []models.Condition, logs []models.SymptomLog, from DateKey, to DateKey, location *time.Location, scale SeverityScale) []RegionIntensity {
	regionByCondition := make(map[string]models.BodyRegion, len(conditions))
	for _, condition := range conditions {
		region := condition.Region
		if region == "" {
			region = models.RegionGeneral
		}
		regionByCondition[condition.ID] = region
	}

	maxByRegion := make(map[models.BodyRegion]int)
	countByRegion := make(map[models.BodyRegion]int)
	for _, logEntry := range logs {
		day := DateKeyOf(logEntry.Timestamp, location)
		if day.Before(from) || day.After(to) {
			continue
		}
		region, ok := regionByCondition[logEntry.ConditionID]
		if !ok {
			region = models.RegionGeneral
		}
		maxByRegion[region] = max(maxByRegion[region], logEntry.Intensity)
		countByRegion[region]++
	}

	regions := models.BodyRegions()
	result := make([]RegionIntensity, 0, len(regions))
	for _, region := range regions {
		result = append(result, RegionIntensity{
			Region:       region,
			MaxIntensity: maxByRegion[region],
			Count:        countByRegion[region],
			Bucket:       scale.Bucket(maxByRegion[region]),
		})
	}
	return result
}
