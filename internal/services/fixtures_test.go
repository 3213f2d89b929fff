package services

import (
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

func mustDate(raw string) DateKey {
	key, err := ParseDateKey(raw)
	if err != nil {
		panic(err)
	}
	return key
}

func mustTime(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func logAt(id string, conditionID string, timestamp string, intensity int, seq int64) models.SymptomLog {
	return models.SymptomLog{
		ID:          id,
		ConditionID: conditionID,
		Timestamp:   mustTime(timestamp),
		Intensity:   intensity,
		Seq:         seq,
	}
}

func logIDs(logs []models.SymptomLog) []string {
	ids := make([]string, 0, len(logs))
	for _, logEntry := range logs {
		ids = append(ids, logEntry.ID)
	}
	return ids
}

func sameStrings(left []string, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	for index := range left {
		if left[index] != right[index] {
			return false
		}
	}
	return true
}
