package services

import (
	"sort"

	"github.com/terraincognita07/bodysignal/internal/models"
)

// Chronology is one condition's logs in ascending (timestamp, insertion)
// order together with the previous-log link of every log.
type Chronology struct {
	ConditionID string
	Logs        []models.SymptomLog
	positions   map[string]int
	previous    map[string]int
}

// Previous returns the log immediately preceding logID within the same
// condition. ok is false for first occurrences and unknown ids.
func (chronology Chronology) Previous(logID string) (models.SymptomLog, bool) {
	index, exists := chronology.previous[logID]
	if !exists || index < 0 {
		return models.SymptomLog{}, false
	}
	return chronology.Logs[index], true
}

func (chronology Chronology) Latest() (models.SymptomLog, bool) {
	if len(chronology.Logs) == 0 {
		return models.SymptomLog{}, false
	}
	return chronology.Logs[len(chronology.Logs)-1], true
}

// Delta classifies the log with the given id against its predecessor.
func (chronology Chronology) Delta(logID string) (DeltaResult, bool) {
	index, exists := chronology.positions[logID]
	if !exists {
		return DeltaResult{}, false
	}
	current := chronology.Logs[index]
	if previous, ok := chronology.Previous(logID); ok {
		return ClassifyDelta(current, &previous), true
	}
	return ClassifyDelta(current, nil), true
}

// BuildChronology filters logs to conditionID and links every log to its
// predecessor. logs must be in insertion order; ties on timestamp keep it.
func BuildChronology(logs []models.SymptomLog, conditionID string) Chronology {
	filtered := make([]models.SymptomLog, 0)
	for _, logEntry := range logs {
		if logEntry.ConditionID == conditionID {
			filtered = append(filtered, logEntry)
		}
	}
	return newChronology(conditionID, filtered)
}

// BuildChronologies groups logs by condition first and links each group, so
// the whole collection is indexed in O(n log n).
func BuildChronologies(logs []models.SymptomLog) map[string]Chronology {
	grouped := make(map[string][]models.SymptomLog)
	for _, logEntry := range logs {
		grouped[logEntry.ConditionID] = append(grouped[logEntry.ConditionID], logEntry)
	}

	result := make(map[string]Chronology, len(grouped))
	for conditionID, conditionLogs := range grouped {
		result[conditionID] = newChronology(conditionID, conditionLogs)
	}
	return result
}

// DeltaIndex classifies every log against its own condition's predecessor.
func DeltaIndex(logs []models.SymptomLog) map[string]DeltaResult {
	result := make(map[string]DeltaResult, len(logs))
	for _, chronology := range BuildChronologies(logs) {
		for _, logEntry := range chronology.Logs {
			if previous, ok := chronology.Previous(logEntry.ID); ok {
				result[logEntry.ID] = ClassifyDelta(logEntry, &previous)
				continue
			}
			result[logEntry.ID] = ClassifyDelta(logEntry, nil)
		}
	}
	return result
}

func newChronology(conditionID string, logs []models.SymptomLog) Chronology {
	sorted := make([]models.SymptomLog, len(logs))
	copy(sorted, logs)
	SortLogsAscending(sorted)

	// Logs sharing an instant all link to the last log strictly before it.
	// A predecessor must be strictly earlier in time with nothing of the
	// condition strictly between, so same-instant logs are never chained
	// to each other even though seq orders them.
	positions := make(map[string]int, len(sorted))
	previous := make(map[string]int, len(sorted))
	runStart := 0
	for index, logEntry := range sorted {
		if index > 0 && !logEntry.Timestamp.Equal(sorted[index-1].Timestamp) {
			runStart = index
		}
		positions[logEntry.ID] = index
		previous[logEntry.ID] = runStart - 1
	}

	return Chronology{
		ConditionID: conditionID,
		Logs:        sorted,
		positions:   positions,
		previous:    previous,
	}
}

// SortLogsAscending orders by timestamp, then Seq, keeping input order for
// anything still tied.
func SortLogsAscending(logs []models.SymptomLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].Timestamp.Before(logs[j].Timestamp)
		}
		return logs[i].Seq < logs[j].Seq
	})
}

// SortLogsDescending is the exact reverse of SortLogsAscending.
func SortLogsDescending(logs []models.SymptomLog) {
	SortLogsAscending(logs)
	for left, right := 0, len(logs)-1; left < right; left, right = left+1, right-1 {
		logs[left], logs[right] = logs[right], logs[left]
	}
}
