package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

func newRepositoriesForTest(t *testing.T) *Repositories {
	t.Helper()
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "bodysignal-repo.db"))
	return NewRepositories(database)
}

func conditionFixture(id string, label string) models.Condition {
	return models.Condition{
		ID:        id,
		Label:     label,
		Region:    models.RegionHead,
		OnsetDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	}
}

func logFixture(id string, conditionID string, timestamp time.Time, intensity int) models.SymptomLog {
	return models.SymptomLog{
		ID:          id,
		ConditionID: conditionID,
		Timestamp:   timestamp,
		Intensity:   intensity,
	}
}

func TestConditionRepositoryKeepsInsertionOrder(t *testing.T) {
	repos := newRepositoriesForTest(t)

	for _, condition := range []models.Condition{conditionFixture("z", "Zeta"), conditionFixture("a", "Alpha"), conditionFixture("m", "Mu")} {
		condition := condition
		if err := repos.Conditions.Create(&condition); err != nil {
			t.Fatalf("create condition %s: %v", condition.ID, err)
		}
	}

	conditions, err := repos.Conditions.List()
	if err != nil {
		t.Fatalf("list conditions: %v", err)
	}
	if len(conditions) != 3 || conditions[0].ID != "z" || conditions[1].ID != "a" || conditions[2].ID != "m" {
		t.Fatalf("unexpected order: %#v", conditions)
	}
	if conditions[2].Seq != 3 {
		t.Fatalf("expected seq 3 for third condition, got %d", conditions[2].Seq)
	}
}

func TestConditionRepositoryFindAndSave(t *testing.T) {
	repos := newRepositoriesForTest(t)

	condition := conditionFixture("c", "Migraine")
	if err := repos.Conditions.Create(&condition); err != nil {
		t.Fatalf("create condition: %v", err)
	}

	if _, found, err := repos.Conditions.FindByID("missing"); err != nil || found {
		t.Fatalf("FindByID(missing) = found %v err %v", found, err)
	}

	condition.Label = "Cluster headache"
	condition.IsArchived = true
	if err := repos.Conditions.Save(&condition); err != nil {
		t.Fatalf("save condition: %v", err)
	}

	loaded, found, err := repos.Conditions.FindByID("c")
	if err != nil || !found {
		t.Fatalf("FindByID(c) = found %v err %v", found, err)
	}
	if loaded.Label != "Cluster headache" || !loaded.IsArchived || loaded.Region != models.RegionHead {
		t.Fatalf("unexpected saved condition: %#v", loaded)
	}
}

func TestSymptomLogRepositoryCreateWithCondition(t *testing.T) {
	repos := newRepositoriesForTest(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	condition := conditionFixture("c", "Migraine")
	first := logFixture("l1", "", base, 4)
	if err := repos.Logs.CreateWithCondition(&condition, &first); err != nil {
		t.Fatalf("create with condition: %v", err)
	}
	second := logFixture("l2", "c", base.Add(-time.Hour), 6)
	if err := repos.Logs.Create(&second); err != nil {
		t.Fatalf("create log: %v", err)
	}

	logs, err := repos.Logs.List()
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 2 || logs[0].ID != "l1" || logs[1].ID != "l2" {
		t.Fatalf("expected insertion order, got %#v", logs)
	}
	if logs[0].ConditionID != "c" || logs[0].Seq != 1 || logs[1].Seq != 2 {
		t.Fatalf("unexpected stored logs: %#v", logs)
	}
	if !logs[1].Timestamp.Equal(base.Add(-time.Hour)) {
		t.Fatalf("timestamp round trip = %s", logs[1].Timestamp)
	}
}

func TestSymptomLogRepositoryCreateWithConditionRollsBack(t *testing.T) {
	repos := newRepositoriesForTest(t)

	condition := conditionFixture("c", "Migraine")
	invalid := logFixture("l1", "", time.Now().UTC(), 42)
	if err := repos.Logs.CreateWithCondition(&condition, &invalid); err == nil {
		t.Fatal("expected intensity CHECK constraint to reject the log")
	}

	conditions, err := repos.Conditions.List()
	if err != nil {
		t.Fatalf("list conditions: %v", err)
	}
	if len(conditions) != 0 {
		t.Fatalf("expected condition insert to roll back, got %d conditions", len(conditions))
	}
}

func TestStoreRepositoryReplaceAndDeleteAll(t *testing.T) {
	repos := newRepositoriesForTest(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	old := conditionFixture("old", "Old")
	if err := repos.Conditions.Create(&old); err != nil {
		t.Fatalf("create condition: %v", err)
	}

	err := repos.Store.ReplaceAll(
		[]models.Condition{conditionFixture("b", "Beta"), conditionFixture("a", "Alpha")},
		[]models.SymptomLog{
			logFixture("l2", "a", base.Add(time.Hour), 3),
			logFixture("l1", "b", base, 5),
			logFixture("orphan", "gone", base, 2),
		},
	)
	if err != nil {
		t.Fatalf("replace all: %v", err)
	}

	conditions, _ := repos.Conditions.List()
	if len(conditions) != 2 || conditions[0].ID != "b" || conditions[1].ID != "a" {
		t.Fatalf("unexpected conditions after replace: %#v", conditions)
	}
	logs, _ := repos.Logs.List()
	if len(logs) != 3 || logs[0].ID != "l2" || logs[2].ID != "orphan" {
		t.Fatalf("unexpected logs after replace: %#v", logs)
	}

	next := logFixture("l3", "a", base, 1)
	if err := repos.Logs.Create(&next); err != nil {
		t.Fatalf("create after replace: %v", err)
	}
	if next.Seq != 4 {
		t.Fatalf("expected seq to continue at 4, got %d", next.Seq)
	}

	if err := repos.Store.DeleteAll(); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	conditions, _ = repos.Conditions.List()
	logs, _ = repos.Logs.List()
	if len(conditions) != 0 || len(logs) != 0 {
		t.Fatalf("expected empty store, got %d conditions %d logs", len(conditions), len(logs))
	}
}
