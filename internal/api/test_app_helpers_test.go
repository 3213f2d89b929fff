package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/db"
	"github.com/terraincognita07/bodysignal/internal/i18n"
	"github.com/terraincognita07/bodysignal/internal/metrics"
	"github.com/terraincognita07/bodysignal/internal/models"
	"github.com/terraincognita07/bodysignal/internal/services"
)

var testNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "bodysignal.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := db.CloseSQLite(database); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})

	i18nManager, err := i18n.NewManager(i18n.LangEN, i18n.EmbeddedLocales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, i18nManager, Options{
		Location:   time.UTC,
		WeekStart:  time.Sunday,
		Thresholds: services.DefaultThresholds(),
		Now:        func() time.Time { return testNow },
		Logger:     logger,
		Metrics:    metrics.New(),
		AccessLog:  io.Discard,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return NewApp(handler), handler
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		serialized, err := sonic.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		body = bytes.NewReader(serialized)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func doRawRequest(t *testing.T, app *fiber.App, method string, path string, body string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()
	if response.StatusCode != status {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, string(raw))
	}
}

func decodeBody[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", string(raw), err)
	}
	return payload
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeBody[map[string]string](t, response)["error"]
}

func createConditionForTest(t *testing.T, app *fiber.App, label string, region string) models.Condition {
	t.Helper()
	response := doRequest(t, app, http.MethodPost, "/api/conditions", conditionPayload{Label: label, Region: region})
	expectStatus(t, response, http.StatusCreated)
	return decodeBody[models.Condition](t, response)
}

func createLogForTest(t *testing.T, app *fiber.App, conditionID string, date string, intensity int) models.SymptomLog {
	t.Helper()
	response := doRequest(t, app, http.MethodPost, "/api/logs", logPayload{
		ConditionID: conditionID,
		Date:        date,
		Intensity:   intensity,
	})
	expectStatus(t, response, http.StatusCreated)
	return decodeBody[createdLogResponse](t, response).Log
}
