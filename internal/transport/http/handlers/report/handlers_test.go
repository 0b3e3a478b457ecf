package reporthandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"timecard/internal/auth"
	"timecard/internal/domain/report"
	"timecard/internal/domain/schedule"
	"timecard/internal/domain/worklog"
	"timecard/internal/transport/http/middleware"
)

type fakeConditions struct {
	conditions []schedule.Condition
}

func (f fakeConditions) FindByWindow(ctx context.Context, userID string, from, to time.Time) ([]schedule.Condition, error) {
	return f.conditions, nil
}

type fakeLog struct {
	segments []worklog.WorkSegment
	absences []worklog.AbsenceEntry
}

func (f fakeLog) SegmentsByWindow(ctx context.Context, userID string, from, to time.Time) ([]worklog.WorkSegment, error) {
	return f.segments, nil
}

func (f fakeLog) AbsencesByWindow(ctx context.Context, userID string, from, to time.Time) ([]worklog.AbsenceEntry, error) {
	return f.absences, nil
}

const testSecret = "test-secret"

func newRouter(t *testing.T, builder *report.Builder) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	NewHandler(builder).RegisterRoutes(router)
	return router
}

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Email: "a@b.test", Role: "USER"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestReportCSVEndpoint(t *testing.T) {
	end := schedule.ClockTime{Hour: 16}
	builder := report.NewBuilder(
		fakeConditions{conditions: []schedule.Condition{{
			ID:       "c1",
			Thursday: schedule.ClockTime{Hour: 6},
			From:     time.Date(2019, 5, 13, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC),
		}}},
		fakeLog{segments: []worklog.WorkSegment{{
			Day:   time.Date(2019, 7, 25, 0, 0, 0, 0, time.UTC),
			Start: schedule.ClockTime{Hour: 12},
			End:   &end,
		}}},
	)

	rec := httptest.NewRecorder()
	newRouter(t, builder).ServeHTTP(rec, authedRequest(t, "/report?from=2019-07-22&to=2019-07-28"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("expected text/csv, got %q", got)
	}
	want := "Day;Start 1;End 1;Time Goal;\n2019-07-25;12:00;16:00;06:00;\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected body:\n%q\nwant:\n%q", rec.Body.String(), want)
	}
}

func TestReportRequiresAuth(t *testing.T) {
	builder := report.NewBuilder(fakeConditions{}, fakeLog{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report?from=2019-07-22&to=2019-07-28", nil)
	newRouter(t, builder).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestReportRejectsBadWindow(t *testing.T) {
	builder := report.NewBuilder(fakeConditions{}, fakeLog{})

	rec := httptest.NewRecorder()
	newRouter(t, builder).ServeHTTP(rec, authedRequest(t, "/report?from=2019-07-28&to=2019-07-22"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportScheduleGapConflict(t *testing.T) {
	builder := report.NewBuilder(
		fakeConditions{},
		fakeLog{segments: []worklog.WorkSegment{{
			Day:   time.Date(2019, 7, 25, 0, 0, 0, 0, time.UTC),
			Start: schedule.ClockTime{Hour: 9},
		}}},
	)

	rec := httptest.NewRecorder()
	newRouter(t, builder).ServeHTTP(rec, authedRequest(t, "/report?from=2019-07-22&to=2019-07-28"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "schedule_gap") {
		t.Fatalf("expected schedule_gap error code, got %s", rec.Body.String())
	}
}

func TestReportPDFEndpoint(t *testing.T) {
	builder := report.NewBuilder(
		fakeConditions{conditions: []schedule.Condition{{
			ID:   "c1",
			From: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC),
		}}},
		fakeLog{},
	)

	rec := httptest.NewRecorder()
	newRouter(t, builder).ServeHTTP(rec, authedRequest(t, "/report/pdf?from=2019-07-22&to=2019-07-28"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatalf("expected PDF payload")
	}
}
