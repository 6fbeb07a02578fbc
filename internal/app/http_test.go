package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fabrica/api/internal/auth"
	"fabrica/api/internal/calday"
	"fabrica/api/internal/lifecycle"
	"fabrica/api/internal/store"
)

func newTestHandler(t *testing.T, fake *fakeStore) http.Handler {
	t.Helper()
	service := newTestService(t, fake)
	// Tokens are checked against wall-clock expiry, so sessions issued in
	// requests must not use the frozen test clock.
	service.now = time.Now
	return NewHTTPServer(service, "*").Handler()
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.IssueToken([]byte("test-secret"), auth.Claims{
		Sub:  "usr_test",
		Name: "Test User",
		Role: role,
		JTI:  "jti_test",
		Exp:  time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func doRequest(handler http.Handler, method, path, role, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+tokenForRole[role])
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// tokenForRole is filled per test via seedTokens so doRequest stays terse.
var tokenForRole = map[string]string{}

func seedTokens(t *testing.T) {
	t.Helper()
	for _, role := range []string{"viewer", "operator", "planner", "admin"} {
		tokenForRole[role] = tokenFor(t, role)
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestHealthIsPublic(t *testing.T) {
	handler := newTestHandler(t, &fakeStore{})
	rec := doRequest(handler, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBlocksRequireSession(t *testing.T) {
	seedTokens(t)
	handler := newTestHandler(t, &fakeStore{})

	rec := doRequest(handler, http.MethodGet, "/api/blocks", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/blocks", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}
}

func TestBlockRoutesEnforceRoles(t *testing.T) {
	seedTokens(t)
	handler := newTestHandler(t, &fakeStore{})

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		body   string
		status int
	}{
		{"viewer lists blocks", http.MethodGet, "/api/blocks", "viewer", "", http.StatusOK},
		{"viewer cannot create", http.MethodPost, "/api/blocks", "viewer", `{"articleCode":"A-1","units":10}`, http.StatusForbidden},
		{"operator cannot create", http.MethodPost, "/api/blocks", "operator", `{"articleCode":"A-1","units":10}`, http.StatusForbidden},
		{"planner creates", http.MethodPost, "/api/blocks", "planner", `{"articleCode":"A-1","units":10}`, http.StatusCreated},
		{"operator cannot plan", http.MethodPut, "/api/blocks/blk_1/plan", "operator", `{"date":"2026-01-05","reactor":"R1","shift":"morning"}`, http.StatusForbidden},
		{"planner plans", http.MethodPut, "/api/blocks/blk_1/plan", "planner", `{"date":"2026-01-05","reactor":"R1","shift":"morning"}`, http.StatusOK},
		{"viewer cannot record execution", http.MethodPut, "/api/blocks/blk_1/execution", "viewer", `{"realKg":120}`, http.StatusForbidden},
		{"operator records execution", http.MethodPut, "/api/blocks/blk_1/execution", "operator", `{"realKg":120}`, http.StatusOK},
		{"operator cannot split", http.MethodPost, "/api/blocks/blk_1/split", "operator", "", http.StatusForbidden},
		{"planner cannot wipe all", http.MethodDelete, "/api/blocks", "planner", "", http.StatusForbidden},
		{"admin wipes all", http.MethodDelete, "/api/blocks", "admin", "", http.StatusOK},
		{"planner cannot list users", http.MethodGet, "/api/admin/users", "planner", "", http.StatusForbidden},
		{"admin lists users", http.MethodGet, "/api/admin/users", "admin", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(handler, tc.method, tc.path, tc.role, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if tc.status == http.StatusForbidden {
				payload := decodeResponse(t, rec)
				if payload["code"] != "FORBIDDEN" {
					t.Fatalf("expected FORBIDDEN code, got %v", payload["code"])
				}
			}
		})
	}
}

func TestAllocateCodeEndpoint(t *testing.T) {
	seedTokens(t)
	fake := &fakeStore{
		allocateCodeFn: func(_ context.Context, prefix string, yearDigits int) (store.AllocatedCode, error) {
			return store.AllocatedCode{Code: "Q250042", Prefix: prefix, YearDigits: yearDigits, Seq: 42}, nil
		},
	}
	handler := newTestHandler(t, fake)

	rec := doRequest(handler, http.MethodPost, "/api/codes", "viewer", `{"prefix":"Q"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer: expected 403, got %d", rec.Code)
	}

	rec = doRequest(handler, http.MethodPost, "/api/codes", "planner", `{"prefix":"Q"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("planner: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeResponse(t, rec)
	if payload["code"] != "Q250042" {
		t.Fatalf("expected Q250042, got %v", payload["code"])
	}
}

func TestPlanEndpointReportsCalendarWarning(t *testing.T) {
	seedTokens(t)
	handler := newTestHandler(t, &fakeStore{})

	// Saturday.
	rec := doRequest(handler, http.MethodPut, "/api/blocks/blk_1/plan", "planner",
		`{"date":"2026-01-03","reactor":"R1","shift":"morning"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeResponse(t, rec)
	if payload["calendarWarning"] != "weekend" {
		t.Fatalf("expected weekend warning, got %v", payload["calendarWarning"])
	}

	// Working day: no warning key at all.
	rec = doRequest(handler, http.MethodPut, "/api/blocks/blk_1/plan", "planner",
		`{"date":"2026-01-05","reactor":"R1","shift":"morning"}`)
	payload = decodeResponse(t, rec)
	if _, present := payload["calendarWarning"]; present {
		t.Fatalf("unexpected warning: %v", payload["calendarWarning"])
	}
}

func TestSplitEndpointReturnsParts(t *testing.T) {
	seedTokens(t)
	fake := &fakeStore{
		splitBlockFn: func(_ context.Context, _ string, limit int) ([]store.ProductionBlock, error) {
			return []store.ProductionBlock{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}, nil
		},
	}
	handler := newTestHandler(t, fake)

	rec := doRequest(handler, http.MethodPost, "/api/blocks/blk_1/split", "planner", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeResponse(t, rec)
	if payload["parts"] != float64(3) {
		t.Fatalf("expected 3 parts, got %v", payload["parts"])
	}
}

func TestConflictEndpoints(t *testing.T) {
	seedTokens(t)
	saturday, _ := calday.Parse("2026-01-03")
	fake := &fakeStore{
		listPlannedBlocksFn: func(context.Context) ([]store.ProductionBlock, error) {
			return []store.ProductionBlock{
				{ID: "blk_sat", Status: lifecycle.StatusPlanned, PlannedDate: &saturday},
			}, nil
		},
		unplanBlocksFn: func(_ context.Context, ids []string) (int, error) {
			return len(ids), nil
		},
	}
	handler := newTestHandler(t, fake)

	rec := doRequest(handler, http.MethodGet, "/api/conflicts", "viewer", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detect: expected 200, got %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	if payload["count"] != float64(1) {
		t.Fatalf("expected 1 conflict, got %v", payload["count"])
	}

	rec = doRequest(handler, http.MethodPost, "/api/conflicts/resolve", "viewer", `{"ids":["blk_sat"]}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer resolve: expected 403, got %d", rec.Code)
	}

	rec = doRequest(handler, http.MethodPost, "/api/conflicts/resolve", "planner", `{"ids":["blk_sat"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("planner resolve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload = decodeResponse(t, rec)
	if payload["resolved"] != float64(1) {
		t.Fatalf("expected 1 resolved, got %v", payload["resolved"])
	}
}

func TestValidationErrorsCarryTaxonomy(t *testing.T) {
	seedTokens(t)
	handler := newTestHandler(t, &fakeStore{})

	rec := doRequest(handler, http.MethodPost, "/api/blocks", "planner", `{"articleCode":"A-1","units":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	if payload["code"] != "VALIDATION" {
		t.Fatalf("expected VALIDATION code, got %v", payload["code"])
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	seedTokens(t)
	handler := newTestHandler(t, &fakeStore{})
	rec := doRequest(handler, http.MethodGet, "/api/nope", "viewer", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
