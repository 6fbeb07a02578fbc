package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"fabrica/api/internal/authpw"
	"fabrica/api/internal/rbac"
	"fabrica/api/internal/store"
)

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) forbid(w http.ResponseWriter) {
	s.writeServiceError(w, forbiddenError())
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		checks := map[string]any{
			"database": map[string]any{"status": "ok"},
		}
		if err := s.service.Ping(ctx); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			checks["database"] = map[string]any{"status": "error", "error": err.Error()}
		}
		writeJSON(w, statusCode, map[string]any{
			"ok":     status == "ready",
			"status": status,
			"checks": checks,
		})
		return
	}

	// Auth routes (no session required)
	if r.Method == http.MethodPost && r.URL.Path == "/api/auth/signup" {
		s.handleAuthSignUp(w, r)
		return
	}
	if r.Method == http.MethodPost && r.URL.Path == "/api/auth/signin" {
		s.handleAuthSignIn(w, r)
		return
	}
	if r.Method == http.MethodPost && r.URL.Path == "/api/session/refresh" {
		s.handleSessionRefresh(w, r)
		return
	}
	if r.Method == http.MethodPost && r.URL.Path == "/api/session/logout" {
		s.handleSessionLogout(w, r)
		return
	}
	if r.Method == http.MethodGet && r.URL.Path == "/api/session" {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false, "userName": nil})
			return
		}
		session, err := s.service.SessionFromToken(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false, "userName": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"userName":      session.UserName,
			"userId":        session.UserID,
			"role":          session.Role,
		})
		return
	}

	// Everything below requires a session.
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token", nil)
		return
	}
	session, err := s.service.SessionFromToken(r.Context(), token)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	role := rbac.Role(session.Role)

	parts := splitPath(r.URL.Path)
	if len(parts) < 2 || parts[0] != "api" {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown route", nil)
		return
	}

	switch {
	case parts[1] == "codes":
		s.routeCodes(w, r, role, parts[2:])
	case parts[1] == "blocks":
		s.routeBlocks(w, r, role, parts[2:])
	case parts[1] == "conflicts":
		s.routeConflicts(w, r, role, parts[2:])
	case parts[1] == "reactors" && len(parts) == 2:
		s.routeReactors(w, r, role)
	case parts[1] == "holidays" && len(parts) == 2:
		s.routeHolidays(w, r, role)
	case parts[1] == "maintenance-windows" && len(parts) == 2:
		s.routeMaintenanceWindows(w, r, role)
	case parts[1] == "admin":
		s.routeAdmin(w, r, role, parts[2:])
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown route", nil)
	}
}

// --- Codes ---

func (s *HTTPServer) routeCodes(w http.ResponseWriter, r *http.Request, role rbac.Role, rest []string) {
	if !rbac.Can(role, rbac.ActionPlan) {
		s.forbid(w)
		return
	}

	// POST /api/codes
	if r.Method == http.MethodPost && len(rest) == 0 {
		var body struct {
			Prefix string `json:"prefix"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		code, err := s.service.AllocateCode(r.Context(), body.Prefix)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"code": code})
		return
	}

	// POST /api/codes/{code}/revisions
	if r.Method == http.MethodPost && len(rest) == 2 && rest[1] == "revisions" {
		revision, err := s.service.NextRevision(r.Context(), rest[0])
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"code": rest[0], "revision": revision})
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown route", nil)
}

// --- Blocks ---

func (s *HTTPServer) routeBlocks(w http.ResponseWriter, r *http.Request, role rbac.Role, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		if !rbac.Can(role, rbac.ActionRead) {
			s.forbid(w)
			return
		}
		blocks, err := s.service.ListBlocks(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"blocks": blocksJSON(blocks)})

	case len(rest) == 0 && r.Method == http.MethodPost:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		var body CreateBlockInput
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		block, err := s.service.CreateBlock(r.Context(), body)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, blockJSON(block))

	case len(rest) == 0 && r.Method == http.MethodDelete:
		if !rbac.Can(role, rbac.ActionAdmin) {
			s.forbid(w)
			return
		}
		count, err := s.service.ClearAll(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": count})

	case len(rest) == 1 && rest[0] == "pending" && r.Method == http.MethodDelete:
		if !rbac.Can(role, rbac.ActionAdmin) {
			s.forbid(w)
			return
		}
		count, err := s.service.ClearPending(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": count})

	case len(rest) == 1 && rest[0] == "bulk-delete" && r.Method == http.MethodPost:
		if !rbac.Can(role, rbac.ActionAdmin) {
			s.forbid(w)
			return
		}
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		count, err := s.service.DeleteBlocks(r.Context(), body.IDs)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": count})

	case len(rest) == 1 && r.Method == http.MethodGet:
		if !rbac.Can(role, rbac.ActionRead) {
			s.forbid(w)
			return
		}
		block, err := s.service.GetBlock(r.Context(), rest[0])
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, blockJSON(block))

	case len(rest) == 1 && r.Method == http.MethodDelete:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		if err := s.service.DeleteBlock(r.Context(), rest[0]); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": 1})

	case len(rest) == 2 && rest[1] == "plan" && r.Method == http.MethodPut:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		var body PlanBlockInput
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		block, warning, err := s.service.PlanBlock(r.Context(), rest[0], body)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		payload := map[string]any{"block": blockJSON(block)}
		if warning != "" {
			payload["calendarWarning"] = warning
		}
		writeJSON(w, http.StatusOK, payload)

	case len(rest) == 2 && rest[1] == "execution" && r.Method == http.MethodPut:
		if !rbac.Can(role, rbac.ActionExecute) {
			s.forbid(w)
			return
		}
		var body RecordExecutionInput
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		block, err := s.service.RecordExecution(r.Context(), rest[0], body)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, blockJSON(block))

	case len(rest) == 2 && rest[1] == "split" && r.Method == http.MethodPost:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		children, err := s.service.SplitBlock(r.Context(), rest[0])
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"parts":     len(children),
			"newBlocks": blocksJSON(children),
		})

	case len(rest) == 2 && rest[1] == "cancel" && r.Method == http.MethodPost:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		block, err := s.service.CancelBlock(r.Context(), rest[0])
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, blockJSON(block))

	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown route", nil)
	}
}

// --- Conflicts ---

func (s *HTTPServer) routeConflicts(w http.ResponseWriter, r *http.Request, role rbac.Role, rest []string) {
	if len(rest) == 0 && r.Method == http.MethodGet {
		if !rbac.Can(role, rbac.ActionRead) {
			s.forbid(w)
			return
		}
		conflicts, err := s.service.DetectConflicts(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(conflicts), "conflicts": conflicts})
		return
	}

	if len(rest) == 1 && rest[0] == "resolve" && r.Method == http.MethodPost {
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		resolved, err := s.service.ResolveConflicts(r.Context(), body.IDs)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"resolved": resolved})
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown route", nil)
}

// --- Reactors / holidays / maintenance windows ---

func (s *HTTPServer) routeReactors(w http.ResponseWriter, r *http.Request, role rbac.Role) {
	switch r.Method {
	case http.MethodGet:
		if !rbac.Can(role, rbac.ActionRead) {
			s.forbid(w)
			return
		}
		reactors, err := s.service.ListReactors(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(reactors))
		for _, reactor := range reactors {
			items = append(items, map[string]any{
				"id":            reactor.ID,
				"name":          reactor.Name,
				"plant":         reactor.Plant,
				"capacityKg":    reactor.CapacityKg,
				"dailyTargetKg": reactor.DailyTargetKg,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"reactors": items})
	case http.MethodPut:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		var body struct {
			Reactors []ReactorInput `json:"reactors"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.ReplaceReactors(r.Context(), body.Reactors); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": len(body.Reactors)})
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	}
}

func (s *HTTPServer) routeHolidays(w http.ResponseWriter, r *http.Request, role rbac.Role) {
	switch r.Method {
	case http.MethodGet:
		if !rbac.Can(role, rbac.ActionRead) {
			s.forbid(w)
			return
		}
		holidays, err := s.service.ListHolidays(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(holidays))
		for _, holiday := range holidays {
			items = append(items, map[string]any{"day": holiday.Day.String(), "name": holiday.Name})
		}
		writeJSON(w, http.StatusOK, map[string]any{"holidays": items})
	case http.MethodPut:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		var body struct {
			Holidays []HolidayInput `json:"holidays"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.ReplaceHolidays(r.Context(), body.Holidays); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": len(body.Holidays)})
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	}
}

func (s *HTTPServer) routeMaintenanceWindows(w http.ResponseWriter, r *http.Request, role rbac.Role) {
	switch r.Method {
	case http.MethodGet:
		if !rbac.Can(role, rbac.ActionRead) {
			s.forbid(w)
			return
		}
		windows, err := s.service.ListMaintenanceWindows(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(windows))
		for _, window := range windows {
			items = append(items, map[string]any{
				"id":          window.ID,
				"reactorName": window.ReactorName,
				"startDate":   window.StartDate.String(),
				"endDate":     window.EndDate.String(),
				"reason":      window.Reason,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"maintenanceWindows": items})
	case http.MethodPut:
		if !rbac.Can(role, rbac.ActionPlan) {
			s.forbid(w)
			return
		}
		var body struct {
			MaintenanceWindows []MaintenanceWindowInput `json:"maintenanceWindows"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.ReplaceMaintenanceWindows(r.Context(), body.MaintenanceWindows); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": len(body.MaintenanceWindows)})
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	}
}

// --- Admin ---

func (s *HTTPServer) routeAdmin(w http.ResponseWriter, r *http.Request, role rbac.Role, rest []string) {
	if !rbac.Can(role, rbac.ActionAdmin) {
		s.forbid(w)
		return
	}

	if len(rest) == 1 && rest[0] == "users" && r.Method == http.MethodGet {
		users, err := s.service.ListUsers(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(users))
		for _, user := range users {
			items = append(items, map[string]any{
				"id":          user.ID,
				"displayName": user.DisplayName,
				"email":       user.Email,
				"role":        user.Role,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": items})
		return
	}

	if len(rest) == 3 && rest[0] == "users" && rest[2] == "role" && r.Method == http.MethodPut {
		var body struct {
			Role string `json:"role"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.UpdateUserRole(r.Context(), rest[1], body.Role); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": rest[1], "role": body.Role})
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown route", nil)
}

// --- Auth handlers ---

func (s *HTTPServer) handleAuthSignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	session, err := s.service.SignUp(r.Context(), authpw.SignUpRequest{
		Email:       body.Email,
		Password:    body.Password,
		DisplayName: body.DisplayName,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeSession(w, http.StatusCreated, session)
}

func (s *HTTPServer) handleAuthSignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	session, err := s.service.SignIn(r.Context(), authpw.SignInRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

func (s *HTTPServer) handleSessionRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	session, err := s.service.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

func (s *HTTPServer) handleSessionLogout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	if err := s.service.Logout(r.Context(), body.RefreshToken); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"loggedOut": true})
}

func writeSession(w http.ResponseWriter, status int, session Session) {
	writeJSON(w, status, map[string]any{
		"accessToken":  session.Token,
		"refreshToken": session.RefreshToken,
		"userId":       session.UserID,
		"userName":     session.UserName,
		"role":         session.Role,
		"expiresAt":    session.ExpiresAt.Unix(),
	})
}

// --- Serialization ---

func blockJSON(block store.ProductionBlock) map[string]any {
	payload := map[string]any{
		"id":           block.ID,
		"articleCode":  block.ArticleCode,
		"articleDesc":  block.ArticleDesc,
		"clientName":   block.ClientName,
		"orderNumber":  block.OrderNumber,
		"orderedUnits": block.OrderedUnits,
		"servedUnits":  block.ServedUnits,
		"pendingUnits": block.PendingUnits,
		"units":        block.Units,
		"status":       block.Status,
		"batchLabel":   block.BatchLabel,
	}
	if block.Deadline != nil {
		payload["deadline"] = block.Deadline.String()
	}
	if block.OrderDate != nil {
		payload["orderDate"] = block.OrderDate.String()
	}
	if block.PlannedDate != nil {
		payload["plannedDate"] = block.PlannedDate.String()
	}
	if block.PlannedReactor != nil {
		payload["plannedReactor"] = *block.PlannedReactor
	}
	if block.PlannedShift != nil {
		payload["plannedShift"] = *block.PlannedShift
	}
	if block.RealKg != nil {
		payload["realKg"] = *block.RealKg
	}
	if block.RealDuration != nil {
		payload["realDuration"] = *block.RealDuration
	}
	if block.OperatorNotes != nil {
		payload["operatorNotes"] = *block.OperatorNotes
	}
	if block.ParentID != nil {
		payload["parentId"] = *block.ParentID
	}
	if block.ErpID != nil {
		payload["erpId"] = *block.ErpID
	}
	return payload
}

func blocksJSON(blocks []store.ProductionBlock) []map[string]any {
	items := make([]map[string]any, 0, len(blocks))
	for _, block := range blocks {
		items = append(items, blockJSON(block))
	}
	return items
}

// --- Middleware and helpers ---

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	status, code, message, details := mapError(err)
	writeError(w, status, code, message, details)
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	return http.StatusInternalServerError, "INTERNAL", "Internal error", nil
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
