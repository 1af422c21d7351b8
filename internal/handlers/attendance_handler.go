package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/attendance"
)

type AttendanceHandler struct {
	engine *attendance.Service
}

func NewAttendanceHandler(engine *attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{engine: engine}
}

// VerifyWifi is step one of the presence check: the network gate.
func (h *AttendanceHandler) VerifyWifi(w http.ResponseWriter, r *http.Request) {
	studentID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		BSSID     string `json:"bssid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.engine.VerifyNetwork(ctx, sessionID, studentID, req.BSSID); err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "WiFi verified",
		"session_id": sessionID,
	})
}

// Mark is step two: OTP or QR token submission.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	studentID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Code      string `json:"code"`
		Method    string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	record, err := h.engine.VerifyCode(ctx, sessionID, studentID, req.Code, req.Method)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// Dashboard lists today's periods for the student with live statuses.
func (h *AttendanceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	studentID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.engine.StudentDashboard(ctx, studentID)
	if err != nil {
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// StudentHistory returns the student's attendance log, newest first.
func (h *AttendanceHandler) StudentHistory(w http.ResponseWriter, r *http.Request) {
	studentID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.engine.StudentHistory(ctx, studentID)
	if err != nil {
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Stats returns the student's present counts per subject.
func (h *AttendanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	studentID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.engine.StudentStats(ctx, studentID)
	if err != nil {
		http.Error(w, "Failed to fetch stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Reports returns the teacher's most recent archived sessions.
func (h *AttendanceHandler) Reports(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.ParseInt(v, 10, 64)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reports, err := h.engine.TeacherReports(ctx, teacherID, limit)
	if err != nil {
		http.Error(w, "Failed to fetch reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// FilteredReports returns archived sessions for one calendar day
// (?date=YYYY-MM-DD, interpreted in the server's local time).
func (h *AttendanceHandler) FilteredReports(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("date"), time.Local)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reports, err := h.engine.ReportsOnDate(ctx, teacherID, date)
	if err != nil {
		http.Error(w, "Failed to fetch reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// SessionRoster returns the live full-class view for a session.
func (h *AttendanceHandler) SessionRoster(w http.ResponseWriter, r *http.Request) {
	if _, ok := principalID(r); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(mux.Vars(r)["sessionId"])
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	roster, err := h.engine.SessionRoster(ctx, sessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}
