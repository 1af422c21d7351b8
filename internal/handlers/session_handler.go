package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/attendance"
	"github.com/tarun33333/classsync/internal/store"
	"github.com/tarun33333/classsync/internal/utils"
)

type SessionHandler struct {
	engine *attendance.Service
	users  store.UserStore
	mailer *utils.Mailer
}

func NewSessionHandler(engine *attendance.Service, users store.UserStore, mailer *utils.Mailer) *SessionHandler {
	return &SessionHandler{engine: engine, users: users, mailer: mailer}
}

// StartSession opens a session for the authenticated teacher.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Subject string `json:"subject"`
		Section string `json:"section"`
		BSSID   string `json:"bssid"`
		SSID    string `json:"ssid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Subject == "" || req.BSSID == "" {
		http.Error(w, "Subject and BSSID are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, err := h.engine.StartSession(ctx, teacherID, req.Subject, req.Section, req.BSSID, req.SSID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// EndSession closes the session, sweeps absentees and emails the teacher a
// summary of the final counts.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
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

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, markedAbsent, err := h.engine.EndSession(ctx, sessionID, teacherID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if h.mailer.Enabled() {
		go h.sendSummary(teacherID, session.Subject, session.Section, markedAbsent)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Session ended",
		"session":       session,
		"marked_absent": markedAbsent,
	})
}

func (h *SessionHandler) sendSummary(teacherID primitive.ObjectID, subject, section string, markedAbsent int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	teacher, err := h.users.FindByID(ctx, teacherID)
	if err != nil {
		log.Printf("session summary email: %v", err)
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s session for section %s has ended. %d students were marked absent.</p>",
		teacher.Name, subject, section, markedAbsent,
	)
	if err := h.mailer.Send(teacher.Email, "Class session closed", body); err != nil {
		log.Printf("session summary email: %v", err)
	}
}

// GetActiveSession returns the teacher's live session, or null when none.
func (h *SessionHandler) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, err := h.engine.GetActiveSession(ctx, teacherID)
	if err != nil {
		http.Error(w, "Failed to fetch active session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// SessionQR renders the session's QR token as a PNG for the classroom
// screen. Only the owning teacher may fetch it while the session is live.
func (h *SessionHandler) SessionQR(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, err := h.engine.GetActiveSession(ctx, teacherID)
	if err != nil {
		http.Error(w, "Failed to fetch active session", http.StatusInternalServerError)
		return
	}
	if session == nil || session.ID != sessionID {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(session.QRCode, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to render QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
