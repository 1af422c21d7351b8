package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/attendance"
)

// principalID extracts the authenticated user's id placed into the request
// context by the auth middleware.
func principalID(r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeEngineError maps the engine's closed failure set onto HTTP statuses.
// Anything outside the set is an infrastructure failure and stays a 500 so
// clients can tell retryable failures from user-correctable ones.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendance.ErrNoSchedule),
		errors.Is(err, attendance.ErrOutOfWindow),
		errors.Is(err, attendance.ErrSessionInactive),
		errors.Is(err, attendance.ErrWifiMismatch),
		errors.Is(err, attendance.ErrInvalidMethod),
		errors.Is(err, attendance.ErrInvalidCode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, attendance.ErrAlreadyMarked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, attendance.ErrScopeMismatch),
		errors.Is(err, attendance.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, attendance.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
