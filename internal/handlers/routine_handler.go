package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/tarun33333/classsync/internal/attendance"
)

type RoutineHandler struct {
	engine *attendance.Service
}

func NewRoutineHandler(engine *attendance.Service) *RoutineHandler {
	return &RoutineHandler{engine: engine}
}

// TeacherRoutines returns the teacher's schedule slots for today.
func (h *RoutineHandler) TeacherRoutines(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := principalID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	routines, err := h.engine.TeacherRoutines(ctx, teacherID)
	if err != nil {
		http.Error(w, "Failed to fetch routines", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, routines)
}
