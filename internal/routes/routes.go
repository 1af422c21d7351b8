package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tarun33333/classsync/internal/attendance"
	"github.com/tarun33333/classsync/internal/config"
	"github.com/tarun33333/classsync/internal/handlers"
	"github.com/tarun33333/classsync/internal/middleware"
	"github.com/tarun33333/classsync/internal/store"
	"github.com/tarun33333/classsync/internal/utils"
)

func SetupRouter(client *mongo.Client, cfg config.Config) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	sessions := store.NewMongoSessionStore(client, cfg.DatabaseName)
	ledger := store.NewMongoAttendanceStore(client, cfg.DatabaseName)
	history := store.NewMongoHistoryStore(client, cfg.DatabaseName)
	routines := store.NewMongoRoutineStore(client, cfg.DatabaseName)
	users := store.NewMongoUserStore(client, cfg.DatabaseName)

	engine := attendance.NewService(sessions, ledger, history, routines, users, cfg.AllowDebugBypass)
	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	secret := []byte(cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(users, secret)
	sessionHandler := handlers.NewSessionHandler(engine, users, mailer)
	attendanceHandler := handlers.NewAttendanceHandler(engine)
	routineHandler := handlers.NewRoutineHandler(engine)

	protect := middleware.Protect(secret)
	teacher := func(h http.HandlerFunc) http.Handler { return protect(middleware.TeacherOnly(h)) }
	student := func(h http.HandlerFunc) http.Handler { return protect(middleware.StudentOnly(h)) }

	router.HandleFunc("/api/auth/register", userHandler.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", userHandler.Login).Methods("POST")

	router.Handle("/api/routines/teacher", teacher(routineHandler.TeacherRoutines)).Methods("GET")

	router.Handle("/api/sessions/start", teacher(sessionHandler.StartSession)).Methods("POST")
	router.Handle("/api/sessions/end", teacher(sessionHandler.EndSession)).Methods("POST")
	router.Handle("/api/sessions/active", teacher(sessionHandler.GetActiveSession)).Methods("GET")
	router.Handle("/api/sessions/{id}/qr", teacher(sessionHandler.SessionQR)).Methods("GET")

	router.Handle("/api/attendance/verify-wifi", student(attendanceHandler.VerifyWifi)).Methods("POST")
	router.Handle("/api/attendance/mark", student(attendanceHandler.Mark)).Methods("POST")
	router.Handle("/api/attendance/dashboard", student(attendanceHandler.Dashboard)).Methods("GET")
	router.Handle("/api/attendance/student", student(attendanceHandler.StudentHistory)).Methods("GET")
	router.Handle("/api/attendance/stats", student(attendanceHandler.Stats)).Methods("GET")
	router.Handle("/api/attendance/reports", teacher(attendanceHandler.Reports)).Methods("GET")
	router.Handle("/api/attendance/reports/filter", teacher(attendanceHandler.FilteredReports)).Methods("GET")
	router.Handle("/api/attendance/session/{sessionId}", teacher(attendanceHandler.SessionRoster)).Methods("GET")

	return router
}
