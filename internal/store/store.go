package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/models"
)

var (
	// ErrNotFound means the document does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate means a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("store: duplicate")
)

// SubjectStat is a per-subject present counter for one student.
type SubjectStat struct {
	Subject      string `json:"subject" bson:"_id"`
	PresentCount int    `json:"present_count" bson:"present_count"`
}

// SessionStore owns live Session documents.
type SessionStore interface {
	Insert(ctx context.Context, s *models.Session) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Session, error)
	FindActiveByTeacher(ctx context.Context, teacher primitive.ObjectID) (*models.Session, error)
	FindActiveBySubjectSection(ctx context.Context, subject, section string) (*models.Session, error)

	// ClaimActive atomically flips one active session for the teacher to
	// inactive, stamping endTime, and returns the claimed session.
	// Returns ErrNotFound when the teacher has no active session left.
	// This conditional update is the per-teacher serialization point of
	// the close-then-open path.
	ClaimActive(ctx context.Context, teacher primitive.ObjectID, endTime time.Time) (*models.Session, error)

	// Close flips the session inactive and stamps endTime.
	Close(ctx context.Context, id primitive.ObjectID, endTime time.Time) error
}

// AttendanceStore owns the append-only attendance ledger.
type AttendanceStore interface {
	// Insert writes one record. Returns ErrDuplicate when a record for
	// (session, student) already exists; the unique index enforces this,
	// not a check-then-insert.
	Insert(ctx context.Context, a *models.Attendance) error
	Find(ctx context.Context, sessionID, studentID primitive.ObjectID) (*models.Attendance, error)
	ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Attendance, error)
	// ListByStudent returns the student's records newest first.
	ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Attendance, error)
	// InsertIgnoreDuplicates bulk-writes records, silently skipping any
	// that collide with the unique index, and reports how many landed.
	InsertIgnoreDuplicates(ctx context.Context, records []models.Attendance) (int, error)
	SubjectStats(ctx context.Context, studentID primitive.ObjectID) ([]SubjectStat, error)
}

// HistoryStore owns the immutable archive of closed sessions.
type HistoryStore interface {
	// Insert archives a closed session. The entry's ID is the session ID,
	// so a retried close gets ErrDuplicate instead of a second entry.
	Insert(ctx context.Context, h *models.ClassHistory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ClassHistory, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.ClassHistory, error)
	ListByTeacher(ctx context.Context, teacher primitive.ObjectID, limit int64) ([]models.ClassHistory, error)
	ListByTeacherBetween(ctx context.Context, teacher primitive.ObjectID, start, end time.Time) ([]models.ClassHistory, error)
}

// RoutineStore reads the weekly schedule directory.
type RoutineStore interface {
	Find(ctx context.Context, teacher primitive.ObjectID, subject, section, day string) (*models.Routine, error)
	ListForTeacher(ctx context.Context, teacher primitive.ObjectID, day string) ([]models.Routine, error)
	// ListForSection returns the section's routines for a day, earliest first.
	ListForSection(ctx context.Context, section, day string) ([]models.Routine, error)
}

// UserStore reads the roster directory and owns user documents.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetMacAddress(ctx context.Context, id primitive.ObjectID, mac string) error
	ListStudents(ctx context.Context, department, section string) ([]models.User, error)
}
