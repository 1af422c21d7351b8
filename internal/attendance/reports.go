package attendance

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/models"
	"github.com/tarun33333/classsync/internal/store"
)

// Report is one archived session summary for teacher-facing listings. The
// counts come straight off the archive entry; nothing is recomputed.
type Report struct {
	SessionID    primitive.ObjectID `json:"session_id"`
	Subject      string             `json:"subject"`
	Section      string             `json:"section,omitempty"`
	Date         time.Time          `json:"date"`
	PresentCount int                `json:"present_count"`
	AbsentCount  int                `json:"absent_count"`
}

// DashboardItem is one of today's periods on the student dashboard.
// Status is "upcoming", "ongoing" or "present".
type DashboardItem struct {
	Subject   string              `json:"subject"`
	Day       string              `json:"day"`
	StartTime string              `json:"start_time"`
	EndTime   string              `json:"end_time"`
	Status    string              `json:"status"`
	SessionID *primitive.ObjectID `json:"session_id,omitempty"`
}

// SessionSummary is the descriptive slice of a session attached to a
// student's history rows.
type SessionSummary struct {
	Subject   string    `json:"subject"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// HistoryItem is one attendance record joined with its session summary.
type HistoryItem struct {
	ID        primitive.ObjectID      `json:"id"`
	Status    models.AttendanceStatus `json:"status"`
	Method    models.AttendanceMethod `json:"method"`
	CreatedAt time.Time               `json:"created_at"`
	Session   SessionSummary          `json:"session"`
}

// RosterStudent is the student slice of a roster entry.
type RosterStudent struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	RollNumber string             `json:"roll_number,omitempty"`
}

// RosterEntry is one expected student left-joined with their attendance
// record. Unmatched students default to absent with no method or time.
type RosterEntry struct {
	Student   RosterStudent            `json:"student"`
	Status    models.AttendanceStatus  `json:"status"`
	Method    *models.AttendanceMethod `json:"method"`
	CreatedAt *time.Time               `json:"created_at"`
}

// TeacherReports returns the teacher's most recent archived sessions.
func (s *Service) TeacherReports(ctx context.Context, teacherID primitive.ObjectID, limit int64) ([]Report, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.history.ListByTeacher(ctx, teacherID, limit)
	if err != nil {
		return nil, err
	}
	return reportsFromHistory(entries), nil
}

// ReportsOnDate returns archived sessions whose start time falls on the
// given calendar day, in the caller's location.
func (s *Service) ReportsOnDate(ctx context.Context, teacherID primitive.ObjectID, date time.Time) ([]Report, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(999*time.Millisecond), date.Location())

	entries, err := s.history.ListByTeacherBetween(ctx, teacherID, start, end)
	if err != nil {
		return nil, err
	}
	return reportsFromHistory(entries), nil
}

func reportsFromHistory(entries []models.ClassHistory) []Report {
	reports := make([]Report, 0, len(entries))
	for _, h := range entries {
		reports = append(reports, Report{
			SessionID:    h.ID,
			Subject:      h.Subject,
			Section:      h.Section,
			Date:         h.StartTime,
			PresentCount: h.PresentCount,
			AbsentCount:  h.AbsentCount,
		})
	}
	return reports
}

// TeacherRoutines returns the teacher's schedule slots for today.
func (s *Service) TeacherRoutines(ctx context.Context, teacherID primitive.ObjectID) ([]models.Routine, error) {
	day := s.now().Weekday().String()
	return s.routines.ListForTeacher(ctx, teacherID, day)
}

// StudentDashboard lists today's periods for the student's section with a
// live status for each: ongoing when a matching session is active, present
// once the student's record exists.
func (s *Service) StudentDashboard(ctx context.Context, studentID primitive.ObjectID) ([]DashboardItem, error) {
	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	day := s.now().Weekday().String()
	routines, err := s.routines.ListForSection(ctx, student.Section, day)
	if err != nil {
		return nil, err
	}

	items := make([]DashboardItem, 0, len(routines))
	for _, routine := range routines {
		teacher, err := s.users.FindByID(ctx, routine.Teacher)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if teacher.Department != student.Department {
			continue
		}

		item := DashboardItem{
			Subject:   routine.Subject,
			Day:       routine.Day,
			StartTime: routine.StartTime,
			EndTime:   routine.EndTime,
			Status:    "upcoming",
		}

		session, err := s.sessions.FindActiveBySubjectSection(ctx, routine.Subject, routine.Section)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if session != nil {
			id := session.ID
			item.SessionID = &id
			item.Status = "ongoing"

			_, err := s.ledger.Find(ctx, session.ID, studentID)
			if err == nil {
				item.Status = "present"
			} else if !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
		}

		items = append(items, item)
	}
	return items, nil
}

// StudentHistory returns the student's records newest first, each joined to
// its session from either the live store or the archive. Records whose
// session is in neither get a placeholder so orphaned rows still render.
func (s *Service) StudentHistory(ctx context.Context, studentID primitive.ObjectID) ([]HistoryItem, error) {
	records, err := s.ledger.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.SessionID)
	}

	summaries := make(map[primitive.ObjectID]SessionSummary, len(ids))
	if len(ids) > 0 {
		active, err := s.sessions.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, sess := range active {
			end := sess.StartTime
			if sess.EndTime != nil {
				end = *sess.EndTime
			}
			summaries[sess.ID] = SessionSummary{Subject: sess.Subject, StartTime: sess.StartTime, EndTime: end}
		}

		archived, err := s.history.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, h := range archived {
			summaries[h.ID] = SessionSummary{Subject: h.Subject, StartTime: h.StartTime, EndTime: h.EndTime}
		}
	}

	items := make([]HistoryItem, 0, len(records))
	for _, r := range records {
		summary, ok := summaries[r.SessionID]
		if !ok {
			summary = SessionSummary{Subject: "Unknown Session", StartTime: r.CreatedAt, EndTime: r.CreatedAt}
		}
		items = append(items, HistoryItem{
			ID:        r.ID,
			Status:    r.Status,
			Method:    r.Method,
			CreatedAt: r.CreatedAt,
			Session:   summary,
		})
	}
	return items, nil
}

// StudentStats returns the student's present counts per subject.
func (s *Service) StudentStats(ctx context.Context, studentID primitive.ObjectID) ([]store.SubjectStat, error) {
	return s.ledger.SubjectStats(ctx, studentID)
}

// SessionRoster is the live view of a session: every expected student with
// their current outcome. Distinct from the frozen archive counts.
func (s *Service) SessionRoster(ctx context.Context, sessionID primitive.ObjectID) ([]RosterEntry, error) {
	var section, department string

	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		entry, err := s.history.FindByID(ctx, sessionID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		section, department = entry.Section, entry.Department
	} else if err != nil {
		return nil, err
	} else {
		section, department = session.Section, session.Department
	}

	roster, err := s.users.ListStudents(ctx, department, section)
	if err != nil {
		return nil, err
	}
	records, err := s.ledger.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[primitive.ObjectID]models.Attendance, len(records))
	for _, r := range records {
		byStudent[r.StudentID] = r
	}

	entries := make([]RosterEntry, 0, len(roster))
	for _, student := range roster {
		entry := RosterEntry{
			Student: RosterStudent{ID: student.ID, Name: student.Name, RollNumber: student.RollNumber},
			Status:  models.StatusAbsent,
		}
		if r, ok := byStudent[student.ID]; ok {
			entry.Status = r.Status
			method := r.Method
			createdAt := r.CreatedAt
			entry.Method = &method
			entry.CreatedAt = &createdAt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
