package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/models"
	"github.com/tarun33333/classsync/internal/store"
)

// DebugBypassBSSID passes the network gate when debug bypass is enabled in
// configuration. It fully defeats the gate; testing only.
const DebugBypassBSSID = "DEBUG_BSSID"

// Service implements the session lifecycle and attendance verification
// engine over the stores. It holds no state of its own; every invariant
// lives in the store (unique indexes, conditional updates).
type Service struct {
	sessions store.SessionStore
	ledger   store.AttendanceStore
	history  store.HistoryStore
	routines store.RoutineStore
	users    store.UserStore

	allowDebugBypass bool
	now              func() time.Time
}

func NewService(sessions store.SessionStore, ledger store.AttendanceStore, history store.HistoryStore, routines store.RoutineStore, users store.UserStore, allowDebugBypass bool) *Service {
	return &Service{
		sessions:         sessions,
		ledger:           ledger,
		history:          history,
		routines:         routines,
		users:            users,
		allowDebugBypass: allowDebugBypass,
		now:              time.Now,
	}
}

// StartSession opens a new session for the teacher after the schedule gate
// approves. Any session the teacher still has open is closed first and gets
// its own absentee sweep and archive entry before the new one is created,
// so an abandoned session never loses its attendance picture.
func (s *Service) StartSession(ctx context.Context, teacherID primitive.ObjectID, subject, section, bssid, ssid string) (*models.Session, error) {
	teacher, err := s.users.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	routine, err := s.authorize(ctx, teacherID, subject, section, now)
	if err != nil {
		return nil, err
	}

	// Close-then-open: claim prior active sessions one at a time through a
	// conditional update keyed on the teacher id, finalizing each.
	for {
		claimed, err := s.sessions.ClaimActive(ctx, teacherID, now)
		if errors.Is(err, store.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, err := s.finalize(ctx, claimed); err != nil {
			return nil, err
		}
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	qrToken, err := generateQRToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:         primitive.NewObjectID(),
		Teacher:    teacherID,
		Subject:    subject,
		Section:    section,
		Department: teacher.Department,
		BSSID:      bssid,
		SSID:       ssid,
		OTP:        otp,
		QRCode:     qrToken,
		IsActive:   true,
		StartTime:  now,
		RoutineID:  routine.ID,
	}

	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetActiveSession returns the teacher's live session, or nil when none.
func (s *Service) GetActiveSession(ctx context.Context, teacherID primitive.ObjectID) (*models.Session, error) {
	session, err := s.sessions.FindActiveByTeacher(ctx, teacherID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// VerifyNetwork is the first step of the proof-of-presence protocol. It
// writes nothing; the AlreadyMarked pre-check only exists to fail fast
// before the student is shown the code step.
func (s *Service) VerifyNetwork(ctx context.Context, sessionID, studentID primitive.ObjectID, bssid string) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSessionInactive
	}
	if err != nil {
		return err
	}
	if !session.IsActive {
		return ErrSessionInactive
	}

	_, err = s.ledger.Find(ctx, sessionID, studentID)
	if err == nil {
		return ErrAlreadyMarked
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if session.BSSID != bssid {
		if s.allowDebugBypass && bssid == DebugBypassBSSID {
			return nil
		}
		return fmt.Errorf("%w: connect to the classroom WiFi", ErrWifiMismatch)
	}
	return nil
}

// VerifyCode is the second step: an OTP or QR token match that, on success,
// appends a present record to the ledger. The duplicate guard is the
// store's unique index, not a pre-check, so two racing submissions resolve
// to exactly one record.
func (s *Service) VerifyCode(ctx context.Context, sessionID, studentID primitive.ObjectID, code, method string) (*models.Attendance, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionInactive
	}
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, ErrSessionInactive
	}

	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	// A leaked code is useless to students from another class.
	if student.Department != session.Department {
		return nil, fmt.Errorf("%w: you belong to %s, this class is for %s", ErrScopeMismatch, student.Department, session.Department)
	}
	if session.Section != "" && student.Section != session.Section {
		return nil, fmt.Errorf("%w: you are in section %s, this class is for section %s", ErrScopeMismatch, student.Section, session.Section)
	}

	switch models.AttendanceMethod(method) {
	case models.MethodOTP:
		if session.OTP != code {
			return nil, fmt.Errorf("%w: invalid OTP", ErrInvalidCode)
		}
	case models.MethodQR:
		if session.QRCode != code {
			return nil, fmt.Errorf("%w: invalid QR code", ErrInvalidCode)
		}
	default:
		return nil, ErrInvalidMethod
	}

	record := &models.Attendance{
		ID:        primitive.NewObjectID(),
		SessionID: sessionID,
		StudentID: studentID,
		Status:    models.StatusPresent,
		Method:    models.AttendanceMethod(method),
		DeviceMAC: student.MacAddress,
		CreatedAt: s.now(),
	}
	if err := s.ledger.Insert(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}
	return record, nil
}

// EndSession closes the teacher's session, sweeps absentees and archives
// the outcome. Re-closing an archived session fails with ErrNotFound; a
// session left half-closed by a crash (inactive but not archived) is
// finalized on retry.
func (s *Service) EndSession(ctx context.Context, sessionID, teacherID primitive.ObjectID) (*models.Session, int, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	if session.Teacher != teacherID {
		return nil, 0, ErrForbidden
	}

	if !session.IsActive {
		_, err := s.history.FindByID(ctx, sessionID)
		if err == nil {
			return nil, 0, ErrNotFound
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, 0, err
		}
		// Closed but never archived: resume the interrupted close.
	} else {
		now := s.now()
		if err := s.sessions.Close(ctx, sessionID, now); err != nil {
			return nil, 0, err
		}
		session.IsActive = false
		session.EndTime = &now
	}

	markedAbsent, err := s.finalize(ctx, session)
	if err != nil {
		return nil, 0, err
	}
	return session, markedAbsent, nil
}

// finalize runs the absentee sweep for an already-closed session and
// archives it. Safe to re-run: the sweep's bulk insert skips duplicates and
// the archive write keys on the session id. Returns the number of newly
// inserted absent records.
func (s *Service) finalize(ctx context.Context, session *models.Session) (int, error) {
	roster, err := s.users.ListStudents(ctx, session.Department, session.Section)
	if err != nil {
		return 0, err
	}

	records, err := s.ledger.ListBySession(ctx, session.ID)
	if err != nil {
		return 0, err
	}

	marked := make(map[primitive.ObjectID]bool, len(records))
	presentCount := 0
	for _, r := range records {
		marked[r.StudentID] = true
		if r.Status == models.StatusPresent {
			presentCount++
		}
	}

	var absentees []models.Attendance
	now := s.now()
	for _, student := range roster {
		if marked[student.ID] {
			continue
		}
		absentees = append(absentees, models.Attendance{
			ID:        primitive.NewObjectID(),
			SessionID: session.ID,
			StudentID: student.ID,
			Status:    models.StatusAbsent,
			Method:    models.MethodManual,
			CreatedAt: now,
		})
	}

	inserted := 0
	if len(absentees) > 0 {
		inserted, err = s.ledger.InsertIgnoreDuplicates(ctx, absentees)
		if err != nil {
			return 0, err
		}
	}

	endTime := now
	if session.EndTime != nil {
		endTime = *session.EndTime
	}
	entry := &models.ClassHistory{
		ID:           session.ID,
		Teacher:      session.Teacher,
		Subject:      session.Subject,
		Section:      session.Section,
		Department:   session.Department,
		StartTime:    session.StartTime,
		EndTime:      endTime,
		PresentCount: presentCount,
		AbsentCount:  len(roster) - presentCount,
	}
	if err := s.history.Insert(ctx, entry); err != nil && !errors.Is(err, store.ErrDuplicate) {
		return 0, err
	}
	return inserted, nil
}
