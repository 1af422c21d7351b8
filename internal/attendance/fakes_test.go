package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/models"
	"github.com/tarun33333/classsync/internal/store"
)

// In-memory store doubles. The attendance fake enforces the same
// (session, student) uniqueness the Mongo index does, so concurrency and
// idempotency behavior can be exercised without a database.

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[primitive.ObjectID]models.Session)}
}

func (f *fakeSessionStore) Insert(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeSessionStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (f *fakeSessionStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, id := range ids {
		if s, ok := f.sessions[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) FindActiveByTeacher(_ context.Context, teacher primitive.ObjectID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Teacher == teacher && s.IsActive {
			copied := s
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeSessionStore) FindActiveBySubjectSection(_ context.Context, subject, section string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Subject == subject && s.Section == section && s.IsActive {
			copied := s
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeSessionStore) ClaimActive(_ context.Context, teacher primitive.ObjectID, endTime time.Time) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.sessions {
		if s.Teacher == teacher && s.IsActive {
			s.IsActive = false
			s.EndTime = &endTime
			f.sessions[id] = s
			copied := s
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeSessionStore) Close(_ context.Context, id primitive.ObjectID, endTime time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return store.ErrNotFound
	}
	s.IsActive = false
	s.EndTime = &endTime
	f.sessions[id] = s
	return nil
}

type fakeAttendanceStore struct {
	mu       sync.Mutex
	records  []models.Attendance
	seen     map[[2]primitive.ObjectID]bool
	sessions *fakeSessionStore
}

func newFakeAttendanceStore(sessions *fakeSessionStore) *fakeAttendanceStore {
	return &fakeAttendanceStore{
		seen:     make(map[[2]primitive.ObjectID]bool),
		sessions: sessions,
	}
}

func (f *fakeAttendanceStore) Insert(_ context.Context, a *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]primitive.ObjectID{a.SessionID, a.StudentID}
	if f.seen[key] {
		return store.ErrDuplicate
	}
	f.seen[key] = true
	f.records = append(f.records, *a)
	return nil
}

func (f *fakeAttendanceStore) Find(_ context.Context, sessionID, studentID primitive.ObjectID) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.SessionID == sessionID && r.StudentID == studentID {
			copied := r
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAttendanceStore) ListBySession(_ context.Context, sessionID primitive.ObjectID) ([]models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Attendance
	for _, r := range f.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByStudent(_ context.Context, studentID primitive.ObjectID) ([]models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Attendance
	for _, r := range f.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeAttendanceStore) InsertIgnoreDuplicates(_ context.Context, records []models.Attendance) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inserted := 0
	for _, r := range records {
		key := [2]primitive.ObjectID{r.SessionID, r.StudentID}
		if f.seen[key] {
			continue
		}
		f.seen[key] = true
		f.records = append(f.records, r)
		inserted++
	}
	return inserted, nil
}

func (f *fakeAttendanceStore) SubjectStats(_ context.Context, studentID primitive.ObjectID) ([]store.SubjectStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, r := range f.records {
		if r.StudentID != studentID || r.Status != models.StatusPresent {
			continue
		}
		f.sessions.mu.Lock()
		s, ok := f.sessions.sessions[r.SessionID]
		f.sessions.mu.Unlock()
		if ok {
			counts[s.Subject]++
		}
	}
	var stats []store.SubjectStat
	for subject, n := range counts {
		stats = append(stats, store.SubjectStat{Subject: subject, PresentCount: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Subject < stats[j].Subject })
	return stats, nil
}

type fakeHistoryStore struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]models.ClassHistory
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{entries: make(map[primitive.ObjectID]models.ClassHistory)}
}

func (f *fakeHistoryStore) Insert(_ context.Context, h *models.ClassHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[h.ID]; ok {
		return store.ErrDuplicate
	}
	f.entries[h.ID] = *h
	return nil
}

func (f *fakeHistoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ClassHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := h
	return &copied, nil
}

func (f *fakeHistoryStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.ClassHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ClassHistory
	for _, id := range ids {
		if h, ok := f.entries[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHistoryStore) ListByTeacher(_ context.Context, teacher primitive.ObjectID, limit int64) ([]models.ClassHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ClassHistory
	for _, h := range f.entries {
		if h.Teacher == teacher {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.After(out[j].EndTime) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistoryStore) ListByTeacherBetween(_ context.Context, teacher primitive.ObjectID, start, end time.Time) ([]models.ClassHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ClassHistory
	for _, h := range f.entries {
		if h.Teacher != teacher {
			continue
		}
		if h.StartTime.Before(start) || h.StartTime.After(end) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

type fakeRoutineStore struct {
	routines []models.Routine
}

func (f *fakeRoutineStore) Find(_ context.Context, teacher primitive.ObjectID, subject, section, day string) (*models.Routine, error) {
	for _, r := range f.routines {
		if r.Teacher == teacher && r.Subject == subject && r.Section == section && r.Day == day {
			copied := r
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeRoutineStore) ListForTeacher(_ context.Context, teacher primitive.ObjectID, day string) ([]models.Routine, error) {
	var out []models.Routine
	for _, r := range f.routines {
		if r.Teacher == teacher && r.Day == day {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeRoutineStore) ListForSection(_ context.Context, section, day string) ([]models.Routine, error) {
	var out []models.Routine
	for _, r := range f.routines {
		if r.Section == section && r.Day == day {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (f *fakeUserStore) add(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) SetMacAddress(_ context.Context, id primitive.ObjectID, mac string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.MacAddress = mac
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) ListStudents(_ context.Context, department, section string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleStudent && u.Department == department && u.Section == section {
			out = append(out, u)
		}
	}
	return out, nil
}
