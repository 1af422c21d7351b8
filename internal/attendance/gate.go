package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarun33333/classsync/internal/models"
	"github.com/tarun33333/classsync/internal/store"
)

// parseClock converts a "HH:MM" wall-clock string into minutes since
// midnight. A missing leading zero ("9:00") is tolerated. Windows crossing
// midnight are not supported anywhere in the scheduler.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	return hour*60 + minute, nil
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// authorize decides whether the teacher may start a session for this
// subject and section right now. On success it returns the matched routine
// so the new session can be stamped with it. Window bounds are inclusive.
func (s *Service) authorize(ctx context.Context, teacher primitive.ObjectID, subject, section string, now time.Time) (*models.Routine, error) {
	day := now.Weekday().String()

	routine, err := s.routines.Find(ctx, teacher, subject, section, day)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w for %s on %s", ErrNoSchedule, subject, day)
	}
	if err != nil {
		return nil, err
	}

	start, err := parseClock(routine.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(routine.EndTime)
	if err != nil {
		return nil, err
	}

	if current := minutesOfDay(now); current < start || current > end {
		return nil, fmt.Errorf("%w: class runs %s to %s", ErrOutOfWindow, routine.StartTime, routine.EndTime)
	}

	return routine, nil
}
