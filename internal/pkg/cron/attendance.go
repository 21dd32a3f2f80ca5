package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
)

// AttendanceJobs marks missing records and refreshes the summary cache.
// Each job runs at most once per local calendar day.
type AttendanceJobs struct {
	attendanceSvc  attendance.AttendanceService
	location       *time.Location
	absentMarkHour int
	now            func() time.Time

	mu          sync.Mutex
	lastMarked  string
	lastRebuilt string
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, location *time.Location, absentMarkHour int) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		attendanceSvc:  attendanceSvc,
		location:       location,
		absentMarkHour: absentMarkHour,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absent_employees", interval, j.MarkAbsentEmployees)
	scheduler.AddJob("rebuild_attendance_summaries", interval, j.RebuildSummaries)
}

// claim records day as done for slot and reports whether it was not already.
func (j *AttendanceJobs) claim(slot *string, day string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if *slot == day {
		return false
	}
	*slot = day
	return true
}

func (j *AttendanceJobs) release(slot *string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	*slot = ""
}

// MarkAbsentEmployees inserts Absent (or On Leave) records for active
// employees who have not checked in by the mark hour on a weekday.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := j.now().In(j.location)
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return nil
	}
	if now.Hour() < j.absentMarkHour {
		return nil
	}

	day := now.Format(attendance.DateLayout)
	if !j.claim(&j.lastMarked, day) {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job", "date", day)

	marked, err := j.attendanceSvc.MarkAbsent(ctx, now)
	if err != nil {
		j.release(&j.lastMarked)
		return fmt.Errorf("failed to mark absent employees: %w", err)
	}

	slog.Info("Cron: Marked missing attendance", "date", day, "count", marked)
	return nil
}

// RebuildSummaries regenerates every employee's cached summaries once a day.
func (j *AttendanceJobs) RebuildSummaries(ctx context.Context) error {
	day := j.now().In(j.location).Format(attendance.DateLayout)
	if !j.claim(&j.lastRebuilt, day) {
		return nil
	}

	slog.Info("Cron: Starting summary rebuild job", "date", day)

	rebuilt, err := j.attendanceSvc.RebuildAllSummaries(ctx)
	if err != nil {
		j.release(&j.lastRebuilt)
		return fmt.Errorf("failed to rebuild summaries: %w", err)
	}

	slog.Info("Cron: Rebuilt attendance summaries", "employees", rebuilt)
	return nil
}
