package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
)

type memAttendanceRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]attendance.Record
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{records: map[int64]attendance.Record{}}
}

func (m *memAttendanceRepo) Insert(_ context.Context, record attendance.Record) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.EmployeeID == record.EmployeeID && r.Date.Equal(record.Date) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
	}
	m.nextID++
	record.ID = m.nextID
	record.UpdatedAt = time.Unix(m.nextID, 0)
	m.records[record.ID] = record
	return record, nil
}

func (m *memAttendanceRepo) GetByID(_ context.Context, id int64) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (m *memAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (m *memAttendanceRepo) CompleteCheckOut(_ context.Context, id int64, checkOut string, hours float64) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok || r.CheckOut != nil || r.CheckIn == nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}
	r.CheckOut = &checkOut
	r.Hours = hours
	m.records[id] = r
	return r, nil
}

func (m *memAttendanceRepo) Update(_ context.Context, record attendance.Record, expectedUpdatedAt time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.records[record.ID]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	if !current.UpdatedAt.Equal(expectedUpdatedAt) {
		return attendance.Record{}, attendance.ErrConcurrentUpdate
	}
	record.UpdatedAt = current.UpdatedAt.Add(time.Second)
	m.records[record.ID] = record
	return record, nil
}

func (m *memAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for _, r := range m.records {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *memAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, _, _ *time.Time) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for _, r := range m.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memAttendanceRepo) MarkMissing(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type memSummaryRepo struct {
	mu     sync.Mutex
	stored map[string][2][]attendance.PeriodSummary
}

func (m *memSummaryRepo) Replace(_ context.Context, employeeID string, weekly, monthly []attendance.PeriodSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stored == nil {
		m.stored = map[string][2][]attendance.PeriodSummary{}
	}
	m.stored[employeeID] = [2][]attendance.PeriodSummary{weekly, monthly}
	return nil
}

func (m *memSummaryRepo) ListByEmployee(_ context.Context, employeeID string, periodType attendance.PeriodType) ([]attendance.PeriodSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if periodType == attendance.PeriodWeek {
		return m.stored[employeeID][0], nil
	}
	return m.stored[employeeID][1], nil
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMemEmployeeRepo(emps ...employee.Employee) *memEmployeeRepo {
	m := &memEmployeeRepo{employees: map[string]employee.Employee{}}
	for _, e := range emps {
		m.employees[e.ID] = e
	}
	return m
}

func (m *memEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.employees[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *memEmployeeRepo) List(ctx context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	all, _ := m.ListActive(ctx)
	return all, int64(len(all)), nil
}

func (m *memEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.employees[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) Deactivate(_ context.Context, id string) error {
	e := m.employees[id]
	e.IsActive = false
	m.employees[id] = e
	return nil
}
