package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.hours, a.is_late,
	a.created_at, a.updated_at`

func scanRecord(row pgx.Row, extra ...any) (attendance.Record, error) {
	var rec attendance.Record
	dest := []any{
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.Hours, &rec.IsLate,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return rec, err
}

// Insert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Insert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records AS a (
			employee_id, date, check_in, check_out, status, hours, is_late, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + attendanceColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.CheckIn, record.CheckOut, record.Status, record.Hours, record.IsLate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to insert attendance record: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, "SELECT "+attendanceColumns+" FROM attendance_records a WHERE a.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record %d: %w", id, err)
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + attendanceColumns + " FROM attendance_records a WHERE a.employee_id = $1 AND a.date = $2"
	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

// CompleteCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CompleteCheckOut(ctx context.Context, id int64, checkOut string, hours float64) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records AS a
		SET check_out = $1, hours = $2, updated_at = NOW()
		WHERE a.id = $3 AND a.check_out IS NULL AND a.check_in IS NOT NULL
		RETURNING ` + attendanceColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, checkOut, hours, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Record{}, fmt.Errorf("failed to check out attendance record %d: %w", id, err)
	}
	return rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record, expectedUpdatedAt time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records AS a
		SET check_in = $1, check_out = $2, status = $3, hours = $4, is_late = $5, updated_at = NOW()
		WHERE a.id = $6 AND date_trunc('milliseconds', a.updated_at) = date_trunc('milliseconds', $7::timestamptz)
		RETURNING ` + attendanceColumns

	rec, err := scanRecord(q.QueryRow(ctx, query,
		record.CheckIn, record.CheckOut, record.Status, record.Hours, record.IsLate, record.ID, expectedUpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, record.ID); getErr != nil {
				return attendance.Record{}, getErr
			}
			return attendance.Record{}, attendance.ErrConcurrentUpdate
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record %d: %w", record.ID, err)
	}
	return rec, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE conditions
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendance_records a WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.name
		FROM attendance_records a
		INNER JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.name ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var name string
		rec, err := scanRecord(rows, &name)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		rec.EmployeeName = &name
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.employee_id = $1"}
	args := []interface{}{employeeID}
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("a.date < $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records a
		WHERE %s
		ORDER BY a.date ASC
	`, attendanceColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// MarkMissing implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkMissing(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, status, hours, is_late, created_at, updated_at)
		SELECT e.id, $1::date,
			CASE WHEN EXISTS (
				SELECT 1 FROM leave_requests lr
				WHERE lr.employee_id = e.id AND lr.status = 'Approved'
					AND $1::date BETWEEN lr.start_date AND lr.end_date
			) THEN $2::text ELSE $3::text END,
			0, FALSE, NOW(), NOW()
		FROM employees e
		WHERE e.is_active AND (e.hire_date IS NULL OR e.hire_date <= $1::date)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query, date, attendance.StatusOnLeave, attendance.StatusAbsent)
	if err != nil {
		return 0, fmt.Errorf("failed to mark missing attendance for %s: %w", date.Format(attendance.DateLayout), err)
	}
	return commandTag.RowsAffected(), nil
}
