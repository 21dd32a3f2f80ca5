package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

// Replace implements attendance.SummaryRepository. Callers outside a
// transaction get one of their own so readers never see a half-written set.
func (r *summaryRepositoryImpl) Replace(ctx context.Context, employeeID string, weekly, monthly []attendance.PeriodSummary) error {
	if _, inTx := ctx.Value(txKey{}).(pgx.Tx); !inTx {
		return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
			return r.Replace(txCtx, employeeID, weekly, monthly)
		})
	}
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, "DELETE FROM attendance_summaries WHERE employee_id = $1", employeeID); err != nil {
		return fmt.Errorf("failed to clear summaries for employee %s: %w", employeeID, err)
	}

	insert := `
		INSERT INTO attendance_summaries (employee_id, period_type, period_key, present, absent, late, total_hours, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	batch := &pgx.Batch{}
	queue := func(periodType attendance.PeriodType, rows []attendance.PeriodSummary) {
		for _, s := range rows {
			batch.Queue(insert, employeeID, periodType, s.PeriodKey, s.Present, s.Absent, s.Late, s.TotalHours)
		}
	}
	queue(attendance.PeriodWeek, weekly)
	queue(attendance.PeriodMonth, monthly)
	if batch.Len() == 0 {
		return nil
	}

	tx := ctx.Value(txKey{}).(pgx.Tx)
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert summary for employee %s: %w", employeeID, err)
		}
	}
	return results.Close()
}

// ListByEmployee implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, periodType attendance.PeriodType) ([]attendance.PeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT period_key, present, absent, late, total_hours
		FROM attendance_summaries
		WHERE employee_id = $1 AND period_type = $2
		ORDER BY period_key ASC
	`, employeeID, periodType)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	summaries := []attendance.PeriodSummary{}
	for rows.Next() {
		var s attendance.PeriodSummary
		if err := rows.Scan(&s.PeriodKey, &s.Present, &s.Absent, &s.Late, &s.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
