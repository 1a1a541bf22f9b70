package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/payroll-engine-go/internal/domain/attendance"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/database"
)

// attendanceRepository reads the per-month summaries the attendance
// subsystem maintains. Payroll never writes this table.
type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetMonthlySummary(ctx context.Context, employeeID string, month time.Time) (attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, working_days, present_days, leave_days, working_hours, overtime_hours
		FROM attendance_summaries
		WHERE employee_id = $1 AND month = $2
	`

	var s attendance.MonthlySummary
	err := q.QueryRow(ctx, query, employeeID, month).Scan(
		&s.EmployeeID, &s.WorkingDays, &s.PresentDays, &s.LeaveDays, &s.WorkingHours, &s.OvertimeHours,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			// No summary yet: zero working days, rejected by proration.
			return attendance.MonthlySummary{EmployeeID: employeeID}, nil
		}
		return attendance.MonthlySummary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	return s, nil
}
