package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads attendance summaries aggregated per employee
// per month. An employee with no attendance rows gets a zero summary; the
// proration step rejects zero working days.
type AttendanceRepository interface {
	GetMonthlySummary(ctx context.Context, employeeID string, month time.Time) (MonthlySummary, error)
}
