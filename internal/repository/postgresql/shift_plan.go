package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const shiftPlanColumns = `
	id, employee_id, company_id, date,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	slots, overtime_hours,
	to_char(lunch_start, 'HH24:MI'), to_char(lunch_end, 'HH24:MI'),
	created_at, updated_at`

type shiftPlanRepository struct {
	db *database.DB
}

func NewShiftPlanRepository(db *database.DB) schedule.ShiftPlanRepository {
	return &shiftPlanRepository{db: db}
}

func scanShiftPlan(row pgx.Row) (schedule.ShiftPlan, error) {
	var p schedule.ShiftPlan
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.Date,
		&p.StartTime, &p.EndTime,
		&p.Slots, &p.OvertimeHours,
		&p.LunchStart, &p.LunchEnd,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Upsert implements schedule.ShiftPlanRepository.
func (r *shiftPlanRepository) Upsert(ctx context.Context, plan schedule.ShiftPlan) (schedule.ShiftPlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_plans (
			id, employee_id, company_id, date, start_time, end_time,
			slots, overtime_hours, lunch_start, lunch_end
		) VALUES (
			$1, $2, $3, $4, $5::time, $6::time, $7, $8, $9::time, $10::time
		)
		ON CONFLICT (company_id, employee_id, date) DO UPDATE SET
			start_time     = EXCLUDED.start_time,
			end_time       = EXCLUDED.end_time,
			slots          = EXCLUDED.slots,
			overtime_hours = EXCLUDED.overtime_hours,
			lunch_start    = EXCLUDED.lunch_start,
			lunch_end      = EXCLUDED.lunch_end,
			updated_at     = NOW()
		RETURNING ` + shiftPlanColumns

	saved, err := scanShiftPlan(q.QueryRow(ctx, query,
		plan.ID,
		plan.EmployeeID,
		plan.CompanyID,
		plan.Date,
		plan.StartTime,
		plan.EndTime,
		plan.Slots,
		plan.OvertimeHours,
		plan.LunchStart,
		plan.LunchEnd,
	))
	if err != nil {
		return schedule.ShiftPlan{}, fmt.Errorf("failed to upsert shift plan: %w", err)
	}

	return saved, nil
}

// GetByEmployeeAndDate implements schedule.ShiftPlanRepository.
func (r *shiftPlanRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*schedule.ShiftPlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftPlanColumns + `
		FROM shift_plans
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	plan, err := scanShiftPlan(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift plan: %w", err)
	}

	return &plan, nil
}

// ListByEmployee implements schedule.ShiftPlanRepository.
func (r *shiftPlanRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]schedule.ShiftPlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftPlanColumns + `
		FROM shift_plans
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift plans: %w", err)
	}
	defer rows.Close()

	plans := []schedule.ShiftPlan{}
	for rows.Next() {
		plan, err := scanShiftPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift plans: %w", err)
	}

	return plans, nil
}

// Delete implements schedule.ShiftPlanRepository.
func (r *shiftPlanRepository) Delete(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM shift_plans WHERE employee_id = $1 AND date = $2 AND company_id = $3`

	commandTag, err := q.Exec(ctx, query, employeeID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift plan: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftPlanNotFound
	}

	return nil
}
