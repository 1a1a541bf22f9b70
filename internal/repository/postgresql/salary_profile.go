package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/database"
)

type salaryProfileRepository struct {
	db *database.DB
}

func NewSalaryProfileRepository(db *database.DB) salaryprofile.SalaryProfileRepository {
	return &salaryProfileRepository{db: db}
}

const salaryProfileColumns = `
	id, employee_id, gross_salary, other_allowances,
	basic_da_override, hra_override, conveyance_override,
	pf_applicable, esi_applicable, effective_from, effective_to,
	is_active, created_at, updated_at
`

func scanSalaryProfile(row pgx.Row) (salaryprofile.SalaryProfile, error) {
	var p salaryprofile.SalaryProfile
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.GrossSalary, &p.OtherAllowances,
		&p.BasicDAOverride, &p.HRAOverride, &p.ConveyanceOverride,
		&p.PFApplicable, &p.ESIApplicable, &p.EffectiveFrom, &p.EffectiveTo,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create inserts the new profile and closes the employee's current
// open-ended profile in the same transaction, preserving history.
func (r *salaryProfileRepository) Create(ctx context.Context, profile salaryprofile.SalaryProfile) (salaryprofile.SalaryProfile, error) {
	var created salaryprofile.SalaryProfile

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		previousEnd := profile.EffectiveFrom.AddDate(0, 0, -1)
		_, err := tx.Exec(ctx, `
			UPDATE salary_profiles
			SET effective_to = $1, updated_at = NOW()
			WHERE employee_id = $2
			  AND effective_to IS NULL
			  AND is_active = true
			  AND effective_from < $3
		`, previousEnd, profile.EmployeeID, profile.EffectiveFrom)
		if err != nil {
			return fmt.Errorf("failed to close previous salary profile: %w", err)
		}

		query := `
			INSERT INTO salary_profiles (
				employee_id, gross_salary, other_allowances,
				basic_da_override, hra_override, conveyance_override,
				pf_applicable, esi_applicable, effective_from, effective_to, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING ` + salaryProfileColumns

		created, err = scanSalaryProfile(tx.QueryRow(ctx, query,
			profile.EmployeeID, profile.GrossSalary, profile.OtherAllowances,
			profile.BasicDAOverride, profile.HRAOverride, profile.ConveyanceOverride,
			profile.PFApplicable, profile.ESIApplicable, profile.EffectiveFrom, profile.EffectiveTo,
			profile.IsActive,
		))
		if err != nil {
			return fmt.Errorf("failed to create salary profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return salaryprofile.SalaryProfile{}, err
	}

	return created, nil
}

func (r *salaryProfileRepository) GetByID(ctx context.Context, id string) (salaryprofile.SalaryProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryProfileColumns + ` FROM salary_profiles WHERE id = $1`

	profile, err := scanSalaryProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salaryprofile.SalaryProfile{}, salaryprofile.ErrProfileNotFound
		}
		return salaryprofile.SalaryProfile{}, fmt.Errorf("failed to get salary profile: %w", err)
	}

	return profile, nil
}

func (r *salaryProfileRepository) FindCandidates(ctx context.Context, employeeID string, asOf time.Time) ([]salaryprofile.SalaryProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryProfileColumns + `
		FROM salary_profiles
		WHERE employee_id = $1
		  AND is_active = true
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to find salary profiles: %w", err)
	}
	defer rows.Close()

	return collectSalaryProfiles(rows)
}

func (r *salaryProfileRepository) ListByEmployee(ctx context.Context, employeeID string) ([]salaryprofile.SalaryProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryProfileColumns + `
		FROM salary_profiles
		WHERE employee_id = $1
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary profiles: %w", err)
	}
	defer rows.Close()

	return collectSalaryProfiles(rows)
}

func collectSalaryProfiles(rows pgx.Rows) ([]salaryprofile.SalaryProfile, error) {
	var profiles []salaryprofile.SalaryProfile
	for rows.Next() {
		var p salaryprofile.SalaryProfile
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.GrossSalary, &p.OtherAllowances,
			&p.BasicDAOverride, &p.HRAOverride, &p.ConveyanceOverride,
			&p.PFApplicable, &p.ESIApplicable, &p.EffectiveFrom, &p.EffectiveTo,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
