package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/employee"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT emp_id, emp_name, designation, section, sub_section, category, grade,
		       COALESCE(gross_salary, 0)
		FROM employees
		WHERE ($1 = '' OR section = $1)
		  AND ($2 = '' OR sub_section = $2)
		  AND ($3 = '' OR category = $3)
		ORDER BY emp_id
	`

	rows, err := q.Query(ctx, query, filter.Section, filter.SubSection, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.EmpID, &e.Name, &e.Designation, &e.Section, &e.SubSection,
			&e.Category, &e.Grade, &e.GrossSalary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// DistinctSections implements employee.Repository.
func (r *employeeRepository) DistinctSections(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT section FROM employees
		WHERE section IS NOT NULL AND section <> ''
		ORDER BY section
	`)
}

// DistinctSubSections implements employee.Repository.
func (r *employeeRepository) DistinctSubSections(ctx context.Context, section string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT sub_section FROM employees
		WHERE sub_section IS NOT NULL AND sub_section <> ''
		  AND ($1 = '' OR section = $1)
		ORDER BY sub_section
	`

	rows, err := q.Query(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-sections: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// DistinctCategories implements employee.Repository.
func (r *employeeRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT category FROM employees
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category
	`)
}

func (r *employeeRepository) distinct(ctx context.Context, query string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run taxonomy query: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

func scanStrings(rows pgx.Rows) ([]string, error) {
	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}
	return values, nil
}
