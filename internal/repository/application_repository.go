package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/unclebandit/loanchat-backend/internal/errors"
	"github.com/unclebandit/loanchat-backend/internal/model"
)

// ApplicationRepositoryInterface defines methods used by the loan service
type ApplicationRepositoryInterface interface {
	Create(a *model.LoanApplication) error
	GetByID(id int) (*model.LoanApplication, error)
	UpdateDecision(id int, status, reason string) error
	ListApplications(offset, limit int, status string) ([]*model.LoanApplication, int, error)
}

// ApplicationRepository is the concrete implementation
type ApplicationRepository struct {
	DB *sql.DB
}

// Create inserts a new loan application and returns the generated ID
func (r *ApplicationRepository) Create(a *model.LoanApplication) error {
	a.CreatedAt = time.Now()
	query := `
        INSERT INTO loan_applications
        (customer_id, amount, tenure_months, interest_rate, emi, status, decision_reason, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		a.CustomerID,
		a.Amount,
		a.TenureMonths,
		a.InterestRate,
		a.EMI,
		a.Status,
		a.DecisionReason,
		a.CreatedAt,
	).Scan(&a.ID)
}

// GetByID fetches a loan application by ID
func (r *ApplicationRepository) GetByID(id int) (*model.LoanApplication, error) {
	query := `
        SELECT id, customer_id, amount, tenure_months, interest_rate, emi, status, decision_reason, created_at, updated_at
        FROM loan_applications
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var a model.LoanApplication
	if err := row.Scan(&a.ID, &a.CustomerID, &a.Amount, &a.TenureMonths, &a.InterestRate, &a.EMI, &a.Status, &a.DecisionReason, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &a, nil
}

// UpdateDecision moves an application to its final status with a decision reason
func (r *ApplicationRepository) UpdateDecision(id int, status, reason string) error {
	query := `
        UPDATE loan_applications
        SET status = $1, decision_reason = $2, updated_at = $3
        WHERE id = $4
    `
	res, err := r.DB.Exec(query, status, reason, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewApplicationNotFound(id)
	}
	return nil
}

// ListApplications fetches a page of applications plus the total count,
// optionally filtered by status
func (r *ApplicationRepository) ListApplications(offset, limit int, status string) ([]*model.LoanApplication, int, error) {
	query := `
        SELECT id, customer_id, amount, tenure_months, interest_rate, emi, status, decision_reason, created_at, updated_at
        FROM loan_applications
    `
	countQuery := `SELECT COUNT(*) FROM loan_applications`

	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		countQuery += ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY created_at DESC`
	if status != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps := []*model.LoanApplication{}
	for rows.Next() {
		var a model.LoanApplication
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Amount, &a.TenureMonths, &a.InterestRate, &a.EMI, &a.Status, &a.DecisionReason, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		apps = append(apps, &a)
	}
	return apps, total, nil
}
