// internal/model/loan_application.go
package model

import "time"

type LoanApplication struct {
    ID             int        `db:"id" json:"id"`
    CustomerID     int        `db:"customer_id" json:"customer_id"`
    Amount         float64    `db:"amount" json:"amount"`
    TenureMonths   int        `db:"tenure_months" json:"tenure_months"`
    InterestRate   float64    `db:"interest_rate" json:"interest_rate"`
    EMI            float64    `db:"emi" json:"emi"`
    Status         string     `db:"status" json:"status"` // pending_verification, approved, rejected
    DecisionReason string     `db:"decision_reason" json:"decision_reason"`
    CreatedAt      time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
