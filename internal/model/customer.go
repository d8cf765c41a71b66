// internal/model/customer.go
package model

type Customer struct {
    ID               int     `db:"id" json:"id"`
    Name             string  `db:"name" json:"name"`
    Phone            string  `db:"phone" json:"phone"`
    City             string  `db:"city" json:"city"`
    CreditScore      int     `db:"credit_score" json:"credit_score"`
    PreapprovedLimit float64 `db:"preapproved_limit" json:"preapproved_limit"`
    Salary           float64 `db:"salary" json:"salary"`
}
