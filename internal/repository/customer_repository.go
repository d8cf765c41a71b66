package repository

import (
	"database/sql"

	"github.com/unclebandit/loanchat-backend/internal/model"
)

// CustomerRepositoryInterface defines methods used by service and agents
type CustomerRepositoryInterface interface {
	GetByID(id int) (*model.Customer, error)
	GetByPhone(phone string) (*model.Customer, error)
	ListAll() ([]model.Customer, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
	query := `
        SELECT id, name, phone, city, credit_score, preapproved_limit, salary
        FROM customers
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.City, &c.CreditScore, &c.PreapprovedLimit, &c.Salary); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// GetByPhone fetches a customer by registered phone number (the KYC lookup key)
func (r *CustomerRepository) GetByPhone(phone string) (*model.Customer, error) {
	query := `
        SELECT id, name, phone, city, credit_score, preapproved_limit, salary
        FROM customers
        WHERE phone = $1
    `
	row := r.DB.QueryRow(query, phone)

	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.City, &c.CreditScore, &c.PreapprovedLimit, &c.Salary); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// ListAll fetches all customers (used by the seeder for verification output)
func (r *CustomerRepository) ListAll() ([]model.Customer, error) {
	query := `
        SELECT id, name, phone, city, credit_score, preapproved_limit, salary
        FROM customers
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.City, &c.CreditScore, &c.PreapprovedLimit, &c.Salary); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// Create inserts a customer (seeder only)
func (r *CustomerRepository) Create(c *model.Customer) error {
	query := `
        INSERT INTO customers (name, phone, city, credit_score, preapproved_limit, salary)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.Name, c.Phone, c.City, c.CreditScore, c.PreapprovedLimit, c.Salary).Scan(&c.ID)
}
