package repository

import (
	"database/sql"

	"github.com/unclebandit/loanchat-backend/internal/model"
)

// OfferRepositoryInterface defines methods used by the verification flow
type OfferRepositoryInterface interface {
	GetByCustomerID(customerID int) (*model.Offer, error)
}

// OfferRepository is the concrete implementation
type OfferRepository struct {
	DB *sql.DB
}

// GetByCustomerID fetches the pre-approved offer for a customer, nil when none exists
func (r *OfferRepository) GetByCustomerID(customerID int) (*model.Offer, error) {
	query := `
        SELECT id, customer_id, product, interest_rate
        FROM offers
        WHERE customer_id = $1
    `
	row := r.DB.QueryRow(query, customerID)

	var o model.Offer
	if err := row.Scan(&o.ID, &o.CustomerID, &o.Product, &o.InterestRate); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts an offer (seeder only)
func (r *OfferRepository) Create(o *model.Offer) error {
	query := `
        INSERT INTO offers (customer_id, product, interest_rate)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.DB.QueryRow(query, o.CustomerID, o.Product, o.InterestRate).Scan(&o.ID)
}
