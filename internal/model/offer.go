// internal/model/offer.go
package model

type Offer struct {
    ID           int     `db:"id" json:"id"`
    CustomerID   int     `db:"customer_id" json:"customer_id"`
    Product      string  `db:"product" json:"product"`
    InterestRate float64 `db:"interest_rate" json:"interest_rate"`
}
