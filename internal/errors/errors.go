// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCustomerNotFound is a sentinel error
type ErrCustomerNotFound struct {
    Phone string
}

func (e *ErrCustomerNotFound) Error() string {
    return fmt.Sprintf("customer with phone %s not found", e.Phone)
}

// Helper constructor
func NewCustomerNotFound(phone string) error {
    return &ErrCustomerNotFound{Phone: phone}
}

// ErrSessionNotFound is returned for unknown or expired session ids
type ErrSessionNotFound struct {
    SessionID string
}

func (e *ErrSessionNotFound) Error() string {
    return fmt.Sprintf("session %s not found", e.SessionID)
}

func NewSessionNotFound(id string) error {
    return &ErrSessionNotFound{SessionID: id}
}

// ErrApplicationNotFound is a sentinel error
type ErrApplicationNotFound struct {
    ApplicationID int
}

func (e *ErrApplicationNotFound) Error() string {
    return fmt.Sprintf("loan application with ID %d not found", e.ApplicationID)
}

func NewApplicationNotFound(id int) error {
    return &ErrApplicationNotFound{ApplicationID: id}
}
