package session

import (
	"time"

	"github.com/unclebandit/loanchat-backend/internal/model"
)

// Conversation stages the master agent dispatches on
const (
	StageGreeting     = "greeting"
	StageSales        = "sales"
	StageVerification = "verification"
	StageUnderwriting = "underwriting"
	StageSanction     = "sanction"
	StageCompleted    = "completed"
	StageEnded        = "ended"
)

// Sales sub-states
const (
	SalesAskAmount = "ask_amount"
	SalesAskTenure = "ask_tenure"
	SalesConfirm   = "confirm"
	SalesComplete  = "complete"
	SalesCancelled = "cancelled"
)

// Verification sub-states
const (
	VerificationAskPhone        = "ask_phone"
	VerificationConfirmIdentity = "confirm_identity"
	VerificationNotFound        = "not_found"
	VerificationComplete        = "complete"
	VerificationEnded           = "ended"
)

// Underwriting sub-states
const (
	UnderwritingPending            = "pending"
	UnderwritingAwaitingSalarySlip = "awaiting_salary_slip"
	UnderwritingApproved           = "approved"
	UnderwritingRejected           = "rejected"
)

// DefaultInterestRate applies when a customer has no pre-approved offer row
const DefaultInterestRate = 10.5

// Session holds the state of one loan conversation. Lifetime equals one
// conversation; nothing here survives a process restart.
type Session struct {
	ID                string
	Stage             string
	SalesState        string
	VerificationState string
	UnderwritingState string

	LoanAmount   float64
	LoanTenure   int
	InterestRate float64
	EstimatedEMI float64

	Customer *model.Customer
	Offer    *model.Offer

	LoanStatus     string
	KYCVerified    bool
	ApprovedAmount float64
	ApplicationID  int

	SalarySlipUploaded bool
	SalarySlipPath     string

	SanctionLetterFilename string

	CreatedAt time.Time
	UpdatedAt time.Time
}
