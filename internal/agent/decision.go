package agent

// Decision is the underwriting outcome
type Decision string

const (
	DecisionApproved         Decision = "approved"
	DecisionRejected         Decision = "rejected"
	DecisionNeedsSalaryProof Decision = "needs_salary_proof"
)

// Decision reasons, persisted alongside the application record
const (
	ReasonLowCreditScore    = "low_credit_score"
	ReasonWithinLimit       = "within_preapproved_limit"
	ReasonNeedsVerification = "exceeds_preapproved_needs_verification"
	ReasonExceedsMaxLimit   = "exceeds_maximum_limit"
	ReasonSalaryVerified    = "salary_verified"
	ReasonHighEMIRatio      = "high_emi_ratio"
)

// Underwriting thresholds
const (
	minimumCreditScore  = 700
	maxEMIToSalaryRatio = 0.5
)

// Decide applies the underwriting rule table:
//   - credit score below 700 rejects outright
//   - amounts within the pre-approved limit approve
//   - amounts up to twice the limit need a salary slip, then pass only when
//     the EMI stays within half the monthly salary
//   - anything above twice the limit rejects
func Decide(creditScore int, requestedAmount, preapprovedLimit, monthlySalary float64, hasSalarySlip bool, tenureMonths int, annualRate float64) Decision {
	if creditScore < minimumCreditScore {
		return DecisionRejected
	}
	if requestedAmount <= preapprovedLimit {
		return DecisionApproved
	}
	if requestedAmount <= 2*preapprovedLimit {
		if !hasSalarySlip {
			return DecisionNeedsSalaryProof
		}
		emi := CalculateEMI(requestedAmount, annualRate, tenureMonths)
		if emi <= maxEMIToSalaryRatio*monthlySalary {
			return DecisionApproved
		}
		return DecisionRejected
	}
	return DecisionRejected
}
