package agent

import (
	"fmt"
	"log"

	"github.com/unclebandit/loanchat-backend/internal/session"
)

type underwritingResult struct {
	Message    string
	Decision   Decision
	ShowUpload bool
}

// assess runs the first underwriting pass once identity is confirmed
func (m *Master) assess(sess *session.Session) underwritingResult {
	log.Println("[UNDERWRITING] Starting credit assessment...")

	customer := sess.Customer
	amount := sess.LoanAmount
	emi := CalculateEMI(amount, sess.InterestRate, sess.LoanTenure)
	sess.EstimatedEMI = emi

	log.Println("[UNDERWRITING] Credit Score:", customer.CreditScore)
	log.Println("[UNDERWRITING] Pre-approved Limit: ₹" + FormatINR(customer.PreapprovedLimit))
	log.Println("[UNDERWRITING] Requested Amount: ₹" + FormatINR(amount))
	log.Println("[UNDERWRITING] Calculated EMI: ₹" + FormatINR(emi))

	decision := Decide(customer.CreditScore, amount, customer.PreapprovedLimit, customer.Salary, false, sess.LoanTenure, sess.InterestRate)

	switch decision {
	case DecisionApproved:
		log.Println("[UNDERWRITING] DECISION: APPROVED (Loan ≤ pre-approved limit)")
		sess.UnderwritingState = session.UnderwritingApproved
		sess.ApprovedAmount = amount
		m.recordDecision(sess, "approved", ReasonWithinLimit)
		return underwritingResult{
			Decision: DecisionApproved,
			Message: fmt.Sprintf(
				"🎉 Congratulations! Your Loan is APPROVED!\n\n"+
					"📋 Loan Details:\n"+
					"• Loan Amount: ₹%s\n"+
					"• Tenure: %d months\n"+
					"• Interest Rate: %.1f%% p.a.\n"+
					"• Monthly EMI: ₹%s\n\n"+
					"Your loan is within your pre-approved limit of ₹%s.\n"+
					"I'm generating your sanction letter now...",
				FormatINR(amount), sess.LoanTenure, sess.InterestRate, FormatINR(emi), FormatINR(customer.PreapprovedLimit),
			),
		}

	case DecisionNeedsSalaryProof:
		log.Println("[UNDERWRITING] DECISION: NEEDS SALARY VERIFICATION (Loan ≤ 2× pre-approved limit)")
		sess.UnderwritingState = session.UnderwritingAwaitingSalarySlip
		m.recordDecision(sess, "pending_verification", ReasonNeedsVerification)
		return underwritingResult{
			Decision:   DecisionNeedsSalaryProof,
			ShowUpload: true,
			Message: fmt.Sprintf(
				"📝 Additional Verification Required\n\n"+
					"Your requested loan amount (₹%s) exceeds your pre-approved limit of ₹%s.\n\n"+
					"To proceed, I'll need to verify your income. Please upload your latest salary slip.\n\n"+
					"Click the 'Upload Salary Slip' button below to continue.",
				FormatINR(amount), FormatINR(customer.PreapprovedLimit),
			),
		}
	}

	// rejected: low score or above twice the limit
	sess.UnderwritingState = session.UnderwritingRejected
	if customer.CreditScore < minimumCreditScore {
		log.Printf("[UNDERWRITING] DECISION: REJECTED (Credit score %d < 700)\n", customer.CreditScore)
		m.recordDecision(sess, "rejected", ReasonLowCreditScore)
		return underwritingResult{
			Decision: DecisionRejected,
			Message: fmt.Sprintf(
				"❌ Loan Application Status: NOT APPROVED\n\n"+
					"Unfortunately, we cannot approve your loan at this time.\n"+
					"Reason: Your credit score (%d) does not meet our minimum requirement of 700.\n\n"+
					"💡 Tips to improve your credit score:\n"+
					"• Pay all EMIs and credit card bills on time\n"+
					"• Keep credit utilization below 30%%\n"+
					"• Avoid multiple loan applications\n\n"+
					"Please try again after improving your credit score. Thank you for considering us!",
				customer.CreditScore,
			),
		}
	}

	log.Println("[UNDERWRITING] DECISION: REJECTED (Loan > 2× pre-approved limit)")
	m.recordDecision(sess, "rejected", ReasonExceedsMaxLimit)
	return underwritingResult{
		Decision: DecisionRejected,
		Message: fmt.Sprintf(
			"❌ Loan Application Status: NOT APPROVED\n\n"+
				"Your requested loan amount (₹%s) exceeds the maximum eligible amount.\n"+
				"Maximum eligible: ₹%s (2× your pre-approved limit)\n\n"+
				"Would you like to apply for a lower amount? Please start a new application with an amount up to ₹%s.",
			FormatINR(amount), FormatINR(2*customer.PreapprovedLimit), FormatINR(2*customer.PreapprovedLimit),
		),
	}
}

// verifySalary runs the EMI-to-salary check after a salary slip upload
func (m *Master) verifySalary(sess *session.Session) underwritingResult {
	log.Println("[UNDERWRITING] Processing salary verification...")

	customer := sess.Customer
	amount := sess.LoanAmount
	salary := customer.Salary
	emi := CalculateEMI(amount, sess.InterestRate, sess.LoanTenure)
	sess.EstimatedEMI = emi

	ratio := 100.0
	if salary > 0 {
		ratio = emi / salary * 100
	}

	log.Println("[UNDERWRITING] Salary from slip: ₹" + FormatINR(salary))
	log.Println("[UNDERWRITING] EMI: ₹" + FormatINR(emi))
	log.Printf("[UNDERWRITING] EMI to Salary Ratio: %.1f%%\n", ratio)

	if emi <= maxEMIToSalaryRatio*salary {
		log.Println("[UNDERWRITING] DECISION: APPROVED (EMI ≤ 50% salary)")
		sess.UnderwritingState = session.UnderwritingApproved
		sess.ApprovedAmount = amount
		m.recordDecision(sess, "approved", ReasonSalaryVerified)
		return underwritingResult{
			Decision: DecisionApproved,
			Message: fmt.Sprintf(
				"🎉 Congratulations! Your Loan is APPROVED!\n\n"+
					"📋 Loan Details:\n"+
					"• Loan Amount: ₹%s\n"+
					"• Tenure: %d months\n"+
					"• Interest Rate: %.1f%% p.a.\n"+
					"• Monthly EMI: ₹%s\n\n"+
					"Your salary verification was successful.\n"+
					"EMI to Income Ratio: %.1f%% (within 50%% limit)\n\n"+
					"I'm generating your sanction letter now...",
				FormatINR(amount), sess.LoanTenure, sess.InterestRate, FormatINR(emi), ratio,
			),
		}
	}

	log.Println("[UNDERWRITING] DECISION: REJECTED (EMI > 50% salary)")
	sess.UnderwritingState = session.UnderwritingRejected
	maxLoan := MaxLoanForEMI(maxEMIToSalaryRatio*salary, sess.InterestRate, sess.LoanTenure)
	m.recordDecision(sess, "rejected", ReasonHighEMIRatio)
	return underwritingResult{
		Decision: DecisionRejected,
		Message: fmt.Sprintf(
			"❌ Loan Application Status: NOT APPROVED\n\n"+
				"Your EMI (₹%s) exceeds 50%% of your monthly salary (₹%s).\n"+
				"EMI to Income Ratio: %.1f%%\n\n"+
				"Maximum loan amount you can avail with your income: ₹%s\n\n"+
				"Would you like to apply for a lower amount? Please start a new application.",
			FormatINR(emi), FormatINR(salary), ratio, FormatINR(maxLoan),
		),
	}
}
