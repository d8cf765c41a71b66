package agent

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/unclebandit/loanchat-backend/internal/session"
)

// Loan amount and tenure bounds offered by the product
const (
	minLoanAmount   = 10000
	maxLoanAmount   = 5000000
	minTenureMonths = 12
	maxTenureMonths = 72
)

type salesResult struct {
	Message   string
	Proceed   bool
	Cancelled bool
}

// salesOpening is the first prompt of a fresh conversation
func salesOpening() string {
	return "Welcome to our Personal Loan service! 🏦\n\n" +
		"I'm here to help you get the best loan offer tailored to your needs.\n\n" +
		"To get started, please tell me how much loan amount you're looking for? (₹10,000 - ₹50,00,000)"
}

// processSales collects loan amount and tenure, then asks for confirmation
func (m *Master) processSales(sess *session.Session, input string) salesResult {
	log.Println("[SALES] Processing input:", input)

	switch sess.SalesState {
	case session.SalesAskAmount:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(input, ",", ""), "₹", ""))
		amount, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return salesResult{Message: "I couldn't understand that amount. Please enter a valid number (e.g., 300000 or 3,00,000)."}
		}
		if amount < minLoanAmount {
			return salesResult{Message: "The minimum loan amount is ₹10,000. Please enter a valid amount."}
		}
		if amount > maxLoanAmount {
			return salesResult{Message: "The maximum loan amount is ₹50,00,000. Please enter a valid amount."}
		}

		sess.LoanAmount = amount
		sess.SalesState = session.SalesAskTenure
		log.Println("[SALES] Loan amount captured: ₹" + FormatINR(amount))
		return salesResult{Message: fmt.Sprintf(
			"Great! You've requested a loan of ₹%s. Now, please tell me your preferred loan tenure in months (12 to 72 months).",
			FormatINR(amount),
		)}

	case session.SalesAskTenure:
		tenure, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return salesResult{Message: "Please enter a valid number of months (e.g., 24 or 36)."}
		}
		if tenure < minTenureMonths {
			return salesResult{Message: "Minimum tenure is 12 months. Please enter a valid tenure."}
		}
		if tenure > maxTenureMonths {
			return salesResult{Message: "Maximum tenure is 72 months. Please enter a valid tenure."}
		}

		sess.LoanTenure = tenure
		emi := CalculateEMI(sess.LoanAmount, sess.InterestRate, tenure)
		sess.EstimatedEMI = emi
		sess.SalesState = session.SalesConfirm
		log.Printf("[SALES] Tenure captured: %d months, EMI: ₹%s\n", tenure, FormatINR(emi))

		return salesResult{Message: fmt.Sprintf(
			"Excellent choice! Here's your loan summary:\n\n"+
				"📋 Loan Amount: ₹%s\n"+
				"📅 Tenure: %d months\n"+
				"💰 Interest Rate: %.1f%% p.a.\n"+
				"💵 Estimated EMI: ₹%s/month\n\n"+
				"This looks like a great deal! Shall I proceed with the verification? (Yes/No)",
			FormatINR(sess.LoanAmount), tenure, sess.InterestRate, FormatINR(emi),
		)}

	case session.SalesConfirm:
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "yes", "y", "proceed", "ok", "sure", "yeah":
			sess.SalesState = session.SalesComplete
			log.Println("[SALES] User confirmed. Proceeding to verification.")
			return salesResult{
				Message: "Perfect! Let me verify your details from our records...",
				Proceed: true,
			}
		case "no", "n", "cancel", "stop":
			sess.SalesState = session.SalesCancelled
			log.Println("[SALES] User cancelled the application.")
			return salesResult{
				Message:   "No problem! If you change your mind, feel free to start again. Have a great day!",
				Cancelled: true,
			}
		default:
			return salesResult{Message: "Please respond with 'Yes' to proceed or 'No' to cancel."}
		}
	}

	return salesResult{Message: "I'm sorry, something went wrong. Please start a new conversation."}
}
