package agent

import (
	"fmt"
	"log"
	"strings"

	appErrors "github.com/unclebandit/loanchat-backend/internal/errors"
	"github.com/unclebandit/loanchat-backend/internal/session"
)

type verificationResult struct {
	Message string
	Proceed bool
	Ended   bool
}

// verificationOpening asks for the registered phone number
func verificationOpening() string {
	return "To verify your identity, please enter your registered 10-digit phone number."
}

// processVerification runs the KYC lookup against the customer records
func (m *Master) processVerification(sess *session.Session, input string) verificationResult {
	log.Println("[VERIFICATION] Processing input:", input)

	switch sess.VerificationState {
	case session.VerificationAskPhone:
		phone := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(input), " ", ""), "-", "")
		if !isValidPhone(phone) {
			return verificationResult{Message: "Please enter a valid 10-digit phone number."}
		}

		customer, err := m.CustomerRepo.GetByPhone(phone)
		if err != nil {
			log.Println("⚠️ customer lookup failed:", err)
			return verificationResult{Message: "Sorry, I couldn't check our records right now. Please try again in a moment."}
		}
		if customer == nil {
			sess.VerificationState = session.VerificationNotFound
			log.Println("[VERIFICATION]", appErrors.NewCustomerNotFound(phone))
			return verificationResult{Message: "❌ Sorry, I couldn't find your profile in our system.\n" +
				"Please check your phone number or contact our branch for assistance.\n\n" +
				"Would you like to try again with a different number? (Yes/No)"}
		}

		sess.Customer = customer
		offer, err := m.OfferRepo.GetByCustomerID(customer.ID)
		if err != nil {
			log.Println("⚠️ offer lookup failed:", err)
		}
		if offer != nil {
			sess.Offer = offer
			sess.InterestRate = offer.InterestRate
		}

		sess.VerificationState = session.VerificationConfirmIdentity
		log.Printf("[VERIFICATION] Customer found: %s (ID: %d)\n", customer.Name, customer.ID)
		return verificationResult{Message: fmt.Sprintf(
			"✅ Verification Successful!\n\n"+
				"I found your profile in our system:\n"+
				"👤 Name: %s\n"+
				"📍 City: %s\n"+
				"📞 Phone: %s\n\n"+
				"Is this information correct? (Yes/No)",
			customer.Name, customer.City, customer.Phone,
		)}

	case session.VerificationConfirmIdentity:
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "yes", "y", "correct", "right", "ok":
			sess.VerificationState = session.VerificationComplete
			sess.KYCVerified = true
			log.Println("[VERIFICATION] Identity confirmed. Proceeding to underwriting.")
			return verificationResult{
				Message: "Great! Your identity has been verified. Let me now check your eligibility...",
				Proceed: true,
			}
		case "no", "n", "wrong", "incorrect":
			sess.VerificationState = session.VerificationAskPhone
			sess.Customer = nil
			sess.Offer = nil
			sess.InterestRate = session.DefaultInterestRate
			log.Println("[VERIFICATION] Identity not confirmed. Asking for phone again.")
			return verificationResult{Message: "I apologize for the confusion. Please enter your registered phone number again."}
		default:
			return verificationResult{Message: "Please respond with 'Yes' if the details are correct or 'No' if they're not."}
		}

	case session.VerificationNotFound:
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "yes", "y":
			sess.VerificationState = session.VerificationAskPhone
			return verificationResult{Message: "Please enter your registered 10-digit phone number."}
		default:
			sess.VerificationState = session.VerificationEnded
			return verificationResult{
				Message: "Thank you for your interest. Please visit our nearest branch for assistance. Have a great day!",
				Ended:   true,
			}
		}
	}

	return verificationResult{Message: "I'm sorry, something went wrong. Please start a new conversation."}
}

func isValidPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
