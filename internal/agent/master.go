package agent

import (
	"log"

	"github.com/unclebandit/loanchat-backend/internal/repository"
	"github.com/unclebandit/loanchat-backend/internal/sanction"
	"github.com/unclebandit/loanchat-backend/internal/service"
	"github.com/unclebandit/loanchat-backend/internal/session"
)

// Master orchestrates the conversation: it dispatches each turn to the
// sales, verification, underwriting and sanction stages based on the
// session's current stage.
type Master struct {
	CustomerRepo repository.CustomerRepositoryInterface
	OfferRepo    repository.OfferRepositoryInterface
	LoanService  *service.LoanService
	Letters      *sanction.Generator
}

// Reply is what a conversation turn sends back to the client
type Reply struct {
	Message      string `json:"message"`
	ShowUpload   bool   `json:"show_upload"`
	ShowDownload bool   `json:"show_download"`
	DownloadFile string `json:"download_file,omitempty"`
	SessionEnded bool   `json:"session_ended"`
}

// ProcessMessage routes one user message through the current stage
func (m *Master) ProcessMessage(sess *session.Session, input string) *Reply {
	log.Println("[MASTER] Current stage:", sess.Stage)
	log.Println("[MASTER] User input:", input)

	switch sess.Stage {
	case session.StageGreeting:
		sess.Stage = session.StageSales
		log.Println("[MASTER] Invoking SALES stage for initial greeting")
		return &Reply{Message: salesOpening()}

	case session.StageSales:
		res := m.processSales(sess, input)
		reply := &Reply{Message: res.Message}
		if res.Proceed {
			sess.Stage = session.StageVerification
			reply.Message += "\n\n" + verificationOpening()
			log.Println("[MASTER] Transitioning to VERIFICATION stage")
		} else if res.Cancelled {
			sess.Stage = session.StageEnded
			reply.SessionEnded = true
			log.Println("[MASTER] Session ended by user")
		}
		return reply

	case session.StageVerification:
		res := m.processVerification(sess, input)
		reply := &Reply{Message: res.Message}
		if res.Proceed {
			sess.Stage = session.StageUnderwriting
			log.Println("[MASTER] Transitioning to UNDERWRITING stage")
			uw := m.assess(sess)
			reply.Message += "\n\n" + uw.Message
			reply.ShowUpload = uw.ShowUpload

			switch uw.Decision {
			case DecisionApproved:
				m.generateSanction(sess, reply)
			case DecisionRejected:
				sess.Stage = session.StageEnded
				reply.SessionEnded = true
				log.Println("[MASTER] Loan REJECTED. Session ended.")
			}
		} else if res.Ended {
			sess.Stage = session.StageEnded
			reply.SessionEnded = true
			log.Println("[MASTER] Verification failed. Session ended.")
		}
		return reply

	case session.StageUnderwriting:
		if sess.UnderwritingState == session.UnderwritingAwaitingSalarySlip {
			return &Reply{
				Message:    "Please upload your salary slip using the button below to continue.",
				ShowUpload: true,
			}
		}
		return &Reply{Message: "Your application is being processed. Please wait..."}

	case session.StageCompleted:
		return &Reply{
			Message: "Your loan application has been completed! 🎉\n\n" +
				"If you need any further assistance or want to apply for another loan, " +
				"please start a new conversation.\n\n" +
				"Thank you for choosing Capital Finance Ltd!",
			ShowDownload: true,
			DownloadFile: sess.SanctionLetterFilename,
		}

	case session.StageEnded:
		return &Reply{
			Message:      "This conversation has ended. Please start a new chat for a fresh application.",
			SessionEnded: true,
		}
	}

	return &Reply{Message: "I'm sorry, something went wrong. Please start a new conversation."}
}

// ProcessSalaryUpload runs after the upload endpoint stores a salary slip
func (m *Master) ProcessSalaryUpload(sess *session.Session) *Reply {
	log.Println("[MASTER] Processing salary slip upload...")

	uw := m.verifySalary(sess)
	reply := &Reply{Message: uw.Message}

	switch uw.Decision {
	case DecisionApproved:
		m.generateSanction(sess, reply)
		log.Println("[MASTER] Loan APPROVED after salary verification.")
	case DecisionRejected:
		sess.Stage = session.StageEnded
		reply.SessionEnded = true
		log.Println("[MASTER] Loan REJECTED after salary verification. Session ended.")
	}

	return reply
}

// generateSanction produces the PDF letter and completes the conversation
func (m *Master) generateSanction(sess *session.Session, reply *Reply) {
	sess.Stage = session.StageSanction
	log.Println("[MASTER] Invoking SANCTION GENERATOR")

	letter, err := m.Letters.Generate(sess)
	if err != nil {
		log.Println("⚠️ failed to generate sanction letter:", err)
		reply.Message += "\n\nYour sanction letter could not be generated right now. Our team will email it to you shortly."
		sess.Stage = session.StageCompleted
		return
	}

	sess.SanctionLetterFilename = letter.Filename
	sess.Stage = session.StageCompleted

	reply.Message += "\n\n" + letter.Message
	reply.ShowDownload = true
	reply.DownloadFile = letter.Filename
	log.Println("[MASTER] Loan APPROVED. Sanction letter generated:", letter.Filename)
}

// recordDecision persists the outcome; chat flow continues even when it fails
func (m *Master) recordDecision(sess *session.Session, status, reason string) {
	if m.LoanService == nil {
		return
	}
	if err := m.LoanService.RecordDecision(sess, status, reason); err != nil {
		log.Println("⚠️ failed to record decision:", err)
	}
}
