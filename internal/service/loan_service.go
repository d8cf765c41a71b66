// internal/service/loan_service.go
package service

import (
    "fmt"
    "log"
    "strconv"

    "github.com/unclebandit/loanchat-backend/internal/model"
    "github.com/unclebandit/loanchat-backend/internal/queue"
    "github.com/unclebandit/loanchat-backend/internal/repository"
    "github.com/unclebandit/loanchat-backend/internal/session"
)

const (
    approvedTemplate = "Dear {name}, your personal loan of Rs.{amount} for {tenure} months has been APPROVED. Monthly EMI: Rs.{emi}. Your sanction letter is on its way. - Capital Finance Ltd."
    rejectedTemplate = "Dear {name}, we were unable to approve your personal loan request of Rs.{amount} at this time ({reason}). Please contact your nearest branch for assistance. - Capital Finance Ltd."
)

type LoanService struct {
    ApplicationRepo  repository.ApplicationRepositoryInterface
    NotificationRepo repository.NotificationRepositoryInterface
    Queue            queue.Queue
}

// RecordDecision persists the underwriting outcome for the session's
// application and queues a decision notification for terminal statuses.
// A pending_verification record is created first when a salary slip is
// requested; the final decision then updates that same row.
func (s *LoanService) RecordDecision(sess *session.Session, status, reason string) error {
    if sess.Customer == nil {
        return fmt.Errorf("cannot record decision without a verified customer")
    }

    if sess.ApplicationID == 0 {
        app := &model.LoanApplication{
            CustomerID:     sess.Customer.ID,
            Amount:         sess.LoanAmount,
            TenureMonths:   sess.LoanTenure,
            InterestRate:   sess.InterestRate,
            EMI:            sess.EstimatedEMI,
            Status:         status,
            DecisionReason: reason,
        }
        if err := s.ApplicationRepo.Create(app); err != nil {
            return err
        }
        sess.ApplicationID = app.ID
        log.Println("📝 Recorded loan application ID:", app.ID, "status:", status)
    } else {
        if err := s.ApplicationRepo.UpdateDecision(sess.ApplicationID, status, reason); err != nil {
            return err
        }
        log.Println("📝 Updated loan application ID:", sess.ApplicationID, "status:", status)
    }

    sess.LoanStatus = status

    if status != "approved" && status != "rejected" {
        return nil
    }
    return s.notifyDecision(sess, status, reason)
}

// notifyDecision creates the outbound notification row and enqueues it
func (s *LoanService) notifyDecision(sess *session.Session, status, reason string) error {
    template := rejectedTemplate
    if status == "approved" {
        template = approvedTemplate
    }

    content := RenderTemplate(template, map[string]string{
        "name":   sess.Customer.Name,
        "amount": strconv.FormatFloat(sess.LoanAmount, 'f', 0, 64),
        "tenure": strconv.Itoa(sess.LoanTenure),
        "emi":    strconv.FormatFloat(sess.EstimatedEMI, 'f', 0, 64),
        "reason": reason,
    })

    n := &model.Notification{
        ApplicationID:   sess.ApplicationID,
        CustomerID:      sess.Customer.ID,
        Status:          "pending",
        RenderedContent: content,
    }
    if err := s.NotificationRepo.Create(n); err != nil {
        return err
    }

    if err := s.Queue.Publish(queue.TopicLoanNotifications, n.ID); err != nil {
        log.Println("⚠️ failed to enqueue notification ID", n.ID, ":", err)
        return err
    }

    log.Println("📤 Queued decision notification ID:", n.ID)
    return nil
}

// ListApplications fetches decided applications with pagination
func (s *LoanService) ListApplications(page, pageSize int, status string) ([]model.LoanApplication, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.ApplicationRepo.ListApplications(offset, pageSize, status)
    if err != nil {
        return nil, nil, err
    }

    apps := make([]model.LoanApplication, len(ptrs))
    for i, a := range ptrs {
        apps[i] = *a
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return apps, pagination, nil
}
