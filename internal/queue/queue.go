package queue

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/unclebandit/loanchat-backend/internal/repository"
)

// TopicLoanNotifications carries decision notification IDs
const TopicLoanNotifications = "loan_notifications"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-memory queue with retry, used when no broker is configured
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			log.Printf("Job processed successfully: %+v\n", job.Payload)
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartNotificationSubscriber delivers queued decision notifications in-process
func StartNotificationSubscriber(q Queue, notifRepo repository.NotificationRepositoryInterface) {
	go func() {
		err := q.Subscribe(TopicLoanNotifications, func(payload any) error {
			// Type assertion: payload should be an int (Notification ID)
			notifID, ok := payload.(int)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected int")
				return nil // or return error to trigger retry
			}

			log.Println("📩 Processing queued notification ID:", notifID)

			// Fetch notification details from DB
			n, err := notifRepo.GetByID(notifID)
			if err != nil {
				log.Println("⚠️ Failed to fetch notification:", err)
				return err
			}
			if n == nil {
				log.Println("⚠️ Notification not found for ID:", notifID)
				return nil // no retry
			}

			// TODO: Replace MockSender with actual SMS/email sending logic
			err = MockSender(n.RenderedContent)
			if err != nil {
				log.Println("⚠️ Failed to send notification:", err)
				_ = notifRepo.UpdateStatus(notifID, "failed", err.Error())
				return err // triggers retry in queue
			}

			err = notifRepo.UpdateStatus(notifID, "sent", "")
			if err != nil {
				log.Println("⚠️ Failed to update notification status:", err)
				return err // retry
			}

			log.Println("✅ Notification processed successfully:", notifID)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for", TopicLoanNotifications, ":", err)
		}
	}()
}

// MockSender simulates sending messages with 90% success
func MockSender(payload any) error {
	r := rand.Float64()
	if r < 0.9 {
		return nil // success
	}
	return fmt.Errorf("mock sending failed")
}
