package service

import (
	"log"

	"github.com/unclebandit/loanchat-backend/internal/model"
)

// NotificationStore defines the methods the worker needs
type NotificationStore interface {
	GetByID(id int) (*model.Notification, error)
	Update(n *model.Notification) error
}

// Worker processes queued decision notification jobs
type Worker struct {
	NotificationRepo NotificationStore
	JobChan          <-chan int
	SendFunc         func(msg string) bool
}

// Constructor
func NewWorker(repo NotificationStore, jobChan <-chan int, sendFunc func(msg string) bool) *Worker {
	return &Worker{
		NotificationRepo: repo,
		JobChan:          jobChan,
		SendFunc:         sendFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for jobID := range w.JobChan {
		if err := w.Process(jobID); err != nil {
			log.Println("Failed to process notification:", err)
		}
	}
}

// Process sends one queued notification and records the outcome
func (w *Worker) Process(jobID int) error {
	n, err := w.NotificationRepo.GetByID(jobID)
	if err != nil {
		return err
	}
	if n == nil {
		log.Println("Notification not found for ID:", jobID)
		return nil
	}

	success := w.SendFunc(n.RenderedContent)
	if success {
		n.Status = "sent"
		n.LastError = ""
	} else {
		n.Status = "failed"
		n.LastError = "send failed"
		n.RetryCount += 1
	}

	return w.NotificationRepo.Update(n)
}
