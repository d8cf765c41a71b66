// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/loanchat-backend/internal/agent"
	"github.com/unclebandit/loanchat-backend/internal/controller"
	"github.com/unclebandit/loanchat-backend/internal/db"
	"github.com/unclebandit/loanchat-backend/internal/handler"
	"github.com/unclebandit/loanchat-backend/internal/queue"
	"github.com/unclebandit/loanchat-backend/internal/repository"
	"github.com/unclebandit/loanchat-backend/internal/sanction"
	"github.com/unclebandit/loanchat-backend/internal/service"
	"github.com/unclebandit/loanchat-backend/internal/session"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	customerRepo := &repository.CustomerRepository{DB: db.DB}
	offerRepo := &repository.OfferRepository{DB: db.DB}
	applicationRepo := &repository.ApplicationRepository{DB: db.DB}
	notificationRepo := &repository.NotificationRepository{DB: db.DB}

	// Decision notifications go to RabbitMQ when a broker is configured,
	// otherwise to the in-process queue with its own subscriber
	var q queue.Queue
	if url := os.Getenv("AMQP_URL"); url != "" {
		aq, err := queue.DialAMQP(url)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer aq.Close()
		q = aq
		log.Println("📡 Publishing notifications to RabbitMQ, run cmd/worker to consume")
	} else {
		mq := queue.NewInMemoryQueue()
		queue.StartNotificationSubscriber(mq, notificationRepo)
		q = mq
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		log.Fatalf("failed to create uploads dir: %v", err)
	}

	loanService := &service.LoanService{
		ApplicationRepo:  applicationRepo,
		NotificationRepo: notificationRepo,
		Queue:            q,
	}

	master := &agent.Master{
		CustomerRepo: customerRepo,
		OfferRepo:    offerRepo,
		LoanService:  loanService,
		Letters:      &sanction.Generator{UploadsDir: uploadsDir},
	}

	sessions := session.NewStore()

	chatController := &controller.ChatController{
		Sessions: sessions,
		Master:   master,
	}

	documentHandler := &handler.DocumentHandler{
		Sessions:   sessions,
		Master:     master,
		UploadsDir: uploadsDir,
	}

	applicationHandler := &handler.ApplicationHandler{
		Service: loanService,
	}

	r := chi.NewRouter()

	// Conversation routes
	r.Post("/chat", chatController.Chat)
	r.Post("/reset", chatController.Reset)
	r.Post("/upload-salary", documentHandler.UploadSalarySlip)
	r.Get("/download/{filename}", documentHandler.Download)
	r.Get("/health", documentHandler.Health)
	r.Get("/applications", applicationHandler.ListApplicationsHandler)

	// Chat page
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web"))))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/index.html")
	})

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
