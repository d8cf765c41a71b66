// internal/handler/document_handler.go
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/loanchat-backend/internal/agent"
	appErrors "github.com/unclebandit/loanchat-backend/internal/errors"
	"github.com/unclebandit/loanchat-backend/internal/session"
)

// maxUploadBytes caps salary slip uploads at 10 MB
const maxUploadBytes = 10 << 20

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/jpg":       true,
}

// DocumentHandler holds the dependencies for upload/download/health handlers
type DocumentHandler struct {
	Sessions   *session.Store
	Master     *agent.Master
	UploadsDir string
}

type uploadResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ShowDownload bool   `json:"show_download"`
	DownloadFile string `json:"download_file,omitempty"`
	SessionEnded bool   `json:"session_ended"`
}

// UploadSalarySlip stores the uploaded slip and triggers salary verification
func (h *DocumentHandler) UploadSalarySlip(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = r.FormValue("session_id")
	}

	sess, ok := h.Sessions.Get(sessionID)
	if !ok {
		log.Println("⚠️", appErrors.NewSessionNotFound(sessionID))
		http.Error(w, "Invalid session", http.StatusBadRequest)
		return
	}

	if sess.Customer == nil || sess.UnderwritingState != session.UnderwritingAwaitingSalarySlip {
		http.Error(w, "No application awaiting salary verification for this session", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		http.Error(w, "Invalid file type. Please upload PDF or image.", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(h.UploadsDir, 0755); err != nil {
		http.Error(w, "failed to store file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("salary_%s_%s", sessionID, filepath.Base(header.Filename))
	fullPath := filepath.Join(h.UploadsDir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		http.Error(w, "failed to store file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		http.Error(w, "failed to store file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sess.SalarySlipUploaded = true
	sess.SalarySlipPath = fullPath
	log.Println("📎 Salary slip saved:", filename)

	reply := h.Master.ProcessSalaryUpload(sess)
	h.Sessions.Touch(sess)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(uploadResponse{
		Success:      true,
		Message:      reply.Message,
		ShowDownload: reply.ShowDownload,
		DownloadFile: reply.DownloadFile,
		SessionEnded: reply.SessionEnded,
	})
}

// Download serves a generated sanction letter from the uploads directory
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(chi.URLParam(r, "filename"))
	fullPath := filepath.Join(h.UploadsDir, filename)

	if _, err := os.Stat(fullPath); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	http.ServeFile(w, r, fullPath)
}

// Health is the health check endpoint
func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"message": "Personal Loan Chat service is running",
	})
}
