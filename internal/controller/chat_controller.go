// internal/controller/chat_controller.go
package controller

import (
    "encoding/json"
    "log"
    "net/http"

    "github.com/unclebandit/loanchat-backend/internal/agent"
    "github.com/unclebandit/loanchat-backend/internal/session"
)

type ChatController struct {
    Sessions *session.Store
    Master   *agent.Master
}

type chatRequest struct {
    SessionID string `json:"session_id"`
    Message   string `json:"message"`
}

type chatResponse struct {
    SessionID    string `json:"session_id"`
    Message      string `json:"message"`
    ShowUpload   bool   `json:"show_upload"`
    ShowDownload bool   `json:"show_download"`
    DownloadFile string `json:"download_file,omitempty"`
    SessionEnded bool   `json:"session_ended"`
}

// Chat is the main conversation endpoint: it routes each message through
// the master agent, creating a fresh session when none is supplied
func (c *ChatController) Chat(w http.ResponseWriter, r *http.Request) {
    var body chatRequest
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    sess, ok := c.Sessions.Get(body.SessionID)
    if body.SessionID == "" || !ok {
        sess = c.Sessions.Create()
        log.Println("[CHAT] Created new session:", sess.ID)
    }

    log.Println("[CHAT] Session ID:", sess.ID)
    reply := c.Master.ProcessMessage(sess, body.Message)
    c.Sessions.Touch(sess)

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(chatResponse{
        SessionID:    sess.ID,
        Message:      reply.Message,
        ShowUpload:   reply.ShowUpload,
        ShowDownload: reply.ShowDownload,
        DownloadFile: reply.DownloadFile,
        SessionEnded: reply.SessionEnded,
    })
}

// Reset drops a session so the client can start over
func (c *ChatController) Reset(w http.ResponseWriter, r *http.Request) {
    sessionID := r.URL.Query().Get("session_id")
    if sessionID == "" {
        http.Error(w, "session_id is required", http.StatusBadRequest)
        return
    }

    c.Sessions.Delete(sessionID)
    log.Println("[CHAT] Session reset:", sessionID)

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "success": true,
        "message": "Session reset successfully",
    })
}
