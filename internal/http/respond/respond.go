package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MessageBody is the body of every error and plain acknowledgement response.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes payload as the response body with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", slog.Any("error", err))
	}
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Error writes an error response. Errors share the message body shape.
func Error(w http.ResponseWriter, status int, message string) {
	Message(w, status, message)
}
