package http

import (
	"net/http"
	"time"

	"github.com/vibast-solutions/ms-go-session/app/entity"
)

// Envelope is the uniform response body. Errors carry only statusCode,
// message, and timestamp; nothing internal ever reaches the client.
type Envelope struct {
	StatusCode int                `json:"statusCode"`
	Message    string             `json:"message"`
	User       *entity.PublicUser `json:"user,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
	Timestamp  string             `json:"timestamp"`
}

func NewSuccess(message string, data interface{}) Envelope {
	return Envelope{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Timestamp:  timestamp(),
	}
}

func NewCreated(message string, user *entity.PublicUser) Envelope {
	return Envelope{
		StatusCode: http.StatusCreated,
		Message:    message,
		User:       user,
		Timestamp:  timestamp(),
	}
}

func NewError(statusCode int, message string) Envelope {
	return Envelope{
		StatusCode: statusCode,
		Message:    message,
		Timestamp:  timestamp(),
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
