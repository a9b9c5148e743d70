package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/grading"
	"github.com/abhisek/quizzy/internal/practice"
	"github.com/abhisek/quizzy/internal/selection"
	"github.com/abhisek/quizzy/internal/session"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorResponse{Error: kind, Message: msg})
}

// writeErr maps a service error to its status code and kind.
func writeErr(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	writeError(w, status, kind, err.Error())
}

func classify(err error) (int, string) {
	var verr *practice.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, practice.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "question_not_found"
	case errors.Is(err, selection.ErrExhaustedPool):
		return http.StatusConflict, "exhausted_pool"
	case errors.Is(err, session.ErrSessionComplete):
		return http.StatusConflict, "session_complete"
	case errors.Is(err, session.ErrInactive):
		return http.StatusConflict, "session_inactive"
	case errors.Is(err, session.ErrAlreadyAnswered):
		return http.StatusConflict, "already_answered"
	case errors.Is(err, session.ErrNotCurrent):
		return http.StatusConflict, "not_current_question"
	case errors.Is(err, grading.ErrInvalidAnswer):
		return http.StatusUnprocessableEntity, "invalid_answer"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
