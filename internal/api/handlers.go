package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/quizzy/internal/explain"
	"github.com/abhisek/quizzy/internal/summary"
)

type createSessionRequest struct {
	Topic          string `json:"topic"`
	Difficulty     string `json:"difficulty"`
	TotalQuestions int    `json:"total_questions"`
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"questions": s.service.Catalog().Len(),
		"sessions":  s.service.Len(),
	})
}

func (s *Server) topics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"topics": s.service.Topics()})
}

func (s *Server) difficulties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"difficulties": s.service.Difficulties()})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Stats())
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.service.Sessions()})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	info, err := s.service.CreateSession(req.Topic, req.Difficulty, req.TotalQuestions)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.Session(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) nextQuestion(w http.ResponseWriter, r *http.Request) {
	v, err := s.service.NextQuestion(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "question_id is required")
		return
	}

	fb, err := s.service.SubmitAnswer(mux.Vars(r)["id"], req.QuestionID, req.Answer)
	if err != nil {
		writeErr(w, err)
		return
	}

	if fb.Explanation == "" && s.explainer != nil {
		if rec, err := s.service.Question(req.QuestionID); err == nil {
			text, err := s.explainer.Explain(r.Context(), rec, req.Answer)
			switch {
			case err == nil:
				fb.Explanation = text
			case !errors.Is(err, explain.ErrDisabled):
				// The answer is already graded; a missing explanation is not fatal.
				s.logger.Warn("explanation failed", "question_id", req.QuestionID, "error", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, fb)
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.EndSession(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	filter, ok := summary.ParseReviewFilter(r.URL.Query().Get("reviews"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "reviews must be one of all, incorrect, correct, none")
		return
	}
	score, err := s.service.Summary(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	score.Reviews = summary.FilterReviews(score.Reviews, filter)
	writeJSON(w, http.StatusOK, score)
}
