// ABOUTME: HTTP API handlers for the askhive question catalogue
// ABOUTME: Maps one HTTP operation to one Store call and renders status + body

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/askhive/askhive/internal/store"
)

// Server is a stateless façade over a Store. Each handler performs exactly
// one Store call and translates its outcome into a status code and body.
type Server struct {
	store  store.Store
	logger *slog.Logger
}

// NewServer creates a Server backed by the given store.
func NewServer(st store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  st,
		logger: logger.With("component", "api"),
	}
}

// Routes builds the request mux. Any request not matching a registered
// route falls through to the catch-all 404.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /questions", s.handleListQuestions)
	mux.HandleFunc("POST /questions", s.handleAddQuestion)
	mux.HandleFunc("GET /questions/{id}", s.handleGetQuestion)
	mux.HandleFunc("PUT /questions/{id}", s.handleUpdateQuestion)
	mux.HandleFunc("DELETE /questions/{id}", s.handleDeleteQuestion)

	mux.HandleFunc("GET /answers", s.handleListAnswers)
	mux.HandleFunc("POST /answers", s.handleAddAnswer)

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleListQuestions handles GET /questions requests.
// A malformed pagination window is a 416; an out-of-range one is simply an
// empty array.
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := extractPagination(r.URL.Query())
	if err != nil {
		s.sendJSONError(w, http.StatusRequestedRangeNotSatisfiable, err.Error())
		return
	}

	questions, err := s.store.GetQuestions(r.Context(), page)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sendJSON(w, http.StatusOK, questions)
}

// handleAddQuestion handles POST /questions requests.
func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	nq, err := parseNewQuestion(r.Body)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.AddQuestion(r.Context(), *nq)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("question added", "id", created.ID)
	s.sendJSONMessage(w, http.StatusCreated, "Question added")
}

// handleGetQuestion handles GET /questions/{id} requests.
func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := s.store.GetQuestion(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.sendJSONError(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sendJSON(w, http.StatusOK, question)
}

// handleUpdateQuestion handles PUT /questions/{id} requests. The id comes
// from the path and is immutable; an id in the payload is ignored.
func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	nq, err := parseNewQuestion(r.Body)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.store.UpdateQuestion(r.Context(), id, *nq)
	if errors.Is(err, store.ErrNotFound) {
		s.sendJSONError(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("question updated", "id", id)
	s.sendJSONMessage(w, http.StatusOK, "Question updated")
}

// handleDeleteQuestion handles DELETE /questions/{id} requests.
func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.store.DeleteQuestion(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.sendJSONError(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("question deleted", "id", id)
	s.sendJSONMessage(w, http.StatusOK, "Question deleted")
}

// handleListAnswers handles GET /answers requests with the same pagination
// contract as questions.
func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	page, err := extractPagination(r.URL.Query())
	if err != nil {
		s.sendJSONError(w, http.StatusRequestedRangeNotSatisfiable, err.Error())
		return
	}

	answers, err := s.store.GetAnswers(r.Context(), page)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sendJSON(w, http.StatusOK, answers)
}

// handleAddAnswer handles POST /answers requests. A reference to a missing
// question surfaces as the backing engine's constraint error.
func (s *Server) handleAddAnswer(w http.ResponseWriter, r *http.Request) {
	na, err := parseNewAnswer(r.Body)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.AddAnswer(r.Context(), *na)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("answer added", "id", created.ID, "question", created.CorrespondingQuestion)
	s.sendJSONMessage(w, http.StatusCreated, "Answer added")
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleNotFound is the catch-all for unregistered routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.sendJSONError(w, http.StatusNotFound, "Route not found")
}

// parseID extracts the integer id from the request path.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid question id")
	}
	return id, nil
}

// parseNewQuestion parses and validates a NewQuestion from the given reader.
func parseNewQuestion(r io.Reader) (*store.NewQuestion, error) {
	var nq store.NewQuestion
	if err := json.NewDecoder(r).Decode(&nq); err != nil {
		return nil, errors.New("invalid JSON body")
	}

	if nq.Title == "" {
		return nil, errors.New("title is required")
	}
	if nq.Content == "" {
		return nil, errors.New("content is required")
	}

	return &nq, nil
}

// parseNewAnswer parses and validates a NewAnswer from the given reader.
func parseNewAnswer(r io.Reader) (*store.NewAnswer, error) {
	var na store.NewAnswer
	if err := json.NewDecoder(r).Decode(&na); err != nil {
		return nil, errors.New("invalid JSON body")
	}

	if na.Content == "" {
		return nil, errors.New("content is required")
	}
	if na.CorrespondingQuestion == 0 {
		return nil, errors.New("corresponding_question is required")
	}

	return &na, nil
}

// sendJSON writes a JSON response body.
func (s *Server) sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// sendJSONMessage writes a JSON confirmation message.
func (s *Server) sendJSONMessage(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"message": message})
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"error": message})
}
