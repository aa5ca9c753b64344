package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"kitabqa/internal/config"
	"kitabqa/internal/domain"
	"kitabqa/internal/qa"
)

// Answerer is the server-facing subset of the QA engine.
type Answerer interface {
	Answer(question string, lang domain.Language) (domain.AnswerResult, error)
}

// Server serves the JSON question-answering API. engine stays nil when
// startup could not initialize the pipeline; query requests then
// receive a service-unavailable response naming the expected document
// path, and the process keeps serving status checks.
type Server struct {
	engine  Answerer
	cfg     *config.AppConfig
	docPath string
	log     *slog.Logger
	mux     *http.ServeMux
}

func New(engine Answerer, cfg *config.AppConfig, docPath string, log *slog.Logger) *Server {
	s := &Server{engine: engine, cfg: cfg, docPath: docPath, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/status", s.handleStatus)
	s.mux = mux
	return s
}

// Handler returns the full handler chain including CORS.
func (s *Server) Handler() http.Handler { return s.withCORS(s.mux) }

func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("http server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type askRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

type askResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}

type errorResponse struct {
	Error           string `json:"error"`
	ExpectedPDFPath string `json:"expected_pdf_path,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	lang, ok := domain.ParseLanguage(req.Language)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "language must be 'urdu' or 'english'"})
		return
	}
	if s.engine == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:           "QA pipeline not initialized; ensure the document exists and restart",
			ExpectedPDFPath: s.docPath,
		})
		return
	}
	result, err := s.engine.Answer(req.Question, lang)
	if err != nil {
		s.log.Error("answer failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: result.Answer, Source: result.Source})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, qa.CheckStatus(s.cfg, s.docPath))
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	origin := "*"
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origin = s.cfg.Server.CORSOrigins[0]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
