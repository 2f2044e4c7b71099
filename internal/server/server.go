package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"

	"RecruitIntel/internal/usecase"
)

// Server exposes the Zapier webhook surface over HTTP. POST endpoints
// trigger pipeline runs; GETs read derived state. When a shared secret is
// configured, POSTs must carry it in the X-Webhook-Secret header.
type Server struct {
	port     int
	secret   string
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New assembles the webhook server around a pipeline.
func New(port int, secret string, pipeline *usecase.Pipeline, logger *slog.Logger) *Server {
	return &Server{port: port, secret: secret, pipeline: pipeline, logger: logger}
}

// Handler builds the route table, gzip-wrapped.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/test", s.handleTest)
	mux.HandleFunc("/reports", s.handleReports)
	mux.HandleFunc("/get-top-articles", s.handleTopArticles)
	mux.HandleFunc("/daily-news-collection", s.requireSecret(s.handleDailyCollection))
	mux.HandleFunc("/upload-to-sheets", s.requireSecret(s.handleSheetsUpload))
	mux.HandleFunc("/weekly-content-creation", s.requireSecret(s.handleWeeklyContent))
	return handlers.CompressHandler(mux)
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	s.logger.Info("webhook server listening", "port", s.port)
	return srv.ListenAndServe()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	payload := map[string]any{
		"status":     "ok",
		"time":       time.Now().Format(time.RFC3339),
		"windowDays": s.pipeline.WindowDays(),
	}
	if count, ok := s.pipeline.ArchivedWeekTotal(r.Context()); ok {
		payload["archivedThisWeek"] = count
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "webhook server bereikbaar",
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	files, err := s.pipeline.ListGenerated()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleTopArticles(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	analysis, err := s.pipeline.TopArticles(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleDailyCollection(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	bucket, err := s.pipeline.RunDailyCollection(r.Context(), time.Now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	topScore := 0
	if len(bucket.Articles) > 0 {
		topScore = bucket.Articles[0].Score
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":          bucket.Date.Format("2006-01-02"),
		"totalArticles": len(bucket.Articles),
		"topScore":      topScore,
	})
}

func (s *Server) handleSheetsUpload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	url, err := s.pipeline.RunSheetsUpload(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"spreadsheetUrl": url})
}

func (s *Server) handleWeeklyContent(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	files, err := s.pipeline.RunWeeklyContent(r.Context(), time.Now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) requireSecret(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.secret != "" && r.Header.Get("X-Webhook-Secret") != s.secret {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid webhook secret"})
			return
		}
		next(w, r)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
