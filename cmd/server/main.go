package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/liamcoop/erpassistant/conversation"
	"github.com/liamcoop/erpassistant/internal/app"
	"github.com/liamcoop/erpassistant/internal/config"
	"github.com/liamcoop/erpassistant/internal/logger"
	"github.com/liamcoop/erpassistant/internal/metrics"
	"github.com/liamcoop/erpassistant/render"
	"github.com/liamcoop/erpassistant/rules"
)

type Server struct {
	db        *sql.DB
	assistant *conversation.Assistant
	manager   *conversation.Manager
	timeout   time.Duration
	router    *chi.Mux
}

// NewServerWithDeps creates a server around an existing assistant.
// db may be nil when no postgres source is in use.
func NewServerWithDeps(db *sql.DB, assistant *conversation.Assistant, timeout time.Duration) *Server {
	manager := conversation.NewManager(assistant)
	manager.OnChange(metrics.SetActiveConversations)

	s := &Server{
		db:        db,
		assistant: assistant,
		manager:   manager,
		timeout:   timeout,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(countRequests)

	r.Get("/api/v1/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Classification
	r.Post("/api/v1/classify", s.handleClassify)

	// Cascade rule management
	r.Route("/api/v1/rules", func(r chi.Router) {
		r.Get("/", s.handleListRules)
		r.Post("/", s.handleCreateRule)
		r.Post("/reload", s.handleReloadRules)
		r.Get("/{ruleId}", s.handleGetRule)
		r.Put("/{ruleId}", s.handleUpdateRule)
		r.Delete("/{ruleId}", s.handleDeleteRule)
	})

	// Conversations
	r.Route("/api/v1/conversations", func(r chi.Router) {
		r.Get("/", s.handleListConversations)
		r.Post("/", s.handleCreateConversation)

		r.Route("/{conversationId}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteConversation)
			r.Post("/messages", s.handleSendMessage)
			r.Get("/history", s.handleHistory)
		})
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// countRequests records every response by method, route pattern and status
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Conversations: s.manager.Len(),
		Counters:      logger.Snapshot(),
	})
}

// Classify handler
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required", nil)
		return
	}

	explanation := s.assistant.Classifier().Explain(req.Text)
	metrics.ClassificationsTotal.WithLabelValues(string(explanation.Intent.Tag)).Inc()

	respondJSON(w, http.StatusOK, explanation)
}

// List rules handler
func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	active, err := s.engine().ActiveRules()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rules", err)
		return
	}

	respondJSON(w, http.StatusOK, RulesListResponse{Rules: active})
}

// Create rule handler
func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Set == "" || req.Name == "" || req.Expression == "" || req.Outcome == "" {
		respondError(w, http.StatusBadRequest, "set, name, expression and outcome are required", nil)
		return
	}

	rule := req.rule(req.ID)
	if rule.ID == "" {
		rule.ID = req.Set + "." + req.Name
	}

	// Add rule (this validates and compiles it)
	if err := s.engine().AddRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "failed to add rule", err)
		return
	}

	respondJSON(w, http.StatusCreated, rule)
}

// Get rule handler
func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleId")

	rule, err := s.engine().Rule(ruleID)
	if err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

// Update rule handler
func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleId")

	if _, err := s.engine().Rule(ruleID); err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}

	var req RuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Set == "" || req.Expression == "" || req.Outcome == "" {
		respondError(w, http.StatusBadRequest, "set, expression and outcome are required", nil)
		return
	}

	rule := req.rule(ruleID)
	if err := s.engine().UpdateRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "failed to update rule", err)
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

// Delete rule handler
func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleId")

	if err := s.engine().DeleteRule(ruleID); err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reload rules handler
func (s *Server) handleReloadRules(w http.ResponseWriter, r *http.Request) {
	if err := s.engine().Reload(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "failed to reload rules", err)
		return
	}

	active, err := s.engine().ActiveRules()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rules", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "reloaded",
		"activeRules": len(active),
	})
}

func (s *Server) engine() *rules.Engine {
	return s.assistant.Classifier().Engine()
}

// List conversations handler
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ConversationsListResponse{
		Conversations: s.manager.List(),
	})
}

// Create conversation handler
func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	session := s.manager.Create()
	logger.Debug("conversation created", "id", session.ID)

	respondJSON(w, http.StatusCreated, ConversationResponse{
		ID:      session.ID,
		Welcome: newMessageResponse(session.Welcome()),
	})
}

// Delete conversation handler
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")

	if err := s.manager.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, "conversation not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Send message handler
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")

	session, err := s.manager.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "conversation not found", err)
		return
	}

	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	turn, err := session.TrySubmit(r.Context(), req.Text)
	switch {
	case errors.Is(err, conversation.ErrEmptyUtterance):
		respondError(w, http.StatusBadRequest, "text is required", nil)
		return
	case errors.Is(err, conversation.ErrTurnInProgress):
		respondError(w, http.StatusConflict, "conversation is busy", err)
		return
	case err != nil:
		// cancelled during the delay; the timeout middleware answers 504 on deadline
		logger.Debug("turn abandoned", "id", id, "error", err)
		return
	}

	respondJSON(w, http.StatusOK, newMessageResponse(turn))
}

// History handler
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")

	session, err := s.manager.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "conversation not found", err)
		return
	}

	respondJSON(w, http.StatusOK, session.Context())
}

func newMessageResponse(turn conversation.Turn) MessageResponse {
	replies := turn.QuickReplies
	if replies == nil {
		replies = []string{}
	}
	return MessageResponse{
		Intent:       turn.Intent,
		Message:      turn.Message,
		Text:         render.Text(turn.Response.Document),
		QuickReplies: replies,
	}
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	switch {
	case status >= 500:
		logger.ErrorHttp5xx()
		logger.Error(message, "status", status, "error", err)
	case status >= 400:
		logger.WarnHttp4xx(status)
	}

	response := ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	respondJSON(w, status, response)
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	if err := logger.Setup(ctx, logger.Options{
		Level:           cfg.LogLevel,
		ErrorSampleRate: cfg.ErrorSampleRate,
		OTELEnabled:     cfg.OTELEnabled,
		ServiceName:     cfg.OTELServiceName,
	}); err != nil {
		logger.Fatal("failed to set up logging", "error", err)
	}

	a, err := app.New(ctx, cfg, conversation.WithObserver(metrics.TurnObserver{}))
	if err != nil {
		logger.Fatal("failed to start assistant", "error", err)
	}
	defer a.Close()

	server := NewServerWithDeps(a.DB, a.Assistant, cfg.RequestTimeout)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		logger.Info("server starting", "port", cfg.Port, "dataset", cfg.DatasetSource, "rules", cfg.RulesSource)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := logger.Shutdown(shutdownCtx); err != nil {
		logger.Error("logger shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
