// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qaboard/src/app/http/handler"
	"qaboard/src/app/http/response"
	"qaboard/src/app/middleware"
	"qaboard/src/core/ports"
	"qaboard/src/core/usecase"
	"qaboard/src/infra/config"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	healthHandler   *handler.HealthHandler
	questionHandler *handler.QuestionHandler
	answerHandler   *handler.AnswerHandler
}

// New creates a Server with services and handlers built over the given
// repositories. The question repository doubles as the health probe.
func New(cfg *config.Config, log *slog.Logger, questions ports.QuestionRepository, answers ports.AnswerRepository) *Server {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:             cfg,
		log:             log,
		router:          gin.New(),
		healthHandler:   handler.NewHealthHandler(usecase.NewHealthService(questions, log)),
		questionHandler: handler.NewQuestionHandler(usecase.NewQuestionService(questions, log)),
		answerHandler:   handler.NewAnswerHandler(usecase.NewAnswerService(answers, log)),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware. Recovery goes first so it
// sees panics from everything after it.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Metrics())
	s.router.Use(middleware.Logging(s.log))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	questions := s.router.Group("/questions")
	{
		questions.GET("", s.questionHandler.List)
		questions.POST("", s.questionHandler.Create)
		questions.GET("/search", s.questionHandler.Search)
		questions.GET("/:question_id", s.questionHandler.Get)
		questions.PUT("/:question_id", s.questionHandler.Update)
		questions.DELETE("/:question_id", s.questionHandler.Delete)

		questions.GET("/:question_id/answers", s.answerHandler.List)
		questions.POST("/:question_id/answers", s.answerHandler.Create)
		questions.DELETE("/:question_id/answers", s.questionHandler.DeleteAnswers)

		questions.POST("/:question_id/vote", s.questionHandler.Vote)
		questions.GET("/:question_id/score", s.questionHandler.Score)
	}

	answers := s.router.Group("/answers")
	{
		answers.POST("/:answer_id/vote", s.answerHandler.Vote)
		answers.GET("/:answer_id/score", s.answerHandler.Score)
	}

	s.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "The requested resource was not found", middleware.GetRequestID(c))
	})
}

func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server", "addr", s.cfg.Server.Addr())
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown requested", "cause", context.Cause(ctx))
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
