// Package server exposes the Socratic dialogue over HTTP: a small embedded
// web page, a few JSON endpoints, and a server-sent-events stream of dialogue
// snapshots.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	sofa "github.com/darth-dodo/socratic-sofa"
	"github.com/darth-dodo/socratic-sofa/moderation"
	"github.com/darth-dodo/socratic-sofa/topics"

	_ "embed"
)

//go:embed index.html
var indexPage []byte

// DialogueRunner produces the snapshot stream for one dialogue request.
type DialogueRunner interface {
	Run(ctx context.Context, req sofa.Request) <-chan sofa.Snapshot
}

// Server wires the HTTP surface over the orchestrator and the topic catalog.
type Server struct {
	runner  DialogueRunner
	catalog *topics.Catalog
	logger  *logrus.Logger
	engine  *gin.Engine
}

// New builds the HTTP server.
func New(runner DialogueRunner, catalog *topics.Catalog, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		runner:  runner,
		catalog: catalog,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.GET("/topics", s.handleTopics)
	api.GET("/guidelines", s.handleGuidelines)
	api.GET("/suggestions", s.handleSuggestions)
	api.GET("/dialogue/stream", s.handleDialogueStream)
}

// Handler returns the http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.WithField("addr", addr).Info("http server listening")
	return s.engine.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTopics(c *gin.Context) {
	labels := append([]string{topics.AIChoiceLabel}, s.catalog.All()...)
	c.JSON(http.StatusOK, gin.H{
		"topics":     labels,
		"categories": s.catalog.Categories(),
	})
}

func (s *Server) handleGuidelines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"guidelines": moderation.Guidelines()})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"suggestions": moderation.Suggestions(c.Query("topic")),
	})
}
