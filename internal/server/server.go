package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agenthands/lineage/internal/config"
	"github.com/agenthands/lineage/internal/core"
	"github.com/agenthands/lineage/internal/driver"
	"github.com/agenthands/lineage/internal/gedcom"
	"github.com/agenthands/lineage/internal/llm"
	"github.com/agenthands/lineage/internal/logging"
	"github.com/agenthands/lineage/internal/metrics"
	"github.com/agenthands/lineage/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Server struct {
	Lineage *core.Lineage
	logger  zerolog.Logger
	closers []func(context.Context) error
}

func NewServer(l *core.Lineage) *Server {
	return &Server{Lineage: l, logger: logging.GetLogger("server")}
}

// Open wires a Server from cfg. The graph database is optional: when it is
// not configured or not reachable, export endpoints answer 503.
func Open(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger := logging.GetLogger("server")

	storeCfg := store.InMemoryConfig()
	if !cfg.Store.InMemory {
		storeCfg = store.DefaultConfig(cfg.Store.Path)
	}
	storeLogger := logging.GetLogger("store")
	storeCfg.Logger = &storeLogger
	st, err := store.Open(storeCfg)
	if err != nil {
		return nil, err
	}
	closers := []func(context.Context) error{func(context.Context) error { return st.Close() }}

	var graph driver.GraphDriver
	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			logger.Warn().Err(err).Msg("graph database unavailable, export disabled")
		} else {
			if err := d.BuildIndices(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to build indices")
			}
			graph = d
			closers = append(closers, d.Close)
		}
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if g, ok := llmClient.(*llm.GeminiClient); ok {
		closers = append(closers, func(context.Context) error { return g.Close() })
	}

	l, err := core.NewLineage(st, graph, llmClient, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	s := NewServer(l)
	s.closers = closers
	return s, nil
}

func (s *Server) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	sessions := r.Group("/sessions")
	sessions.POST("", s.CreateSession)
	sessions.GET("", s.ListSessions)
	sessions.GET("/:id", s.GetSession)
	sessions.DELETE("/:id", s.DeleteSession)
	sessions.PUT("/:id/tree", s.PutTree)
	sessions.PUT("/:id/matches", s.PutMatches)
	sessions.GET("/:id/analysis", s.Analyze)
	sessions.GET("/:id/individuals", s.FindIndividuals)
	sessions.GET("/:id/individuals/:pid/ancestors", s.Ancestors)
	sessions.POST("/:id/export", s.Export)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

type ContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// IndividualQuery is the query string of an individual search.
type IndividualQuery struct {
	Name string `form:"name" binding:"required"`
}

type SessionResponse struct {
	ID         string    `json:"id"`
	HasTree    bool      `json:"hasTree"`
	HasMatches bool      `json:"hasMatches"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func sessionResponse(sess *store.Session) SessionResponse {
	return SessionResponse{
		ID:         sess.ID,
		HasTree:    sess.TreeSource != "",
		HasMatches: sess.MatchSource != "",
		CreatedAt:  sess.CreatedAt,
		UpdatedAt:  sess.UpdatedAt,
	}
}

func (s *Server) CreateSession(c *gin.Context) {
	sess, err := s.Lineage.CreateSession(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(sess))
}

func (s *Server) ListSessions(c *gin.Context) {
	sessions, err := s.Lineage.Sessions(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sessionResponse(sess))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

func (s *Server) GetSession(c *gin.Context) {
	sess, err := s.Lineage.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (s *Server) DeleteSession(c *gin.Context) {
	if err := s.Lineage.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) PutTree(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	stats, err := s.Lineage.SetTree(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) PutMatches(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	n, err := s.Lineage.SetMatches(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": n})
}

func (s *Server) Analyze(c *gin.Context) {
	opts := core.AnalyzeOptions{
		Clusters: queryBool(c, "clusters"),
		Notes:    queryBool(c, "notes"),
	}

	analysis, err := s.Lineage.Analyze(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// FindIndividuals lists the individuals ?name= resolves to, in the order an
// analysis would consider them.
func (s *Server) FindIndividuals(c *gin.Context) {
	var q IndividualQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	people, err := s.Lineage.FindIndividuals(c.Request.Context(), c.Param("id"), q.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"individuals": people})
}

// Ancestors reads from the stored tree, or from the graph database when
// ?source=graph is given.
func (s *Server) Ancestors(c *gin.Context) {
	ctx := c.Request.Context()
	id, pid := c.Param("id"), c.Param("pid")

	var (
		people any
		err    error
	)
	if c.Query("source") == "graph" {
		people, err = s.Lineage.GraphAncestors(ctx, id, pid)
	} else {
		people, err = s.Lineage.Ancestors(ctx, id, pid)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ancestors": people})
}

func (s *Server) Export(c *gin.Context) {
	n, err := s.Lineage.ExportTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": n})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrSessionNotFound), errors.Is(err, core.ErrPersonNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNoTree), errors.Is(err, core.ErrNoMatches):
		return http.StatusConflict
	case errors.Is(err, gedcom.ErrTooManyRecords):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrNoGraph), errors.Is(err, core.ErrNoLLM):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.DefaultQuery(key, "false"))
	return err == nil && v
}
