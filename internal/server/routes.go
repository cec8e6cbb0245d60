package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bnfplay/internal/bnf"
	"bnfplay/internal/dot"
	"bnfplay/internal/envconfig"
	"bnfplay/internal/nfa"
)

type Server struct {
	log      *slog.Logger
	compiler *nfa.Compiler
	maxBody  int64
}

func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log:      log,
		compiler: nfa.NewCompiler(log),
		maxBody:  envconfig.MaxBody,
	}
}

type MatchRequest struct {
	Grammar string `json:"grammar" binding:"required"`
	Rule    string `json:"rule,omitempty"`
	Input   string `json:"input"`
}

type MatchResponse struct {
	Matched bool `json:"matched"`
}

type PathResponse struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
	Matcher string `json:"matcher"`
}

type SearchResponse struct {
	Paths   []PathResponse `json:"paths"`
	Covered bool           `json:"covered"`
}

type DotRequest struct {
	Grammar string `json:"grammar" binding:"required"`
	Rule    string `json:"rule,omitempty"`
	Title   string `json:"title,omitempty"`
	RankDir string `json:"rankdir,omitempty"`
}

func (s *Server) GenerateRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests(), s.limitBody())

	r.GET("/api/health", s.HealthHandler)
	r.POST("/api/match", s.MatchHandler)
	r.POST("/api/search", s.SearchHandler)
	r.POST("/api/dot", s.DotHandler)

	return r
}

func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) MatchHandler(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := s.program(req.Grammar, req.Rule)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, MatchResponse{Matched: p.Match(req.Input)})
}

func (s *Server) SearchHandler(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := s.program(req.Grammar, req.Rule)
	if err != nil {
		s.abort(c, err)
		return
	}

	paths := p.Search(req.Input)
	resp := SearchResponse{
		Paths:   make([]PathResponse, 0, len(paths)),
		Covered: nfa.Covers(paths, req.Input),
	}
	for _, path := range paths {
		resp.Paths = append(resp.Paths, PathResponse{
			Start:   path.Start,
			End:     path.End,
			Text:    path.Text(req.Input),
			Matcher: path.Matcher.String(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DotHandler(c *gin.Context) {
	var req DotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.RankDir {
	case "", dot.RankLR, dot.RankTB:
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "rankdir must be LR or TB"})
		return
	}

	p, err := s.program(req.Grammar, req.Rule)
	if err != nil {
		s.abort(c, err)
		return
	}

	var b bytes.Buffer
	if err := dot.Write(&b, p.Export(), dot.Options{Title: req.Title, RankDir: req.RankDir}); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", b.Bytes())
}

// program compiles grammar and narrows it to rule when one is given.
func (s *Server) program(grammar, rule string) (*nfa.Program, error) {
	g, err := bnf.Parse(grammar)
	if err != nil {
		return nil, err
	}
	p, err := s.compiler.Compile(g)
	if err != nil {
		return nil, err
	}
	if rule == "" {
		return p, nil
	}
	return p.SubProgram(rule)
}

func (s *Server) abort(c *gin.Context, err error) {
	var notFound *nfa.RuleNotFoundError
	if errors.As(err, &notFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.maxBody > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Serve runs the playground API on ln until ctx is cancelled.
func Serve(ctx context.Context, ln net.Listener, log *slog.Logger) error {
	if !envconfig.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := New(log)
	srvr := &http.Server{
		Handler: s.GenerateRoutes(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srvr.Serve(ln)
	}()

	s.log.Info("Listening on " + ln.Addr().String())
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srvr.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
