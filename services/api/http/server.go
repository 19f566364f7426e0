package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/locate"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/log"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
	"github.com/02loveslollipop/polar-ec-dashboard/services/api/config"
)

// Server bundles router and dependencies for the dashboard API.
type Server struct {
	cfg     config.Config
	cache   *dataset.Cache
	engine  *gin.Engine
	metrics *metrics
}

// New constructs a server with routes and middleware. Every dataset load
// made through cache is recorded in the server's metrics.
func New(cfg config.Config, cache *dataset.Cache) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(corsMiddleware())

	server := &Server{
		cfg:     cfg,
		cache:   cache,
		engine:  engine,
		metrics: newMetrics(prometheus.NewRegistry()),
	}
	cache.OnLoad = server.observeLoad

	// Health and metrics stay reachable without the bearer token.
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(server.metrics.registry, promhttp.HandlerOpts{})))

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server.registerV1Routes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// snapshot returns the current dataset, answering 503 itself when the load
// failed. The boolean is false when the handler must stop.
func (s *Server) snapshot(c *gin.Context) (dataset.Snapshot, bool) {
	snap, err := s.cache.Get()
	if err == nil {
		return snap, true
	}

	body := gin.H{"error": err.Error()}
	var loadErr *dataset.LoadError
	if errors.As(err, &loadErr) {
		body["kind"] = loadErr.Kind
	}
	c.JSON(http.StatusServiceUnavailable, body)
	return dataset.Snapshot{}, false
}

// condition resolves the :condition path parameter against the loaded
// dataset, answering 404 when it is unknown.
func (s *Server) condition(c *gin.Context, ds *dataset.Dataset) (model.Condition, bool) {
	name := locate.Normalize(strings.TrimSpace(c.Param("condition")))
	for _, cond := range ds.Conditions {
		if cond.Name == name {
			return cond, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown condition"})
	return model.Condition{}, false
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"size", c.Writer.Size(),
			"remote_addr", c.ClientIP(),
		)
	}
}
