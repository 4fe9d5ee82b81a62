// Package api exposes the solve service over HTTP with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Controller registers its routes on a versioned group.
type Controller interface {
	Register(*gin.RouterGroup)
}

// DefaultShutdownTimeout bounds how long Serve waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Router manages the HTTP server and its controllers.
type Router struct {
	addr            string
	baseURL         string
	controllers     []Controller
	log             *logrus.Logger
	shutdownTimeout time.Duration
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr            string // Address to listen on
	BaseURL         string // Base URL for API routes
	Controllers     []Controller
	Logger          *logrus.Logger
	ShutdownTimeout time.Duration // zero means DefaultShutdownTimeout
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	log := config.Logger
	if log == nil {
		log = logrus.New()
	}
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	return &Router{
		addr:            config.Addr,
		baseURL:         config.BaseURL,
		controllers:     config.Controllers,
		log:             log,
		shutdownTimeout: timeout,
	}
}

// Handler builds the gin engine with every controller mounted under
// <baseURL>/v1.
func (r *Router) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), r.requestLogger())

	api := router.Group(r.baseURL)
	{
		v1 := api.Group("/v1")
		for _, c := range r.controllers {
			c.Register(v1)
		}
	}

	return router
}

// Run listens on the configured address and serves until ctx is done.
func (r *Router) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.addr)
	if err != nil {
		return fmt.Errorf("api: listen %s: %w", r.addr, err)
	}

	return r.Serve(ctx, ln)
}

// Serve answers requests on ln until ctx is done, then shuts down
// gracefully: ln is closed and in-flight requests get the shutdown timeout
// to finish. A clean shutdown returns nil.
func (r *Router) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	r.log.WithField("addr", ln.Addr().String()).Info("listening")

	select {
	case err := <-errc:
		return fmt.Errorf("api: serve: %w", err)
	case <-ctx.Done():
	}

	r.log.WithField("timeout", r.shutdownTimeout).Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: serve: %w", err)
	}

	return nil
}

// requestLogger tags each request with an id and logs it once done.
func (r *Router) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Header("X-Request-ID", id)

		start := time.Now()
		ctx.Next()

		r.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     ctx.Request.Method,
			"path":       ctx.FullPath(),
			"status":     ctx.Writer.Status(),
			"elapsed":    time.Since(start),
		}).Debug("request")
	}
}
