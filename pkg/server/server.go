// Package server exposes the tree pipeline over HTTP.
//
// # Routes
//
//	GET    /healthz                    liveness probe
//	GET    /version                    build information
//	GET    /sample                     download the bundled example schedule
//	POST   /datasets                   upload a CSV schedule (raw body or multipart "file")
//	GET    /datasets                   list uploaded schedules
//	DELETE /datasets/{id}              delete a schedule
//	GET    /datasets/{id}/codes        the first ?count codes of a schedule
//	GET    /datasets/{id}/tree         render the tree structure
//	GET    /datasets/{id}/inorder      render the in-order traversal
//	GET    /datasets/{id}/search       render the search path to ?code
//
// The render routes accept ?count, ?format (default json), ?spread and
// ?graphviz=true. With format=json the response is the pipeline result with
// the drawn scene embedded; other formats return the artifact itself and
// report the outcome in X-Flighttree-* headers.
//
// Errors are JSON objects {"code": ..., "message": ...}. A search whose
// target is absent is not an error: it returns 200 with found=false.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/pipeline"
)

// DefaultMaxUploadBytes bounds the size of an uploaded schedule.
const DefaultMaxUploadBytes = 10 << 20

const (
	readHeaderTimeout = 10 * time.Second
	requestTimeout    = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// SamplePath is the example schedule served by /sample.
	SamplePath string

	// MaxUploadBytes bounds uploads; 0 uses DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

// Server handles HTTP requests. It keeps no state besides the dataset store.
type Server struct {
	store  *dataset.Store
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
}

// New creates a server. A nil logger uses log.Default().
func New(store *dataset.Store, runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Server{store: store, runner: runner, logger: logger, opts: opts}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/sample", s.handleSample)

	r.Route("/datasets", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDelete)
			r.Get("/codes", s.handleCodes)
			r.Get("/tree", s.handleRender(pipeline.ActionStructure))
			r.Get("/inorder", s.handleRender(pipeline.ActionInOrder))
			r.Get("/search", s.handleRender(pipeline.ActionSearch))
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
