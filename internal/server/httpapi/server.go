// Package httpapi exposes the task-list service over HTTP using chi.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/logging"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

type userService interface {
	Register(ctx context.Context, userName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type taskService interface {
	Create(ctx context.Context, ownerID, title string) (*models.Task, error)
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	UpdateCompleted(ctx context.Context, ownerID, taskID string, completed bool) (*models.Task, error)
}

type tokenVerifier interface {
	Verify(token string) (string, error)
}

type HTTPServer struct {
	address         string
	logger          logging.Logger
	users           userService
	tasks           taskService
	tokens          tokenVerifier
	validate        *validator.Validate
	shutdownTimeout time.Duration
	router          chi.Router
}

func NewHTTPServer(a string, l logging.Logger, us userService, ts taskService, tv tokenVerifier, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		tasks:           ts,
		tokens:          tv,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		shutdownTimeout: shutdownTimeout,
	}
	s.router = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", common.TokenHeaderName},
		MaxAge:         300,
	}))

	r.Get("/", s.handleHello)
	r.Post("/signup", s.handleSignup)
	r.Post("/signin", s.handleSignin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Post("/todo", s.handleCreateTask)
		r.Get("/todos", s.handleListTasks)
		r.Delete("/delete-todo/{id}", s.handleDeleteTask)
		r.Put("/update-todo/{id}", s.handleUpdateTask)
	})

	return r
}

// accessLog logs one line per request after it is served.
func (s *HTTPServer) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info(r.Context(), "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
