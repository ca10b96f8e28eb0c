// Package httpapi exposes the backend over REST/JSON with gin. Routes live
// under /api; error bodies are {"erro": "..."}.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/server/models"
	"github.com/dmitrijs2005/tempero/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is the part of services.UserService the handlers use.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

// PostService is the part of services.PostService the handlers use.
type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Create(ctx context.Context, authorID string, in services.PostInput) (*models.Post, error)
	Update(ctx context.Context, userID, id, title, content string) (*models.Post, error)
	Delete(ctx context.Context, userID, id string) error
}

type HTTPServer struct {
	address string
	users   UserService
	posts   PostService
	logger  logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, us UserService, ps PostService) *HTTPServer {
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		posts:   ps,
	}
}

// Handler builds the gin engine with every route registered.
func (s *HTTPServer) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors())

	api := r.Group("/api")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	newUserHandler(s.users, s.logger).RegisterRoutes(api.Group("/usuarios"))
	newPostHandler(s.posts, s.logger).RegisterRoutes(api.Group("/posts"), s.authMiddleware())

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
