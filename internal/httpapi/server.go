// Package httpapi exposes the profile and interview services over HTTP.
//
// Every route except /api/health and /auth/* requires a bearer access token.
// The authenticated user id is the only identity the services ever see.
package httpapi

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/auth"
	"github.com/dmitrijs2005/interviewkeeper/internal/interviews"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/profiles"
	"github.com/valyala/fasthttp"
)

type AuthService interface {
	Signup(ctx context.Context, userID, password string) (*auth.Token, error)
	Login(ctx context.Context, userID, password string) (*auth.Token, error)
	Resolve(token string) (string, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (profiles.Profile, error)
	UpdateProfile(ctx context.Context, userID string, payload map[string]any) (profiles.Profile, error)
}

type InterviewService interface {
	CreateInterview(ctx context.Context, userID string, payload map[string]any) (string, error)
	UpdateInterview(ctx context.Context, id string, patch map[string]any) (*interviews.Interview, error)
	AppendTranscriptEntry(ctx context.Context, id string, entry interviews.TranscriptEntry) (*interviews.Interview, error)
	GetOwnedInterview(ctx context.Context, userID, id string) (*interviews.Interview, error)
	ListInterviews(ctx context.Context, userID string) ([]*interviews.Interview, error)
}

const (
	shutdownTimeout    = 10 * time.Second
	maxRequestBodySize = 8 << 20
)

type Server struct {
	address    string
	auth       AuthService
	profiles   ProfileService
	interviews InterviewService
	logger     logging.Logger

	// baseCtx is the parent of every request context. It outlives
	// cancellation of the Run context so in-flight requests can finish.
	baseCtx context.Context
}

func NewServer(addr string, l logging.Logger, a AuthService, p ProfileService, iv InterviewService) *Server {
	return &Server{
		address:    addr,
		auth:       a,
		profiles:   p,
		interviews: iv,
		logger:     l.With("module", "http_server"),
		baseCtx:    context.Background(),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.baseCtx = context.WithoutCancel(ctx)

	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "interviewkeeper",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxRequestBodySize: maxRequestBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(s.baseCtx, shutdownTimeout)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
