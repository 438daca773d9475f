package httpapi

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// Handler returns the routed request handler wrapped in the middleware chain.
func (s *Server) Handler() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/api/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		_, _ = ctx.Write([]byte("OK"))
	})

	r.POST("/auth/signup", s.handleSignup)
	r.POST("/auth/login", s.handleLogin)

	r.GET("/profile", s.authenticated(s.handleGetProfile))
	r.PUT("/profile", s.authenticated(s.handleUpdateProfile))

	r.POST("/interviews", s.authenticated(s.handleCreateInterview))
	r.GET("/interviews", s.authenticated(s.handleListInterviews))
	r.GET("/interviews/{id}", s.authenticated(s.handleGetInterview))
	r.PATCH("/interviews/{id}", s.authenticated(s.handleUpdateInterview))
	r.POST("/interviews/{id}/transcript", s.authenticated(s.handleAppendTranscript))

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		writeDetail(ctx, fasthttp.StatusNotFound, "Not Found")
	}
	r.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		writeDetail(ctx, fasthttp.StatusMethodNotAllowed, "Method Not Allowed")
	}

	return s.withMiddlewares(r.Handler)
}
