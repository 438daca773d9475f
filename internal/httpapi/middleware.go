package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const (
	requestIDHeader = "X-Request-ID"

	userValueRequestID = "requestID"
	userValueUserID    = "userID"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	userIDKey    ctxKey = "userID"
)

// withMiddlewares assigns a request id, recovers panics and logs every
// request with its outcome.
func (s *Server) withMiddlewares(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		reqID := string(ctx.Request.Header.Peek(requestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx.SetUserValue(userValueRequestID, reqID)
		ctx.Response.Header.Set(requestIDHeader, reqID)

		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(s.requestContext(ctx), "panic while serving request", "panic", p)
				writeDetail(ctx, fasthttp.StatusInternalServerError, "Internal server error")
			}
			s.logger.Info(s.requestContext(ctx), "request",
				"method", string(ctx.Method()),
				"path", string(ctx.Path()),
				"status", ctx.Response.StatusCode(),
				"duration", time.Since(start),
			)
		}()

		next(ctx)
	}
}

// authenticated resolves the bearer token and stores the user id on the
// request before calling next.
func (s *Server) authenticated(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		header := string(ctx.Request.Header.Peek(common.AuthorizationHeaderName))
		token, ok := cutBearer(header)
		if !ok || token == "" {
			writeUnauthorized(ctx, "Not authenticated")
			return
		}

		userID, err := s.auth.Resolve(token)
		if err != nil {
			s.logger.Debug(s.requestContext(ctx), "token rejected", "error", err)
			writeUnauthorized(ctx, "Could not validate credentials")
			return
		}

		ctx.SetUserValue(userValueUserID, userID)
		next(ctx)
	}
}

func cutBearer(header string) (string, bool) {
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(common.BearerPrefix):]), true
}

// requestContext derives a context for downstream calls. fasthttp does not
// carry a cancellable context per request, so it starts from the server's
// base context and carries the request and user ids.
func (s *Server) requestContext(ctx *fasthttp.RequestCtx) context.Context {
	c := s.baseCtx
	if v, ok := ctx.UserValue(userValueRequestID).(string); ok {
		c = context.WithValue(c, requestIDKey, v)
	}
	if v, ok := ctx.UserValue(userValueUserID).(string); ok {
		c = context.WithValue(c, userIDKey, v)
	}
	return c
}

func userIDFrom(ctx *fasthttp.RequestCtx) string {
	v, _ := ctx.UserValue(userValueUserID).(string)
	return v
}

// RequestID returns the request id stored by the middleware, if any.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// UserID returns the authenticated user id stored by the middleware, if any.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}
