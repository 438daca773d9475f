package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/valyala/fasthttp"
)

type credentials struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

func readCredentials(ctx *fasthttp.RequestCtx) (credentials, error) {
	var c credentials
	if err := parseBody(ctx, &c); err != nil {
		return c, err
	}
	c.UserID = strings.TrimSpace(c.UserID)
	if c.UserID == "" || c.Password == "" {
		return c, fmt.Errorf("%w: userId and password are required", common.ErrorInvalidArgument)
	}
	return c, nil
}

func (s *Server) handleSignup(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	c, err := readCredentials(ctx)
	if err != nil {
		s.writeError(ctx, stdCtx, "Invalid request body", err)
		return
	}

	token, err := s.auth.Signup(stdCtx, c.UserID, c.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.writeError(ctx, stdCtx, "User already exists", err)
			return
		}
		s.writeError(ctx, stdCtx, "Failed to create user", err)
		return
	}

	writeOK(ctx, token)
}

func (s *Server) handleLogin(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	c, err := readCredentials(ctx)
	if err != nil {
		s.writeError(ctx, stdCtx, "Invalid request body", err)
		return
	}

	token, err := s.auth.Login(stdCtx, c.UserID, c.Password)
	if err != nil {
		s.writeError(ctx, stdCtx, "Invalid user id or password", err)
		return
	}

	writeOK(ctx, token)
}
