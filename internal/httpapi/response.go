package httpapi

import (
	"context"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"
	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
	"github.com/valyala/fasthttp"
)

type errorBody struct {
	Detail string `json:"detail"`
}

// validationError reports a well-formed request whose content is rejected.
// It is answered with 422.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is empty", common.ErrorInvalidArgument)
	}
	if err := records.Codec.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: malformed JSON body", common.ErrorInvalidArgument)
	}
	return nil
}

func pathParam(ctx *fasthttp.RequestCtx, key string) (string, error) {
	val := ctx.UserValue(key)
	if val == nil {
		return "", fmt.Errorf("%w: %s is required", common.ErrorInvalidArgument, key)
	}
	return fmt.Sprint(val), nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeOK(ctx *fasthttp.RequestCtx, v any) {
	writeJSON(ctx, fasthttp.StatusOK, v)
}

func writeDetail(ctx *fasthttp.RequestCtx, status int, detail string) {
	writeJSON(ctx, status, errorBody{Detail: detail})
}

func writeUnauthorized(ctx *fasthttp.RequestCtx, detail string) {
	ctx.Response.Header.Set("WWW-Authenticate", "Bearer")
	writeDetail(ctx, fasthttp.StatusUnauthorized, detail)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		return fasthttp.StatusUnprocessableEntity
	case errors.Is(err, common.ErrorInvalidArgument):
		return fasthttp.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return fasthttp.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return fasthttp.StatusConflict
	default:
		return fasthttp.StatusInternalServerError
	}
}

// writeError answers with the status statusFor picks. Client errors carry
// msg, or the error text itself for validation failures. Server errors are
// logged and answered with msg only.
func (s *Server) writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, msg string, err error) {
	status := statusFor(err)
	switch status {
	case fasthttp.StatusBadRequest, fasthttp.StatusUnprocessableEntity:
		writeDetail(ctx, status, err.Error())
	case fasthttp.StatusUnauthorized:
		writeUnauthorized(ctx, msg)
	case fasthttp.StatusInternalServerError:
		s.logger.Error(stdCtx, msg, "error", err)
		writeDetail(ctx, status, msg)
	default:
		writeDetail(ctx, status, msg)
	}
}
