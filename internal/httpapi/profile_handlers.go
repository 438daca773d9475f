package httpapi

import (
	"unicode/utf8"

	"github.com/valyala/fasthttp"
)

// profileLimits bounds the length, in characters, of each text field.
var profileLimits = map[string]int{
	"name":   200,
	"email":  320,
	"status": 100,
	"role":   200,
	"notes":  2000,
}

// validateProfilePayload rejects known fields of the wrong type or length.
// Unknown fields are ignored by the merge and are not checked.
func validateProfilePayload(payload map[string]any) error {
	for field, limit := range profileLimits {
		v, ok := payload[field]
		if !ok || v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return invalid("%s must be a string", field)
		}
		if utf8.RuneCountInString(str) > limit {
			return invalid("%s must be at most %d characters", field, limit)
		}
	}
	if v, ok := payload["avatarData"]; ok && v != nil {
		if _, ok := v.(string); !ok {
			return invalid("avatarData must be a string or null")
		}
	}
	return nil
}

func (s *Server) handleGetProfile(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	p, err := s.profiles.GetProfile(stdCtx, userIDFrom(ctx))
	if err != nil {
		s.writeError(ctx, stdCtx, "Failed to load profile", err)
		return
	}

	writeOK(ctx, p)
}

func (s *Server) handleUpdateProfile(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	payload := map[string]any{}
	if err := parseBody(ctx, &payload); err != nil {
		s.writeError(ctx, stdCtx, "Invalid request body", err)
		return
	}
	if err := validateProfilePayload(payload); err != nil {
		s.writeError(ctx, stdCtx, "Invalid profile", err)
		return
	}

	p, err := s.profiles.UpdateProfile(stdCtx, userIDFrom(ctx), payload)
	if err != nil {
		s.writeError(ctx, stdCtx, "Failed to save profile", err)
		return
	}

	writeOK(ctx, p)
}
