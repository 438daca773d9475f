package httpapi

import (
	"github.com/dmitrijs2005/interviewkeeper/internal/interviews"
	"github.com/valyala/fasthttp"
)

type createdResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateInterview(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	payload := map[string]any{}
	if err := parseBody(ctx, &payload); err != nil {
		s.writeError(ctx, stdCtx, "Invalid request body", err)
		return
	}

	id, err := s.interviews.CreateInterview(stdCtx, userIDFrom(ctx), payload)
	if err != nil {
		s.writeError(ctx, stdCtx, "Failed to create interview", err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListInterviews(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	list, err := s.interviews.ListInterviews(stdCtx, userIDFrom(ctx))
	if err != nil {
		s.writeError(ctx, stdCtx, "Failed to list interviews", err)
		return
	}

	out := make([]interviews.Summary, 0, len(list))
	for _, iv := range list {
		out = append(out, iv.Summary())
	}
	writeOK(ctx, out)
}

// ownedInterview loads the interview named in the path if it belongs to the
// caller. It writes the error response itself and returns nil on failure.
func (s *Server) ownedInterview(ctx *fasthttp.RequestCtx) *interviews.Interview {
	stdCtx := s.requestContext(ctx)

	id, err := pathParam(ctx, "id")
	if err != nil {
		s.writeError(ctx, stdCtx, "Invalid interview id", err)
		return nil
	}

	iv, err := s.interviews.GetOwnedInterview(stdCtx, userIDFrom(ctx), id)
	if err != nil {
		s.writeError(ctx, stdCtx, "Interview not found", err)
		return nil
	}
	return iv
}

func (s *Server) handleGetInterview(ctx *fasthttp.RequestCtx) {
	iv := s.ownedInterview(ctx)
	if iv == nil {
		return
	}
	writeOK(ctx, iv)
}

func (s *Server) handleUpdateInterview(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	patch := map[string]any{}
	if err := parseBody(ctx, &patch); err != nil {
		s.writeError(ctx, stdCtx, "Invalid request body", err)
		return
	}

	iv := s.ownedInterview(ctx)
	if iv == nil {
		return
	}

	updated, err := s.interviews.UpdateInterview(stdCtx, iv.ID, patch)
	if err != nil {
		s.writeError(ctx, stdCtx, "Failed to update interview", err)
		return
	}
	writeOK(ctx, updated)
}

func (s *Server) handleAppendTranscript(ctx *fasthttp.RequestCtx) {
	stdCtx := s.requestContext(ctx)

	var entry interviews.TranscriptEntry
	if err := parseBody(ctx, &entry); err != nil {
		s.writeError(ctx, stdCtx, "Invalid request body", err)
		return
	}

	iv := s.ownedInterview(ctx)
	if iv == nil {
		return
	}

	updated, err := s.interviews.AppendTranscriptEntry(stdCtx, iv.ID, entry)
	if err != nil {
		s.writeError(ctx, stdCtx, "Failed to append transcript entry", err)
		return
	}
	writeOK(ctx, updated)
}
