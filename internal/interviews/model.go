package interviews

import (
	"fmt"
	"maps"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
)

type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAI
}

// TranscriptEntry is one dialogue turn. AudioURL is opaque and never
// dereferenced here. Keys without a field of their own are kept in Extra.
type TranscriptEntry struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	AudioURL  string `json:"audioUrl,omitempty"`

	Extra map[string]any `json:"-"`
}

var entryFields = []string{"role", "content", "timestamp", "audioUrl"}

func (e TranscriptEntry) MarshalJSON() ([]byte, error) {
	type plain TranscriptEntry
	return marshalWithExtra(plain(e), e.Extra)
}

func (e *TranscriptEntry) UnmarshalJSON(b []byte) error {
	type plain TranscriptEntry
	var p plain
	extra, err := unmarshalWithExtra(b, &p, entryFields)
	if err != nil {
		return err
	}
	*e = TranscriptEntry(p)
	e.Extra = extra
	return nil
}

func (e TranscriptEntry) validate() error {
	if !e.Role.Valid() {
		return fmt.Errorf("%w: transcript role must be %q or %q, got %q", common.ErrorInvalidArgument, RoleUser, RoleAI, e.Role)
	}
	return nil
}

// Interview is the typed view of a stored interview. Top-level keys set by
// UpdateInterview that have no field of their own are kept in Extra and are
// written back out next to the known fields.
type Interview struct {
	ID                   string            `json:"id"`
	UserID               string            `json:"user_id"`
	CreatedAt            string            `json:"created_at"`
	Mode                 string            `json:"mode"`
	Setup                any               `json:"setup"`
	LastQuestion         *string           `json:"last_question,omitempty"`
	LastQuestionAudioURL *string           `json:"last_question_audio_url,omitempty"`
	Transcript           []TranscriptEntry `json:"transcript"`

	Extra map[string]any `json:"-"`
}

var interviewFields = []string{
	"id", "user_id", "created_at", "mode", "setup",
	"last_question", "last_question_audio_url", "transcript",
}

func (i Interview) MarshalJSON() ([]byte, error) {
	type plain Interview
	return marshalWithExtra(plain(i), i.Extra)
}

func (i *Interview) UnmarshalJSON(b []byte) error {
	type plain Interview
	var p plain
	extra, err := unmarshalWithExtra(b, &p, interviewFields)
	if err != nil {
		return err
	}
	*i = Interview(p)
	i.Extra = extra
	return nil
}

// marshalWithExtra encodes v and adds the extra keys. Fields of v win over
// extra keys of the same name.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return records.Codec.Marshal(v)
	}
	known := map[string]any{}
	if err := records.Convert(v, &known); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(extra)+len(known))
	maps.Copy(out, extra)
	maps.Copy(out, known)
	return records.Codec.Marshal(out)
}

// unmarshalWithExtra decodes b into dst and returns the keys of b that are
// not listed in fields, or nil when there are none.
func unmarshalWithExtra(b []byte, dst any, fields []string) (map[string]any, error) {
	if err := records.Codec.Unmarshal(b, dst); err != nil {
		return nil, err
	}
	all := map[string]any{}
	if err := records.Codec.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for _, f := range fields {
		delete(all, f)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// Summary is the listing view of an interview.
type Summary struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Mode      string `json:"mode"`
	Turns     int    `json:"turns"`
}

func (i *Interview) Summary() Summary {
	return Summary{ID: i.ID, CreatedAt: i.CreatedAt, Mode: i.Mode, Turns: len(i.Transcript)}
}

const (
	fieldCreatedAt  = "created_at"
	fieldTranscript = "transcript"
)

// fromRecord decodes a stored interview. A record that does not fit the
// interview shape is reported as common.ErrorInvalidArgument.
func fromRecord(rec records.Record) (*Interview, error) {
	var iv Interview
	if err := records.Convert(rec, &iv); err != nil {
		return nil, fmt.Errorf("%w: malformed interview: %w", common.ErrorInvalidArgument, err)
	}
	if iv.Transcript == nil {
		iv.Transcript = []TranscriptEntry{}
	}
	for _, e := range iv.Transcript {
		if err := e.validate(); err != nil {
			return nil, err
		}
	}
	return &iv, nil
}

func entryRecord(e TranscriptEntry) (map[string]any, error) {
	out := map[string]any{}
	if err := records.Convert(e, &out); err != nil {
		return nil, err
	}
	return out, nil
}
