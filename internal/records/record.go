package records

import (
	"fmt"

	json "github.com/bytedance/sonic"
)

// Kind names a record family. Keys are unique within a kind.
type Kind string

const (
	KindUser      Kind = "user"
	KindProfile   Kind = "profile"
	KindInterview Kind = "interview"
)

// Field names the store itself looks at.
const (
	FieldID     = "id"
	FieldUserID = "user_id"
)

// Codec is the JSON API used for record bodies and request payloads.
// Integers decoded into interface values stay int64, so numbers inside
// schema-less fields such as an interview setup round-trip without loss.
var Codec = json.Config{UseInt64: true}.Froze()

// Record is a schema-less structured value stored verbatim.
type Record map[string]any

// Clone returns a shallow copy. Nested values are shared.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the string stored under key, or "" when it is absent or not a
// string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// ownerOf returns the user owning a record: its user_id field when set,
// otherwise the record key itself (users and profiles are keyed by user id).
func ownerOf(id string, r Record) string {
	if owner := r.String(FieldUserID); owner != "" {
		return owner
	}
	return id
}

// Encode serializes a record into the body column.
func Encode(r Record) (string, error) {
	if r == nil {
		r = Record{}
	}
	s, err := Codec.MarshalToString(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	return s, nil
}

// Decode parses a body column back into a record.
func Decode(body string) (Record, error) {
	r := Record{}
	if body == "" {
		return r, nil
	}
	if err := Codec.UnmarshalFromString(body, &r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return r, nil
}

// Convert re-encodes a record into a typed value (or a typed value into
// another shape) through its JSON form.
func Convert(src any, dst any) error {
	b, err := Codec.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	if err := Codec.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}
