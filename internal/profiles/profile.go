// Package profiles materializes per-user profile records.
//
// A profile is always returned with its full field set. Stored data is an
// overlay on top of Default, and the same Merge function is applied on the
// read path and on the write path.
package profiles

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/records"
)

// DefaultStatus is the status of a candidate nobody has touched yet
// (document screening).
const DefaultStatus = "書類選考"

const (
	fieldName       = "name"
	fieldEmail      = "email"
	fieldStatus     = "status"
	fieldRole       = "role"
	fieldNotes      = "notes"
	fieldAvatarData = "avatarData"
	fieldUpdatedAt  = "updated_at"
)

type Profile struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Status     string  `json:"status"`
	Role       string  `json:"role"`
	Notes      string  `json:"notes"`
	AvatarData *string `json:"avatarData"`

	UpdatedAt time.Time `json:"-"`
}

func Default() Profile {
	return Profile{Status: DefaultStatus}
}

// Merge overlays src on the default profile. Null text fields become "" and
// an empty status falls back to DefaultStatus. avatarData is a string (a data
// URL) or null; it is taken verbatim when it is a string and is null
// otherwise. UpdateProfile rejects any other avatar type before merging.
func Merge(src map[string]any) Profile {
	p := Default()
	if len(src) == 0 {
		return p
	}

	for key, dst := range map[string]*string{
		fieldName:   &p.Name,
		fieldEmail:  &p.Email,
		fieldStatus: &p.Status,
		fieldRole:   &p.Role,
		fieldNotes:  &p.Notes,
	} {
		if v, ok := src[key]; ok {
			*dst = text(v)
		}
	}

	if p.Status == "" {
		p.Status = DefaultStatus
	}

	if v, ok := src[fieldAvatarData].(string); ok {
		p.AvatarData = &v
	}

	if raw, ok := src[fieldUpdatedAt].(string); ok {
		if t, err := time.Parse(records.TimeLayout, raw); err == nil {
			p.UpdatedAt = t
		}
	}

	return p
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// ToRecord is the stored form of p. avatarData is always written, as null
// when unset.
func ToRecord(p Profile) records.Record {
	rec := records.Record{
		fieldName:   p.Name,
		fieldEmail:  p.Email,
		fieldStatus: p.Status,
		fieldRole:   p.Role,
		fieldNotes:  p.Notes,
	}
	if p.AvatarData != nil {
		rec[fieldAvatarData] = *p.AvatarData
	} else {
		rec[fieldAvatarData] = nil
	}
	if !p.UpdatedAt.IsZero() {
		rec[fieldUpdatedAt] = p.UpdatedAt.UTC().Format(records.TimeLayout)
	}
	return rec
}
